package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// DebtReader defines read operations for receivable/payable data.
type DebtReader interface {
	// FindDebtByID retrieves a specific debt by its unique identifier.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebts retrieves debts of one kind ordered by invoice date descending.
	ListDebts(ctx context.Context, kind domain.DebtKind, limit int, offset int) ([]domain.Debt, error)
}

// DebtWriter defines write operations for receivable/payable data.
type DebtWriter interface {
	// SaveDebt persists a new debt with amount_paid = 0.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// ApplyDebtPayment increments amount_paid under a row lock, re-validating
	// the outstanding balance so concurrent payments cannot overpay.
	ApplyDebtPayment(ctx context.Context, debtID string, amount decimal.Decimal, paidBy string, now time.Time) (*domain.Debt, error)
}

// DebtRepositoryFacade combines the debt repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
