package services

import (
	"context"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

// DebtReaderSvc defines read operations for receivables and payables.
type DebtReaderSvc interface {
	// GetDebtByID retrieves a specific debt by its unique identifier.
	GetDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// ListDebts retrieves debts ordered by invoice date, newest first,
	// optionally filtered by kind.
	ListDebts(ctx context.Context, params dto.ListDebtsParams) ([]domain.Debt, error)
}

// DebtWriterSvc defines write operations for receivables and payables.
type DebtWriterSvc interface {
	// CreateDebt registers a receivable or payable. No account is touched;
	// debts affect patrimony, never balances.
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest, userID string) (*domain.Debt, error)

	// PayDebt records a full or partial payment against a debt.
	PayDebt(ctx context.Context, debtID string, req dto.PayDebtRequest, userID string) (*domain.Debt, error)
}

// DebtSvcFacade combines all debt-related service interfaces.
type DebtSvcFacade interface {
	DebtReaderSvc
	DebtWriterSvc
}
