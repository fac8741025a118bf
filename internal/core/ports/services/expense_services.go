package services

import (
	"context"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expenses.
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense by its unique identifier.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a keyset-paginated list of expenses, newest
	// expense date first, optionally filtered by lifecycle status.
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, *string, error)
}

// ExpenseWriterSvc defines write operations for expenses.
type ExpenseWriterSvc interface {
	// CreateExpense registers a pending expense. No account is touched.
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)

	// PayExpense records a full or partial payment, debiting the paying
	// account atomically with the expense update. Cash accounts go through
	// the fallback protocol when short.
	PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, userID string) (*domain.Expense, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces.
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}

// FallbackResolverSvc answers whether a cash payment can be covered, and by
// which account, without mutating anything.
type FallbackResolverSvc interface {
	// CheckPayment runs the pre-flight coverage check for a payment from the
	// given account.
	CheckPayment(ctx context.Context, params dto.FallbackCheckParams) (*domain.FallbackCheck, error)
}
