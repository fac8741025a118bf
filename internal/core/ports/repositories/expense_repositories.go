package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// ListExpensesFilter narrows and pages an expense listing.
type ListExpensesFilter struct {
	Status    *domain.ExpenseStatus
	Limit     int
	NextToken *string
}

// ExpenseReader defines read operations for expense data.
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpenses retrieves a cursor-paginated list of expenses ordered by
	// expense date descending. Returns the page and the next cursor, if any.
	ListExpenses(ctx context.Context, filter ListExpensesFilter) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data.
type ExpenseWriter interface {
	// SaveExpense persists a new pending expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error
}

// ExpensePaymentSupport applies a payment atomically: it locks the expense
// and account rows, re-validates the outstanding balance and account funds
// under lock, debits the account and raises amount_paid in one transaction.
// On any failure neither the expense nor the account is mutated.
type ExpensePaymentSupport interface {
	ApplyPayment(ctx context.Context, expenseID string, accountID string, amount decimal.Decimal, method string, paidBy string, now time.Time) (*domain.Expense, error)
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces.
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
	ExpensePaymentSupport
}
