package repositories

import (
	"context"
	"time"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// AdjustmentReader lists the append-only adjustment trail for an expense.
type AdjustmentReader interface {
	// FindAdjustmentsByExpenseID returns adjustment records ordered by
	// adjusted_at ascending.
	FindAdjustmentsByExpenseID(ctx context.Context, expenseID string) ([]domain.AdjustmentRecord, error)
}

// AdjustmentWriter applies post-hoc corrections to paid expenses. Both
// operations run in a single database transaction: they lock the expense and
// every affected account (in ascending account_id order), re-validate under
// lock, move the funds, update the expense and append exactly one
// AdjustmentRecord. On failure nothing is applied.
type AdjustmentWriter interface {
	// ApplyAdjustment corrects a paid expense's amount, funding account, or
	// both. The returned record captures the authoritative before/after state
	// read under lock.
	ApplyAdjustment(ctx context.Context, expenseID string, change domain.AdjustmentChange, adjustedBy string, now time.Time) (*domain.Expense, *domain.AdjustmentRecord, error)

	// ApplyReversal fully undoes a payment: credits amount_paid back to the
	// funding account and returns the expense to pending.
	ApplyReversal(ctx context.Context, expenseID string, description string, revertedBy string, now time.Time) (*domain.Expense, *domain.AdjustmentRecord, error)
}

// AdjustmentRepositoryFacade combines the adjustment repository interfaces.
type AdjustmentRepositoryFacade interface {
	AdjustmentReader
	AdjustmentWriter
}
