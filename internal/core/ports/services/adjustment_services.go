package services

import (
	"context"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

// AdjustmentReaderSvc defines read operations for adjustment history.
type AdjustmentReaderSvc interface {
	// ListAdjustments retrieves an expense's full adjustment history, oldest
	// first.
	ListAdjustments(ctx context.Context, expenseID string) ([]domain.AdjustmentRecord, error)
}

// AdjustmentWriterSvc defines the post-hoc corrections allowed on a paid
// expense. Every correction produces an append-only audit record and restores
// or debits the affected accounts atomically.
type AdjustmentWriterSvc interface {
	// AdjustExpense corrects a paid expense's amount, payment account, or
	// both, applying the exact balance deltas to the affected accounts.
	AdjustExpense(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, userID string) (*domain.Expense, *domain.AdjustmentRecord, error)

	// RevertExpense undoes a paid expense entirely: the full amount returns to
	// the paying account and the expense goes back to pending.
	RevertExpense(ctx context.Context, expenseID string, req dto.RevertExpenseRequest, userID string) (*domain.Expense, *domain.AdjustmentRecord, error)
}

// AdjustmentSvcFacade combines all adjustment-related service interfaces.
type AdjustmentSvcFacade interface {
	AdjustmentReaderSvc
	AdjustmentWriterSvc
}
