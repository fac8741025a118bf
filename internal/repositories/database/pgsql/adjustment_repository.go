package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/models"
	"github.com/univenta/retail_ledger_app/internal/utils/mapping"
)

type PgxAdjustmentRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxAdjustmentRepository creates a new repository for the expense
// adjustment trail. Fund movements run through the injected account
// repository inside this repository's transactions.
func newPgxAdjustmentRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.AdjustmentRepositoryFacade {
	return &PgxAdjustmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.AdjustmentRepositoryFacade = (*PgxAdjustmentRepository)(nil)

const adjustmentColumns = `adjustment_id, expense_id, reason, previous_amount, new_amount, adjustment_delta, previous_account_id, new_account_id, description, adjusted_by, adjusted_at`

// FindAdjustmentsByExpenseID returns the full trail, oldest first.
func (r *PgxAdjustmentRepository) FindAdjustmentsByExpenseID(ctx context.Context, expenseID string) ([]domain.AdjustmentRecord, error) {
	query := `
		SELECT ` + adjustmentColumns + `
		FROM expense_adjustments
		WHERE expense_id = $1
		ORDER BY adjusted_at ASC, adjustment_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	var records []domain.AdjustmentRecord
	for rows.Next() {
		var m models.AdjustmentRecord
		if err := rows.Scan(
			&m.AdjustmentID,
			&m.ExpenseID,
			&m.Reason,
			&m.PreviousAmount,
			&m.NewAmount,
			&m.AdjustmentDelta,
			&m.PreviousAccountID,
			&m.NewAccountID,
			&m.Description,
			&m.AdjustedBy,
			&m.AdjustedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment row: %w", err)
		}
		records = append(records, mapping.ToDomainAdjustment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating adjustment rows: %w", err)
	}
	return records, nil
}

// ApplyAdjustment corrects a paid expense's amount, funding account, or both.
// All fund movements and the audit insert share one transaction: the expense
// row is locked first, then the affected accounts in ascending account_id
// order, and the intended change is re-derived from the locked state.
func (r *PgxAdjustmentRepository) ApplyAdjustment(ctx context.Context, expenseID string, change domain.AdjustmentChange, adjustedBy string, now time.Time) (*domain.Expense, *domain.AdjustmentRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	expense, err := r.lockPaidExpense(ctx, tx, expenseID)
	if err != nil {
		return nil, nil, err
	}

	prevAmount := expense.Amount
	prevAccountID := *expense.PaymentAccountID
	newAmount := prevAmount
	if change.NewAmount != nil {
		newAmount = *change.NewAmount
	}
	newAccountID := prevAccountID
	if change.NewAccountID != nil {
		newAccountID = *change.NewAccountID
	}
	if newAmount.Equal(prevAmount) && newAccountID == prevAccountID {
		return nil, nil, fmt.Errorf("%w: expense %s already matches the requested state", apperrors.ErrNoChangeRequested, expenseID)
	}

	// Refund the old charge, apply the new one. Same-account corrections
	// collapse to a single net delta.
	deltas := map[string]decimal.Decimal{}
	deltas[prevAccountID] = deltas[prevAccountID].Add(prevAmount)
	deltas[newAccountID] = deltas[newAccountID].Sub(newAmount)

	accountIDs := make([]string, 0, len(deltas))
	for id := range deltas {
		accountIDs = append(accountIDs, id)
	}
	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, nil, err
	}

	if newAccountID != prevAccountID {
		target := accounts[newAccountID]
		if !target.IsActive {
			return nil, nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, newAccountID)
		}
		if !target.Kind.IsLiquid() {
			return nil, nil, fmt.Errorf("%w: account %s is not a payment source", apperrors.ErrValidation, newAccountID)
		}
	}

	for id, delta := range deltas {
		account := accounts[id]
		if account.Kind.IsLiquid() && account.Balance.Add(delta).IsNegative() {
			return nil, nil, &apperrors.InsufficientFundsError{
				AccountID: id,
				Balance:   account.Balance,
				Requested: delta.Neg(),
			}
		}
	}

	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, adjustedBy, now); err != nil {
		return nil, nil, err
	}

	record := models.AdjustmentRecord{
		AdjustmentID:      uuid.NewString(),
		ExpenseID:         expenseID,
		Reason:            string(change.Reason),
		PreviousAmount:    prevAmount,
		NewAmount:         newAmount,
		AdjustmentDelta:   newAmount.Sub(prevAmount),
		PreviousAccountID: &prevAccountID,
		NewAccountID:      &newAccountID,
		Description:       change.Description,
		AdjustedBy:        adjustedBy,
		AdjustedAt:        now,
	}
	if err := r.insertAdjustment(ctx, tx, record); err != nil {
		return nil, nil, err
	}

	// The expense stays fully paid at the corrected amount.
	expense.Amount = newAmount
	expense.AmountPaid = newAmount
	expense.PaymentAccountID = &newAccountID
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = adjustedBy

	updateQuery := `
		UPDATE expenses
		SET amount = $2, amount_paid = $3, payment_account_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, expenseID, newAmount, newAmount, newAccountID, now, adjustedBy); err != nil {
		return nil, nil, mapConcurrencyError(fmt.Errorf("failed to update expense %s: %w", expenseID, err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, mapConcurrencyError(err)
	}

	domainRecord := mapping.ToDomainAdjustment(record)
	return expense, &domainRecord, nil
}

// ApplyReversal undoes a payment entirely: the paid amount returns to the
// funding account and the expense goes back to pending. The record stores the
// restored amount as previous_amount and zero as new_amount.
func (r *PgxAdjustmentRepository) ApplyReversal(ctx context.Context, expenseID string, description string, revertedBy string, now time.Time) (*domain.Expense, *domain.AdjustmentRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	expense, err := r.lockPaidExpense(ctx, tx, expenseID)
	if err != nil {
		return nil, nil, err
	}

	restore := expense.AmountPaid
	accountID := *expense.PaymentAccountID

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID}); err != nil {
		return nil, nil, err
	}

	// A pure credit: cannot violate non-negativity.
	deltas := map[string]decimal.Decimal{accountID: restore}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, revertedBy, now); err != nil {
		return nil, nil, err
	}

	record := models.AdjustmentRecord{
		AdjustmentID:      uuid.NewString(),
		ExpenseID:         expenseID,
		Reason:            string(domain.ErrorReversal),
		PreviousAmount:    restore,
		NewAmount:         decimal.Zero,
		AdjustmentDelta:   restore.Neg(),
		PreviousAccountID: &accountID,
		NewAccountID:      nil,
		Description:       description,
		AdjustedBy:        revertedBy,
		AdjustedAt:        now,
	}
	if err := r.insertAdjustment(ctx, tx, record); err != nil {
		return nil, nil, err
	}

	expense.AmountPaid = decimal.Zero
	expense.PaymentAccountID = nil
	expense.PaymentMethod = nil
	expense.PaidAt = nil
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = revertedBy

	updateQuery := `
		UPDATE expenses
		SET amount_paid = 0, payment_account_id = NULL, payment_method = NULL, paid_at = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE expense_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, expenseID, now, revertedBy); err != nil {
		return nil, nil, mapConcurrencyError(fmt.Errorf("failed to update expense %s: %w", expenseID, err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, mapConcurrencyError(err)
	}

	domainRecord := mapping.ToDomainAdjustment(record)
	return expense, &domainRecord, nil
}

// lockPaidExpense locks the expense row and verifies it is fully paid with a
// recorded funding account.
func (r *PgxAdjustmentRepository) lockPaidExpense(ctx context.Context, tx pgx.Tx, expenseID string) (*domain.Expense, error) {
	lockQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	m, err := scanExpense(tx.QueryRow(ctx, lockQuery, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapConcurrencyError(fmt.Errorf("failed to lock expense %s: %w", expenseID, err))
	}

	expense := mapping.ToDomainExpense(*m)
	if !expense.IsPaid() {
		return nil, fmt.Errorf("%w: expense %s is not fully paid", apperrors.ErrValidation, expenseID)
	}
	if expense.PaymentAccountID == nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("paid expense %s has no funding account recorded", expenseID), apperrors.ErrInternal)
	}
	return &expense, nil
}

func (r *PgxAdjustmentRepository) insertAdjustment(ctx context.Context, tx pgx.Tx, m models.AdjustmentRecord) error {
	query := `
		INSERT INTO expense_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	if _, err := tx.Exec(ctx, query,
		m.AdjustmentID,
		m.ExpenseID,
		m.Reason,
		m.PreviousAmount,
		m.NewAmount,
		m.AdjustmentDelta,
		m.PreviousAccountID,
		m.NewAccountID,
		m.Description,
		m.AdjustedBy,
		m.AdjustedAt,
	); err != nil {
		return mapConcurrencyError(fmt.Errorf("failed to insert adjustment for expense %s: %w", m.ExpenseID, err))
	}
	return nil
}
