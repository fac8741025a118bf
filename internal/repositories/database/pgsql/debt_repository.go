package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/models"
	"github.com/univenta/retail_ledger_app/internal/utils/mapping"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for receivable/payable data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, kind, description, counterparty, amount, amount_paid, invoice_date, due_date, created_at, created_by, last_updated_at, last_updated_by`

func scanDebt(row pgx.Row) (*models.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.Kind,
		&m.Description,
		&m.Counterparty,
		&m.Amount,
		&m.AmountPaid,
		&m.InvoiceDate,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveDebt inserts a new debt.
func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)

	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DebtID,
		m.Kind,
		m.Description,
		m.Counterparty,
		m.Amount,
		m.AmountPaid,
		m.InvoiceDate,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save debt %s: %w", m.DebtID, err)
	}
	return nil
}

// FindDebtByID retrieves a debt by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1;`

	m, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find debt by ID %s: %w", debtID, err)
	}

	debt := mapping.ToDomainDebt(*m)
	return &debt, nil
}

// ListDebts retrieves debts ordered by invoice date descending, optionally
// filtered by kind. An empty kind lists both sides of the book.
func (r *PgxDebtRepository) ListDebts(ctx context.Context, kind domain.DebtKind, limit int, offset int) ([]domain.Debt, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + debtColumns + ` FROM debts`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, string(kind))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY invoice_date DESC, created_at DESC LIMIT $%d OFFSET $%d;`, len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var rowModels []models.Debt
	for rows.Next() {
		m, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		rowModels = append(rowModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating debt rows: %w", err)
	}
	return mapping.ToDomainDebtSlice(rowModels), nil
}

// ApplyDebtPayment increments amount_paid under a row lock, re-validating the
// outstanding balance so concurrent payments cannot overpay.
func (r *PgxDebtRepository) ApplyDebtPayment(ctx context.Context, debtID string, amount decimal.Decimal, paidBy string, now time.Time) (*domain.Debt, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + debtColumns + ` FROM debts WHERE debt_id = $1 FOR UPDATE;`
	m, err := scanDebt(tx.QueryRow(ctx, lockQuery, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapConcurrencyError(fmt.Errorf("failed to lock debt %s: %w", debtID, err))
	}

	debt := mapping.ToDomainDebt(*m)
	if debt.IsPaid() {
		return nil, fmt.Errorf("%w: debt %s is already fully paid", apperrors.ErrValidation, debtID)
	}
	if amount.GreaterThan(debt.Balance()) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding balance %s",
			apperrors.ErrValidation, amount.StringFixed(2), debt.Balance().StringFixed(2))
	}

	debt.AmountPaid = debt.AmountPaid.Add(amount)
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = paidBy

	updateQuery := `
		UPDATE debts
		SET amount_paid = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, debtID, debt.AmountPaid, now, paidBy); err != nil {
		return nil, mapConcurrencyError(fmt.Errorf("failed to update debt %s: %w", debtID, err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, mapConcurrencyError(err)
	}
	return &debt, nil
}
