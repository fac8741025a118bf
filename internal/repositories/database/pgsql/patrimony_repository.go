package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
)

type PgxPatrimonyRepository struct {
	BaseRepository
}

// newPgxPatrimonyRepository creates the read-only repository behind the
// net-worth aggregator.
func newPgxPatrimonyRepository(pool *pgxpool.Pool) portsrepo.PatrimonyReader {
	return &PgxPatrimonyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PatrimonyReader = (*PgxPatrimonyRepository)(nil)

// SumBalancesByKind sums active account balances grouped by kind.
func (r *PgxPatrimonyRepository) SumBalancesByKind(ctx context.Context) (map[domain.AccountKind]decimal.Decimal, error) {
	query := `
		SELECT kind, COALESCE(SUM(balance), 0)
		FROM balance_accounts
		WHERE is_active = TRUE
		GROUP BY kind;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to sum balances by kind: %w", err)
	}
	defer rows.Close()

	sums := make(map[domain.AccountKind]decimal.Decimal)
	for rows.Next() {
		var kind string
		var total decimal.Decimal
		if err := rows.Scan(&kind, &total); err != nil {
			return nil, fmt.Errorf("failed to scan balance sum row: %w", err)
		}
		sums[domain.AccountKind(kind)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating balance sum rows: %w", err)
	}
	return sums, nil
}

// SumPendingExpenses totals the outstanding balance of unpaid expenses.
func (r *PgxPatrimonyRepository) SumPendingExpenses(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount - amount_paid), 0)
		FROM expenses
		WHERE amount_paid < amount;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending expenses: %w", err)
	}
	return total, nil
}

// SumPendingDebts totals the outstanding balance of debts of one kind.
func (r *PgxPatrimonyRepository) SumPendingDebts(ctx context.Context, kind domain.DebtKind) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount - amount_paid), 0)
		FROM debts
		WHERE kind = $1 AND amount_paid < amount;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(kind)).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum pending %s debts: %w", kind, err)
	}
	return total, nil
}

// InventoryValuation reads the single stock valuation row maintained by the
// catalog system. A missing row reads as zero.
func (r *PgxPatrimonyRepository) InventoryValuation(ctx context.Context) (decimal.Decimal, time.Time, error) {
	query := `SELECT valuation, valued_at FROM inventory_valuation ORDER BY valued_at DESC LIMIT 1;`

	var valuation decimal.Decimal
	var valuedAt time.Time
	err := r.Pool.QueryRow(ctx, query).Scan(&valuation, &valuedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, time.Time{}, nil
		}
		return decimal.Zero, time.Time{}, fmt.Errorf("failed to read inventory valuation: %w", err)
	}
	return valuation, valuedAt, nil
}
