package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// PatrimonyReader supplies the raw figures for the net-worth computation.
// Read-only: the aggregator owns no mutable state.
type PatrimonyReader interface {
	// SumBalancesByKind sums active account balances grouped by kind.
	SumBalancesByKind(ctx context.Context) (map[domain.AccountKind]decimal.Decimal, error)

	// SumPendingExpenses totals the outstanding balance of unpaid expenses.
	SumPendingExpenses(ctx context.Context) (decimal.Decimal, error)

	// SumPendingDebts totals the outstanding balance of debts of one kind.
	SumPendingDebts(ctx context.Context, kind domain.DebtKind) (decimal.Decimal, error)

	// InventoryValuation reads the stock valuation maintained by the catalog
	// system, with its as-of timestamp.
	InventoryValuation(ctx context.Context) (decimal.Decimal, time.Time, error)
}
