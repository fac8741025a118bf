package services

import (
	"context"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// PatrimonySvc computes the live net-worth snapshot. There are no write
// operations: the snapshot is derived in full on every call.
type PatrimonySvc interface {
	// GetPatrimony aggregates balances, inventory valuation, pending debts
	// and pending expenses into a snapshot where assets minus liabilities
	// equals net patrimony exactly.
	GetPatrimony(ctx context.Context) (*domain.PatrimonySnapshot, error)
}
