package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PatrimonyAssets breaks the asset side of the net-worth snapshot down by
// source.
type PatrimonyAssets struct {
	LiquidCash         decimal.Decimal `json:"liquidCash"`
	InventoryValuation decimal.Decimal `json:"inventoryValuation"`
	PendingReceivables decimal.Decimal `json:"pendingReceivables"`
	CurrentTotal       decimal.Decimal `json:"currentTotal"`
	FixedAssets        decimal.Decimal `json:"fixedAssets"`
	Total              decimal.Decimal `json:"total"`
}

// PatrimonyLiabilities breaks the liability side down by source.
type PatrimonyLiabilities struct {
	PendingPayables decimal.Decimal `json:"pendingPayables"`
	PendingExpenses decimal.Decimal `json:"pendingExpenses"`
	CurrentAccounts decimal.Decimal `json:"currentAccounts"`
	CurrentTotal    decimal.Decimal `json:"currentTotal"`
	LongTerm        decimal.Decimal `json:"longTerm"`
	Total           decimal.Decimal `json:"total"`
}

// PatrimonySnapshot is the net-worth report. It is recomputed in full on
// every request and never persisted; NetPatrimony always equals
// Assets.Total - Liabilities.Total exactly.
type PatrimonySnapshot struct {
	Assets       PatrimonyAssets      `json:"assets"`
	Liabilities  PatrimonyLiabilities `json:"liabilities"`
	NetPatrimony decimal.Decimal      `json:"netPatrimony"`
	ComputedAt   time.Time            `json:"computedAt"`
}

// PatrimonyInputs are the raw figures the aggregator reads across the ledger.
type PatrimonyInputs struct {
	BalancesByKind     map[AccountKind]decimal.Decimal
	InventoryValuation decimal.Decimal
	PendingReceivables decimal.Decimal
	PendingPayables    decimal.Decimal
	PendingExpenses    decimal.Decimal
}

// ComputePatrimony assembles a snapshot from raw inputs. Pure function: no
// mutation rights, no caching.
func ComputePatrimony(in PatrimonyInputs, now time.Time) PatrimonySnapshot {
	liquid := decimal.Zero
	for kind, bal := range in.BalancesByKind {
		if kind.IsLiquid() {
			liquid = liquid.Add(bal)
		}
	}

	assets := PatrimonyAssets{
		LiquidCash:         liquid,
		InventoryValuation: in.InventoryValuation,
		PendingReceivables: in.PendingReceivables,
		FixedAssets:        in.BalancesByKind[AssetFixed],
	}
	assets.CurrentTotal = assets.LiquidCash.Add(assets.InventoryValuation).Add(assets.PendingReceivables)
	assets.Total = assets.CurrentTotal.Add(assets.FixedAssets)

	liabilities := PatrimonyLiabilities{
		PendingPayables: in.PendingPayables,
		PendingExpenses: in.PendingExpenses,
		CurrentAccounts: in.BalancesByKind[LiabilityCurrent],
		LongTerm:        in.BalancesByKind[LiabilityLong],
	}
	liabilities.CurrentTotal = liabilities.PendingPayables.Add(liabilities.PendingExpenses).Add(liabilities.CurrentAccounts)
	liabilities.Total = liabilities.CurrentTotal.Add(liabilities.LongTerm)

	return PatrimonySnapshot{
		Assets:       assets,
		Liabilities:  liabilities,
		NetPatrimony: assets.Total.Sub(liabilities.Total),
		ComputedAt:   now,
	}
}
