package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// PatrimonyAssetsResponse breaks down the asset side of the snapshot.
type PatrimonyAssetsResponse struct {
	LiquidCash         decimal.Decimal `json:"liquidCash"`
	InventoryValuation decimal.Decimal `json:"inventoryValuation"`
	PendingReceivables decimal.Decimal `json:"pendingReceivables"`
	CurrentTotal       decimal.Decimal `json:"currentTotal"`
	FixedAssets        decimal.Decimal `json:"fixedAssets"`
	Total              decimal.Decimal `json:"total"`
}

// PatrimonyLiabilitiesResponse breaks down the liability side of the snapshot.
type PatrimonyLiabilitiesResponse struct {
	PendingPayables decimal.Decimal `json:"pendingPayables"`
	PendingExpenses decimal.Decimal `json:"pendingExpenses"`
	CurrentAccounts decimal.Decimal `json:"currentAccounts"`
	CurrentTotal    decimal.Decimal `json:"currentTotal"`
	LongTerm        decimal.Decimal `json:"longTerm"`
	Total           decimal.Decimal `json:"total"`
}

// PatrimonyResponse is the full net-worth report returned to the client.
type PatrimonyResponse struct {
	Assets       PatrimonyAssetsResponse      `json:"assets"`
	Liabilities  PatrimonyLiabilitiesResponse `json:"liabilities"`
	NetPatrimony decimal.Decimal              `json:"netPatrimony"`
	ComputedAt   time.Time                    `json:"computedAt"`
}

// ToPatrimonyResponse converts a domain snapshot to its DTO.
func ToPatrimonyResponse(s *domain.PatrimonySnapshot) PatrimonyResponse {
	return PatrimonyResponse{
		Assets: PatrimonyAssetsResponse{
			LiquidCash:         s.Assets.LiquidCash,
			InventoryValuation: s.Assets.InventoryValuation,
			PendingReceivables: s.Assets.PendingReceivables,
			CurrentTotal:       s.Assets.CurrentTotal,
			FixedAssets:        s.Assets.FixedAssets,
			Total:              s.Assets.Total,
		},
		Liabilities: PatrimonyLiabilitiesResponse{
			PendingPayables: s.Liabilities.PendingPayables,
			PendingExpenses: s.Liabilities.PendingExpenses,
			CurrentAccounts: s.Liabilities.CurrentAccounts,
			CurrentTotal:    s.Liabilities.CurrentTotal,
			LongTerm:        s.Liabilities.LongTerm,
			Total:           s.Liabilities.Total,
		},
		NetPatrimony: s.NetPatrimony,
		ComputedAt:   s.ComputedAt,
	}
}
