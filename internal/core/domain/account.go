package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies a balance account within the ledger.
type AccountKind string

const (
	CashPrimary      AccountKind = "cash_primary"
	CashSecondary    AccountKind = "cash_secondary"
	DigitalWallet    AccountKind = "digital_wallet"
	Bank             AccountKind = "bank"
	AssetFixed       AccountKind = "asset_fixed"
	LiabilityCurrent AccountKind = "liability_current"
	LiabilityLong    AccountKind = "liability_long"
	Equity           AccountKind = "equity"
)

// IsLiquid reports whether the kind represents spendable money. Liquid
// accounts may never go negative through a ledger-driven debit.
func (k AccountKind) IsLiquid() bool {
	switch k {
	case CashPrimary, CashSecondary, DigitalWallet, Bank:
		return true
	}
	return false
}

// IsCash reports whether the kind is a physical cash drawer, the only kinds
// that participate in the cascading fallback protocol.
func (k AccountKind) IsCash() bool {
	return k == CashPrimary || k == CashSecondary
}

// BalanceAccount is a named pool of money with a running balance: a cash
// drawer, bank account, digital wallet, or a fixed asset / liability
// placeholder used by the patrimony computation.
type BalanceAccount struct {
	AccountID         string          `json:"accountID"`
	Code              string          `json:"code"` // short ledger code, e.g. "1101"
	Name              string          `json:"name"`
	Kind              AccountKind     `json:"kind"`
	Balance           decimal.Decimal `json:"balance"`
	FallbackAccountID *string         `json:"fallbackAccountID"` // configured cash fallback pairing
	IsActive          bool            `json:"isActive"`
	AuditFields
}

// AccountAuditEntry records an administrative balance override. These are
// append-only and distinct from ledger-driven debits and credits.
type AccountAuditEntry struct {
	EntryID         string          `json:"entryID"`
	AccountID       string          `json:"accountID"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	Reason          string          `json:"reason"`
	SetBy           string          `json:"setBy"`
	SetAt           time.Time       `json:"setAt"`
}

// FallbackCheck is the resolver's report on whether a cash payment can be
// covered. CanPay speaks for the source account alone; both balances are
// always reported when a fallback is configured so the caller can surface a
// precise shortfall message.
type FallbackCheck struct {
	CanPay             bool
	SourceAccountID    string
	SourceBalance      decimal.Decimal
	FallbackConfigured bool
	FallbackAccountID  string
	FallbackBalance    decimal.Decimal
	FallbackAvailable  bool
}
