package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind for DB storage.
type AccountKind string

// BalanceAccount is the persistence model for a balance account row.
type BalanceAccount struct {
	AccountID         string          `db:"account_id"`
	Code              string          `db:"code"`
	Name              string          `db:"name"`
	Kind              AccountKind     `db:"kind"`
	Balance           decimal.Decimal `db:"balance"`
	FallbackAccountID *string         `db:"fallback_account_id"` // nullable
	IsActive          bool            `db:"is_active"`
	AuditFields
}

// AccountAuditEntry is the persistence model for an administrative balance
// override entry. Rows are append-only.
type AccountAuditEntry struct {
	EntryID         string          `db:"entry_id"`
	AccountID       string          `db:"account_id"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	Reason          string          `db:"reason"`
	SetBy           string          `db:"set_by"`
	SetAt           time.Time       `db:"set_at"`
}
