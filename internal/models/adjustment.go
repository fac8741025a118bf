package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentRecord is the persistence model for an expense adjustment audit
// row. Rows are append-only.
type AdjustmentRecord struct {
	AdjustmentID      string          `db:"adjustment_id"`
	ExpenseID         string          `db:"expense_id"`
	Reason            string          `db:"reason"`
	PreviousAmount    decimal.Decimal `db:"previous_amount"`
	NewAmount         decimal.Decimal `db:"new_amount"`
	AdjustmentDelta   decimal.Decimal `db:"adjustment_delta"`
	PreviousAccountID *string         `db:"previous_account_id"`
	NewAccountID      *string         `db:"new_account_id"`
	Description       string          `db:"description"`
	AdjustedBy        string          `db:"adjusted_by"`
	AdjustedAt        time.Time       `db:"adjusted_at"`
}
