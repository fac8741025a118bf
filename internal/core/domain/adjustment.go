package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentReason states why a paid expense was corrected.
type AdjustmentReason string

const (
	AmountCorrection  AdjustmentReason = "amount_correction"
	AccountCorrection AdjustmentReason = "account_correction"
	BothCorrection    AdjustmentReason = "both_correction"
	ErrorReversal     AdjustmentReason = "error_reversal"
)

// MinAdjustmentDescription is the shortest accepted free-text justification
// for an adjustment or reversal.
const MinAdjustmentDescription = 10

// AdjustmentRecord is the immutable audit entry produced by every post-hoc
// change to a paid expense. Records are append-only: never mutated, never
// deleted.
type AdjustmentRecord struct {
	AdjustmentID      string           `json:"adjustmentID"`
	ExpenseID         string           `json:"expenseID"`
	Reason            AdjustmentReason `json:"reason"`
	PreviousAmount    decimal.Decimal  `json:"previousAmount"`
	NewAmount         decimal.Decimal  `json:"newAmount"`
	AdjustmentDelta   decimal.Decimal  `json:"adjustmentDelta"` // new - previous
	PreviousAccountID *string          `json:"previousAccountID"`
	NewAccountID      *string          `json:"newAccountID"`
	Description       string           `json:"description"`
	AdjustedBy        string           `json:"adjustedBy"`
	AdjustedAt        time.Time        `json:"adjustedAt"`
}

// AdjustmentChange is the caller's requested correction to a paid expense.
// At least one of NewAmount / NewAccountID must differ from current state.
type AdjustmentChange struct {
	NewAmount    *decimal.Decimal
	NewAccountID *string
	Reason       AdjustmentReason
	Description  string
}
