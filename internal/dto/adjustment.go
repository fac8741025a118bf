package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// AdjustExpenseRequest corrects a paid expense's amount, payment account, or
// both. At least one of NewAmount / NewAccountID must be provided; the service
// rejects no-op changes.
type AdjustExpenseRequest struct {
	NewAmount    *decimal.Decimal `json:"newAmount"`
	NewAccountID *string          `json:"newAccountID"`
	Description  string           `json:"description" binding:"required,min=10"`
}

// RevertExpenseRequest undoes a paid expense entirely, restoring the funds and
// returning the expense to pending.
type RevertExpenseRequest struct {
	Description string `json:"description" binding:"required,min=10"`
}

// AdjustmentResponse defines the data returned for one audit record.
type AdjustmentResponse struct {
	AdjustmentID      string                  `json:"adjustmentID"`
	ExpenseID         string                  `json:"expenseID"`
	Reason            domain.AdjustmentReason `json:"reason"`
	PreviousAmount    decimal.Decimal         `json:"previousAmount"`
	NewAmount         decimal.Decimal         `json:"newAmount"`
	AdjustmentDelta   decimal.Decimal         `json:"adjustmentDelta"`
	PreviousAccountID *string                 `json:"previousAccountID"`
	NewAccountID      *string                 `json:"newAccountID"`
	Description       string                  `json:"description"`
	AdjustedBy        string                  `json:"adjustedBy"`
	AdjustedAt        time.Time               `json:"adjustedAt"`
}

// AdjustExpenseResponse pairs the corrected expense with the audit record the
// correction produced.
type AdjustExpenseResponse struct {
	Expense    ExpenseResponse    `json:"expense"`
	Adjustment AdjustmentResponse `json:"adjustment"`
}

// ListAdjustmentsResponse wraps an expense's full adjustment history, oldest
// first.
type ListAdjustmentsResponse struct {
	Adjustments []AdjustmentResponse `json:"adjustments"`
}

// ToAdjustmentResponse converts a domain.AdjustmentRecord to its DTO.
func ToAdjustmentResponse(r *domain.AdjustmentRecord) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:      r.AdjustmentID,
		ExpenseID:         r.ExpenseID,
		Reason:            r.Reason,
		PreviousAmount:    r.PreviousAmount,
		NewAmount:         r.NewAmount,
		AdjustmentDelta:   r.AdjustmentDelta,
		PreviousAccountID: r.PreviousAccountID,
		NewAccountID:      r.NewAccountID,
		Description:       r.Description,
		AdjustedBy:        r.AdjustedBy,
		AdjustedAt:        r.AdjustedAt,
	}
}
