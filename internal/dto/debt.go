package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// CreateDebtRequest registers a receivable or payable.
type CreateDebtRequest struct {
	Kind         domain.DebtKind `json:"kind" binding:"required,oneof=receivable payable"`
	Description  string          `json:"description" binding:"required"`
	Counterparty string          `json:"counterparty" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	InvoiceDate  time.Time       `json:"invoiceDate" binding:"required"`
	DueDate      *time.Time      `json:"dueDate"`
}

// PayDebtRequest records a full or partial payment against a debt.
type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListDebtsParams defines query parameters for listing debts.
type ListDebtsParams struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=receivable payable"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// DebtResponse defines the data returned for a debt, including the derived
// balance and overdue flag.
type DebtResponse struct {
	DebtID       string          `json:"debtID"`
	Kind         domain.DebtKind `json:"kind"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	Balance      decimal.Decimal `json:"balance"`
	IsPaid       bool            `json:"isPaid"`
	IsOverdue    bool            `json:"isOverdue"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      *time.Time      `json:"dueDate"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListDebtsResponse wraps a page of debts.
type ListDebtsResponse struct {
	Debts []DebtResponse `json:"debts"`
}

// ToDebtResponse converts a domain.Debt to DebtResponse. Overdue is computed
// against the supplied clock.
func ToDebtResponse(d *domain.Debt, now time.Time) DebtResponse {
	return DebtResponse{
		DebtID:       d.DebtID,
		Kind:         d.Kind,
		Description:  d.Description,
		Counterparty: d.Counterparty,
		Amount:       d.Amount,
		AmountPaid:   d.AmountPaid,
		Balance:      d.Balance(),
		IsPaid:       d.IsPaid(),
		IsOverdue:    d.IsOverdue(now),
		InvoiceDate:  d.InvoiceDate,
		DueDate:      d.DueDate,
		CreatedAt:    d.CreatedAt,
		CreatedBy:    d.CreatedBy,
	}
}
