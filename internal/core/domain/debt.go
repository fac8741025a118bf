package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtKind distinguishes money owed to the business from money it owes.
type DebtKind string

const (
	Receivable DebtKind = "receivable"
	Payable    DebtKind = "payable"
)

// Debt tracks a receivable or payable through incremental payments. The two
// are structurally identical; only the sign of ownership differs.
type Debt struct {
	DebtID       string          `json:"debtID"`
	Kind         DebtKind        `json:"kind"`
	Description  string          `json:"description"`
	Counterparty string          `json:"counterparty"` // client or vendor
	Amount       decimal.Decimal `json:"amount"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	InvoiceDate  time.Time       `json:"invoiceDate"`
	DueDate      *time.Time      `json:"dueDate"`
	AuditFields
}

// Balance returns the outstanding amount.
func (d Debt) Balance() decimal.Decimal {
	return d.Amount.Sub(d.AmountPaid)
}

// IsPaid reports whether the debt is fully settled.
func (d Debt) IsPaid() bool {
	return d.AmountPaid.GreaterThanOrEqual(d.Amount)
}

// IsOverdue is computed purely from the due date at read time, never stored,
// so it cannot go stale.
func (d Debt) IsOverdue(now time.Time) bool {
	return d.DueDate != nil && d.DueDate.Before(now) && d.Balance().IsPositive()
}
