package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is the persistence model for a receivable or payable row.
type Debt struct {
	DebtID       string          `db:"debt_id"`
	Kind         string          `db:"kind"`
	Description  string          `db:"description"`
	Counterparty string          `db:"counterparty"`
	Amount       decimal.Decimal `db:"amount"`
	AmountPaid   decimal.Decimal `db:"amount_paid"`
	InvoiceDate  time.Time       `db:"invoice_date"`
	DueDate      *time.Time      `db:"due_date"`
	AuditFields
}
