package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the persistence model for an expense row.
type Expense struct {
	ExpenseID        string          `db:"expense_id"`
	Category         string          `db:"category"`
	Description      string          `db:"description"`
	Amount           decimal.Decimal `db:"amount"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	ExpenseDate      time.Time       `db:"expense_date"`
	DueDate          *time.Time      `db:"due_date"`
	Vendor           string          `db:"vendor"`
	PaymentAccountID *string         `db:"payment_account_id"`
	PaymentMethod    *string         `db:"payment_method"`
	PaidAt           *time.Time      `db:"paid_at"`
	AuditFields
}
