package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense for reporting purposes.
type ExpenseCategory string

const (
	CategorySupplies    ExpenseCategory = "supplies"
	CategoryRent        ExpenseCategory = "rent"
	CategorySalaries    ExpenseCategory = "salaries"
	CategoryUtilities   ExpenseCategory = "utilities"
	CategoryTransport   ExpenseCategory = "transport"
	CategoryMaintenance ExpenseCategory = "maintenance"
	CategoryOther       ExpenseCategory = "other"
)

// ExpenseStatus is the payment lifecycle state of an expense. It is derived
// from amount_paid, never stored.
type ExpenseStatus string

const (
	ExpensePending       ExpenseStatus = "pending"
	ExpensePartiallyPaid ExpenseStatus = "partially_paid"
	ExpensePaid          ExpenseStatus = "paid"
)

// Expense is a cost owed to a vendor, paid down in one or more installments
// from a balance account. A paid expense can only return to pending through a
// full reversal.
type Expense struct {
	ExpenseID        string          `json:"expenseID"`
	Category         ExpenseCategory `json:"category"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	ExpenseDate      time.Time       `json:"expenseDate"`
	DueDate          *time.Time      `json:"dueDate"`
	Vendor           string          `json:"vendor"`
	PaymentAccountID *string         `json:"paymentAccountID"` // set when fully paid
	PaymentMethod    *string         `json:"paymentMethod"`
	PaidAt           *time.Time      `json:"paidAt"`
	AuditFields
}

// Balance returns the outstanding amount still owed.
func (e Expense) Balance() decimal.Decimal {
	return e.Amount.Sub(e.AmountPaid)
}

// IsPaid reports whether the expense is fully settled.
func (e Expense) IsPaid() bool {
	return e.AmountPaid.GreaterThanOrEqual(e.Amount)
}

// Status derives the lifecycle state from amount_paid.
func (e Expense) Status() ExpenseStatus {
	switch {
	case e.AmountPaid.IsZero():
		return ExpensePending
	case e.IsPaid():
		return ExpensePaid
	default:
		return ExpensePartiallyPaid
	}
}
