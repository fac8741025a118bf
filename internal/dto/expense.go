package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to create a pending expense.
type CreateExpenseRequest struct {
	Category    domain.ExpenseCategory `json:"category" binding:"required,oneof=supplies rent salaries utilities transport maintenance other"`
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	ExpenseDate time.Time              `json:"expenseDate" binding:"required"`
	DueDate     *time.Time             `json:"dueDate"`
	Vendor      string                 `json:"vendor"`
}

// PayExpenseRequest records a full or partial payment against an expense.
// UseFallback must be set explicitly after a fallback confirmation response;
// the ledger never switches to the fallback account on its own.
type PayExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	Method      string          `json:"method" binding:"required"`
	UseFallback bool            `json:"useFallback"`
}

// ExpenseResponse defines the data returned for an expense, including the
// derived balance and lifecycle status.
type ExpenseResponse struct {
	ExpenseID        string               `json:"expenseID"`
	Category         domain.ExpenseCategory `json:"category"`
	Description      string               `json:"description"`
	Amount           decimal.Decimal      `json:"amount"`
	AmountPaid       decimal.Decimal      `json:"amountPaid"`
	Balance          decimal.Decimal      `json:"balance"`
	Status           domain.ExpenseStatus `json:"status"`
	IsPaid           bool                 `json:"isPaid"`
	ExpenseDate      time.Time            `json:"expenseDate"`
	DueDate          *time.Time           `json:"dueDate"`
	Vendor           string               `json:"vendor"`
	PaymentAccountID *string              `json:"paymentAccountID"`
	PaymentMethod    *string              `json:"paymentMethod"`
	PaidAt           *time.Time           `json:"paidAt"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=pending partially_paid paid"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListExpensesResponse wraps a page of expenses with the next cursor.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// FallbackConfirmationResponse is returned when a cash payment needs explicit
// consent to use the configured fallback account.
type FallbackConfirmationResponse struct {
	Error             string          `json:"error"`
	SourceAccountID   string          `json:"sourceAccountID"`
	SourceBalance     decimal.Decimal `json:"sourceBalance"`
	FallbackAccountID string          `json:"fallbackAccountID"`
	FallbackBalance   decimal.Decimal `json:"fallbackBalance"`
}

// InsufficientFundsResponse reports the exact shortfall, including the
// fallback balance when one is configured.
type InsufficientFundsResponse struct {
	Error           string           `json:"error"`
	AccountID       string           `json:"accountID"`
	Balance         decimal.Decimal  `json:"balance"`
	Requested       decimal.Decimal  `json:"requested"`
	FallbackBalance *decimal.Decimal `json:"fallbackBalance,omitempty"`
}

// FallbackCheckParams defines query parameters for a pre-flight fallback check.
type FallbackCheckParams struct {
	Amount    decimal.Decimal `form:"amount" binding:"required"`
	AccountID string          `form:"accountID" binding:"required"`
}

// FallbackCheckResponse reports whether a cash payment can be covered and by
// which account. Both balances are reported when a fallback is configured.
type FallbackCheckResponse struct {
	CanPay            bool             `json:"canPay"`
	SourceAccountID   string           `json:"sourceAccountID"`
	SourceBalance     decimal.Decimal  `json:"sourceBalance"`
	FallbackAvailable bool             `json:"fallbackAvailable"`
	FallbackAccountID *string          `json:"fallbackAccountID,omitempty"`
	FallbackBalance   *decimal.Decimal `json:"fallbackBalance,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:        e.ExpenseID,
		Category:         e.Category,
		Description:      e.Description,
		Amount:           e.Amount,
		AmountPaid:       e.AmountPaid,
		Balance:          e.Balance(),
		Status:           e.Status(),
		IsPaid:           e.IsPaid(),
		ExpenseDate:      e.ExpenseDate,
		DueDate:          e.DueDate,
		Vendor:           e.Vendor,
		PaymentAccountID: e.PaymentAccountID,
		PaymentMethod:    e.PaymentMethod,
		PaidAt:           e.PaidAt,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ToFallbackCheckResponse converts a resolver report to its DTO.
func ToFallbackCheckResponse(c *domain.FallbackCheck) FallbackCheckResponse {
	resp := FallbackCheckResponse{
		CanPay:            c.CanPay,
		SourceAccountID:   c.SourceAccountID,
		SourceBalance:     c.SourceBalance,
		FallbackAvailable: c.FallbackAvailable,
	}
	if c.FallbackConfigured {
		id := c.FallbackAccountID
		bal := c.FallbackBalance
		resp.FallbackAccountID = &id
		resp.FallbackBalance = &bal
	}
	return resp
}
