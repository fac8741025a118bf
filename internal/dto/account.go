package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a balance account.
type CreateAccountRequest struct {
	Code              string             `json:"code" binding:"required"`
	Name              string             `json:"name" binding:"required"`
	Kind              domain.AccountKind `json:"kind" binding:"required,oneof=cash_primary cash_secondary digital_wallet bank asset_fixed liability_current liability_long equity"`
	InitialBalance    decimal.Decimal    `json:"initialBalance"`
	FallbackAccountID *string            `json:"fallbackAccountID"` // optional cash fallback pairing
}

// UpdateAccountRequest defines the mutable details of an account. The balance
// is never updated through this path; use SetBalanceRequest instead.
type UpdateAccountRequest struct {
	Name              *string `json:"name"`
	FallbackAccountID *string `json:"fallbackAccountID"`
}

// SetBalanceRequest defines an administrative balance override. The override
// always succeeds and is logged as an audit entry, distinct from ledger debits.
type SetBalanceRequest struct {
	NewBalance decimal.Decimal `json:"newBalance"`
	Reason     string          `json:"reason" binding:"required"`
}

// AccountResponse defines the data returned for a balance account.
type AccountResponse struct {
	AccountID         string             `json:"accountID"`
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	Kind              domain.AccountKind `json:"kind"`
	Balance           decimal.Decimal    `json:"balance"`
	FallbackAccountID *string            `json:"fallbackAccountID"`
	IsActive          bool               `json:"isActive"`
	CreatedAt         time.Time          `json:"createdAt"`
	CreatedBy         string             `json:"createdBy"`
	LastUpdatedAt     time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy     string             `json:"lastUpdatedBy"`
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// AccountAuditEntryResponse describes one administrative balance override.
type AccountAuditEntryResponse struct {
	EntryID         string          `json:"entryID"`
	AccountID       string          `json:"accountID"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	Reason          string          `json:"reason"`
	SetBy           string          `json:"setBy"`
	SetAt           time.Time       `json:"setAt"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.BalanceAccount to AccountResponse.
func ToAccountResponse(acc *domain.BalanceAccount) AccountResponse {
	return AccountResponse{
		AccountID:         acc.AccountID,
		Code:              acc.Code,
		Name:              acc.Name,
		Kind:              acc.Kind,
		Balance:           acc.Balance,
		FallbackAccountID: acc.FallbackAccountID,
		IsActive:          acc.IsActive,
		CreatedAt:         acc.CreatedAt,
		CreatedBy:         acc.CreatedBy,
		LastUpdatedAt:     acc.LastUpdatedAt,
		LastUpdatedBy:     acc.LastUpdatedBy,
	}
}

// ToAccountAuditEntryResponse converts a domain audit entry to its DTO.
func ToAccountAuditEntryResponse(e domain.AccountAuditEntry) AccountAuditEntryResponse {
	return AccountAuditEntryResponse{
		EntryID:         e.EntryID,
		AccountID:       e.AccountID,
		PreviousBalance: e.PreviousBalance,
		NewBalance:      e.NewBalance,
		Reason:          e.Reason,
		SetBy:           e.SetBy,
		SetAt:           e.SetAt,
	}
}
