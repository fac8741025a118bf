package services

import (
	"context"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for balance accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.BalanceAccount, error)

	// ListAccounts retrieves all accounts, active first, ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.BalanceAccount, error)

	// ListAuditEntries retrieves the administrative balance override history
	// for one account, newest first.
	ListAuditEntries(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountAuditEntry, error)
}

// AccountWriterSvc defines write operations for balance accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.BalanceAccount, error)

	// UpdateAccount updates an existing account's details. The balance cannot
	// be changed through this path.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.BalanceAccount, error)

	// SetBalance administratively overrides an account balance, recording an
	// audit entry with the previous value and the stated reason.
	SetBalance(ctx context.Context, accountID string, req dto.SetBalanceRequest, userID string) (*domain.BalanceAccount, *domain.AccountAuditEntry, error)

	// DeactivateAccount marks an account as inactive. Inactive accounts are
	// rejected as payment sources but keep their history.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
