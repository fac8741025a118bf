package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for balance account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.BalanceAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.BalanceAccount, error)

	// ListAccounts retrieves a paginated list of accounts ordered by ledger
	// code, active accounts first.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.BalanceAccount, error)
}

// AccountWriter defines write operations for balance account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.BalanceAccount) error

	// UpdateAccount persists detail changes to an existing account. The
	// balance column is never written through this path.
	UpdateAccount(ctx context.Context, account domain.BalanceAccount) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// SetAccountBalance applies an administrative balance override and appends
	// an audit entry in the same transaction. Overrides always succeed, even
	// when they drive a liquid account negative.
	SetAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, reason string, setBy string, now time.Time) (*domain.BalanceAccount, *domain.AccountAuditEntry, error)
}

// AccountAuditReader lists the administrative override trail for an account.
type AccountAuditReader interface {
	ListAuditEntries(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountAuditEntry, error)
}

// AccountTransactionSupport defines operations used by other repositories to
// move money inside their own database transactions.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within a transaction. Rows are locked in ascending account_id
	// order so concurrent multi-account operations cannot deadlock.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.BalanceAccount, error)

	// ApplyBalanceDeltasInTx adds the given signed deltas to account balances
	// within the transaction. Callers must hold the row locks and must have
	// verified liquidity invariants beforehand.
	ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountAuditReader
	AccountTransactionSupport
}
