package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/models"
	"github.com/univenta/retail_ledger_app/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for balance account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, kind, balance, fallback_account_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.BalanceAccount, error) {
	var m models.BalanceAccount
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.Kind,
		&m.Balance,
		&m.FallbackAccountID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.BalanceAccount) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO balance_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.Kind,
		m.Balance,
		m.FallbackAccountID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccount persists detail changes. The balance column is deliberately
// absent from the SET list.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.BalanceAccount) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE balance_accounts
		SET name = $2, fallback_account_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.FallbackAccountID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account inactive. Deactivating an already
// inactive account is a validation error.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE balance_accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing from already-inactive.
		if _, err := r.FindAccountByID(ctx, accountID); err != nil {
			return err
		}
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.BalanceAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM balance_accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.BalanceAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.BalanceAccount{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM balance_accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.BalanceAccount, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts ordered by code, active accounts first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.BalanceAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM balance_accounts
		ORDER BY is_active DESC, code ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.BalanceAccount
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating account rows: %w", err)
	}
	return accounts, nil
}

// SetAccountBalance applies an administrative override and appends the audit
// entry in the same transaction. Overrides bypass the non-negativity rule,
// which only binds ledger-driven debits.
func (r *PgxAccountRepository) SetAccountBalance(ctx context.Context, accountID string, newBalance decimal.Decimal, reason string, setBy string, now time.Time) (*domain.BalanceAccount, *domain.AccountAuditEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + accountColumns + ` FROM balance_accounts WHERE account_id = $1 FOR UPDATE;`
	m, err := scanAccount(tx.QueryRow(ctx, lockQuery, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, mapConcurrencyError(fmt.Errorf("failed to lock account %s: %w", accountID, err))
	}

	entry := models.AccountAuditEntry{
		EntryID:         uuid.NewString(),
		AccountID:       accountID,
		PreviousBalance: m.Balance,
		NewBalance:      newBalance,
		Reason:          reason,
		SetBy:           setBy,
		SetAt:           now,
	}

	auditQuery := `
		INSERT INTO account_audit_entries (entry_id, account_id, previous_balance, new_balance, reason, set_by, set_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, auditQuery,
		entry.EntryID, entry.AccountID, entry.PreviousBalance, entry.NewBalance, entry.Reason, entry.SetBy, entry.SetAt,
	); err != nil {
		return nil, nil, mapConcurrencyError(fmt.Errorf("failed to insert audit entry for account %s: %w", accountID, err))
	}

	updateQuery := `
		UPDATE balance_accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, accountID, newBalance, now, setBy); err != nil {
		return nil, nil, mapConcurrencyError(fmt.Errorf("failed to override balance for account %s: %w", accountID, err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, mapConcurrencyError(err)
	}

	m.Balance = newBalance
	m.LastUpdatedAt = now
	m.LastUpdatedBy = setBy
	account := mapping.ToDomainAccount(*m)
	auditEntry := mapping.ToDomainAuditEntry(entry)
	return &account, &auditEntry, nil
}

// ListAuditEntries returns the override trail for an account, newest first.
func (r *PgxAccountRepository) ListAuditEntries(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountAuditEntry, error) {
	query := `
		SELECT entry_id, account_id, previous_balance, new_balance, reason, set_by, set_at
		FROM account_audit_entries
		WHERE account_id = $1
		ORDER BY set_at DESC, entry_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var entries []domain.AccountAuditEntry
	for rows.Next() {
		var m models.AccountAuditEntry
		if err := rows.Scan(&m.EntryID, &m.AccountID, &m.PreviousBalance, &m.NewBalance, &m.Reason, &m.SetBy, &m.SetAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainAuditEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating audit entry rows: %w", err)
	}
	return entries, nil
}

// FindAccountsByIDsForUpdate locks the given account rows within tx. Rows are
// locked in ascending account_id order so concurrent multi-account operations
// cannot deadlock. Missing IDs yield ErrNotFound.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.BalanceAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.BalanceAccount{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM balance_accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, mapConcurrencyError(fmt.Errorf("failed to lock accounts: %w", err))
	}
	defer rows.Close()

	accounts := make(map[string]domain.BalanceAccount, len(accountIDs))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapConcurrencyError(fmt.Errorf("failed iterating locked account rows: %w", err))
	}

	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// ApplyBalanceDeltasInTx adds the signed deltas to account balances within tx.
// Callers hold the row locks and have verified the liquidity invariants; the
// updates are issued in ascending account_id order all the same.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := `
		UPDATE balance_accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for _, id := range ids {
		delta := deltas[id]
		if delta.IsZero() {
			continue
		}
		tag, err := tx.Exec(ctx, query, id, delta, now, userID)
		if err != nil {
			return mapConcurrencyError(fmt.Errorf("failed to apply balance delta to account %s: %w", id, err))
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return nil
}
