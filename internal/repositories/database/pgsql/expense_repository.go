package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/models"
	"github.com/univenta/retail_ledger_app/internal/utils/mapping"
	"github.com/univenta/retail_ledger_app/internal/utils/pagination"
)

type PgxExpenseRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxExpenseRepository creates a new repository for expense data. Account
// debits run through the injected account repository inside this repository's
// transactions.
func newPgxExpenseRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, category, description, amount, amount_paid, expense_date, due_date, vendor, payment_account_id, payment_method, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.AmountPaid,
		&m.ExpenseDate,
		&m.DueDate,
		&m.Vendor,
		&m.PaymentAccountID,
		&m.PaymentMethod,
		&m.PaidAt,
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

// SaveExpense inserts a new pending expense.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.Category,
		m.Description,
		m.Amount,
		m.AmountPaid,
		m.ExpenseDate,
		m.DueDate,
		m.Vendor,
		m.PaymentAccountID,
		m.PaymentMethod,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	expense := mapping.ToDomainExpense(*m)
	return &expense, nil
}

// ListExpenses retrieves a keyset-paginated page ordered by expense date
// descending, then creation time descending. Status filters compare the
// stored amounts since status itself is derived, never stored.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, filter portsrepo.ListExpensesFilter) ([]domain.Expense, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var conditions []string
	var args []any

	if filter.NextToken != nil && *filter.NextToken != "" {
		expenseDate, createdAt, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, expenseDate, createdAt)
		conditions = append(conditions, fmt.Sprintf("(expense_date, created_at) < ($%d, $%d)", len(args)-1, len(args)))
	}

	if filter.Status != nil {
		switch *filter.Status {
		case domain.ExpensePending:
			conditions = append(conditions, "amount_paid = 0")
		case domain.ExpensePartiallyPaid:
			conditions = append(conditions, "amount_paid > 0 AND amount_paid < amount")
		case domain.ExpensePaid:
			conditions = append(conditions, "amount_paid >= amount")
		default:
			return nil, nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *filter.Status)
		}
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	args = append(args, limit+1) // fetch one extra row to detect a next page
	query += fmt.Sprintf(" ORDER BY expense_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var rowModels []models.Expense
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		rowModels = append(rowModels, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating expense rows: %w", err)
	}
	expenses := mapping.ToDomainExpenseSlice(rowModels)

	var nextToken *string
	if len(expenses) > limit {
		expenses = expenses[:limit]
		last := expenses[len(expenses)-1]
		token := pagination.EncodeToken(last.ExpenseDate, last.CreatedAt)
		nextToken = &token
	}
	return expenses, nextToken, nil
}

// ApplyPayment debits the account and raises amount_paid in one transaction.
// The expense row is locked first, then the account row; everything the
// service pre-checked is re-validated here under the locks.
func (r *PgxExpenseRepository) ApplyPayment(ctx context.Context, expenseID string, accountID string, amount decimal.Decimal, method string, paidBy string, now time.Time) (*domain.Expense, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 FOR UPDATE;`
	m, err := scanExpense(tx.QueryRow(ctx, lockQuery, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapConcurrencyError(fmt.Errorf("failed to lock expense %s: %w", expenseID, err))
	}

	expense := mapping.ToDomainExpense(*m)
	if expense.IsPaid() {
		return nil, fmt.Errorf("%w: expense %s is already fully paid", apperrors.ErrValidation, expenseID)
	}
	if amount.GreaterThan(expense.Balance()) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding balance %s",
			apperrors.ErrValidation, amount.StringFixed(2), expense.Balance().StringFixed(2))
	}

	accounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID})
	if err != nil {
		return nil, err
	}
	account := accounts[accountID]
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	if !account.Kind.IsLiquid() {
		return nil, fmt.Errorf("%w: account %s is not a payment source", apperrors.ErrValidation, accountID)
	}
	if account.Balance.LessThan(amount) {
		return nil, &apperrors.InsufficientFundsError{
			AccountID: accountID,
			Balance:   account.Balance,
			Requested: amount,
		}
	}

	deltas := map[string]decimal.Decimal{accountID: amount.Neg()}
	if err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, paidBy, now); err != nil {
		return nil, err
	}

	expense.AmountPaid = expense.AmountPaid.Add(amount)
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = paidBy
	if expense.IsPaid() {
		expense.PaymentAccountID = &accountID
		expense.PaymentMethod = &method
		expense.PaidAt = &now
	}

	updateQuery := `
		UPDATE expenses
		SET amount_paid = $2, payment_account_id = $3, payment_method = $4, paid_at = $5, last_updated_at = $6, last_updated_by = $7
		WHERE expense_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery,
		expenseID,
		expense.AmountPaid,
		expense.PaymentAccountID,
		expense.PaymentMethod,
		expense.PaidAt,
		now,
		paidBy,
	); err != nil {
		return nil, mapConcurrencyError(fmt.Errorf("failed to update expense %s: %w", expenseID, err))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, mapConcurrencyError(err)
	}
	return &expense, nil
}
