package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool, accountRepo)
	adjustmentRepo := newPgxAdjustmentRepository(dbPool, accountRepo)
	debtRepo := newPgxDebtRepository(dbPool)
	patrimonyRepo := newPgxPatrimonyRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		ExpenseRepo:    expenseRepo,
		AdjustmentRepo: adjustmentRepo,
		DebtRepo:       debtRepo,
		PatrimonyRepo:  patrimonyRepo,
	}
}
