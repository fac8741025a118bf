package services

import (
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)

	// The resolver is shared: the expense service runs the same coverage
	// check before every cash payment.
	container.Fallback = NewFallbackResolver(repos.AccountRepo)

	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.AccountRepo, container.Fallback)
	container.Adjustment = NewAdjustmentService(repos.AdjustmentRepo, repos.ExpenseRepo, repos.AccountRepo)
	container.Debt = NewDebtService(repos.DebtRepo)
	container.Patrimony = NewPatrimonyService(repos.PatrimonyRepo)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.AccountSvcFacade    = (*accountService)(nil)
	_ portssvc.ExpenseSvcFacade    = (*expenseService)(nil)
	_ portssvc.FallbackResolverSvc = (*fallbackResolver)(nil)
	_ portssvc.AdjustmentSvcFacade = (*adjustmentService)(nil)
	_ portssvc.DebtSvcFacade       = (*debtService)(nil)
	_ portssvc.PatrimonySvc        = (*patrimonyService)(nil)
)
