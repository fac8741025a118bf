package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/univenta/retail_ledger_app/internal/core/ports/services"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	resolver    portssvc.FallbackResolverSvc
}

// NewExpenseService creates the expense ledger service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, resolver portssvc.FallbackResolverSvc) *expenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		accountRepo: accountRepo,
		resolver:    resolver,
	}
}

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		AmountPaid:  decimal.Zero,
		ExpenseDate: req.ExpenseDate,
		DueDate:     req.DueDate,
		Vendor:      req.Vendor,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "failed to save expense", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	s.LogInfo(ctx, "expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("category", string(expense.Category)),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find expense by ID", slog.String("expense_id", expenseID))
		}
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, *string, error) {
	filter := portsrepo.ListExpensesFilter{
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	if params.Status != "" {
		status := domain.ExpenseStatus(params.Status)
		filter.Status = &status
	}

	expenses, nextToken, err := s.expenseRepo.ListExpenses(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "failed to list expenses")
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nextToken, nil
}

// PayExpense records a full or partial payment. Cash accounts that cannot
// cover the amount go through the two-step fallback protocol: the first call
// fails with a confirmation error naming the fallback account, and only a
// retry carrying UseFallback=true debits it. The pre-flight checks here are
// advisory; the repository re-validates everything under row locks.
func (s *expenseService) PayExpense(ctx context.Context, expenseID string, req dto.PayExpenseRequest, userID string) (*domain.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.IsPaid() {
		return nil, apperrors.NewAppError(400, "expense is already fully paid", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(expense.Balance()) {
		return nil, apperrors.NewAppError(400,
			fmt.Sprintf("payment %s exceeds outstanding balance %s", req.Amount.StringFixed(2), expense.Balance().StringFixed(2)),
			apperrors.ErrValidation)
	}

	check, err := s.resolver.CheckPayment(ctx, dto.FallbackCheckParams{Amount: req.Amount, AccountID: req.AccountID})
	if err != nil {
		return nil, err
	}

	payAccountID := req.AccountID
	switch {
	case req.UseFallback:
		// Explicit consent to debit a fallback. The retry may keep the
		// original account id or name the fallback account directly; both
		// shapes resolve to the same debit.
		switch {
		case check.FallbackConfigured:
			if !check.FallbackAvailable {
				return nil, &apperrors.InsufficientFundsError{
					AccountID: check.FallbackAccountID,
					Balance:   check.FallbackBalance,
					Requested: req.Amount,
				}
			}
			payAccountID = check.FallbackAccountID
		case check.CanPay:
			// The named account has no fallback of its own but covers the
			// amount itself: it is the fallback the caller was pointed at.
		default:
			return nil, &apperrors.InsufficientFundsError{
				AccountID: check.SourceAccountID,
				Balance:   check.SourceBalance,
				Requested: req.Amount,
			}
		}

	case check.SourceBalance.LessThan(req.Amount):
		if check.FallbackConfigured && check.FallbackAvailable {
			return nil, &apperrors.FallbackConfirmationError{
				SourceAccountID:   check.SourceAccountID,
				SourceBalance:     check.SourceBalance,
				FallbackAccountID: check.FallbackAccountID,
				FallbackBalance:   check.FallbackBalance,
			}
		}
		insufficient := &apperrors.InsufficientFundsError{
			AccountID: check.SourceAccountID,
			Balance:   check.SourceBalance,
			Requested: req.Amount,
		}
		if check.FallbackConfigured {
			fb := check.FallbackBalance
			insufficient.FallbackBalance = &fb
		}
		return nil, insufficient
	}

	paid, err := s.expenseRepo.ApplyPayment(ctx, expenseID, payAccountID, req.Amount, req.Method, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "failed to apply payment",
				slog.String("expense_id", expenseID),
				slog.String("account_id", payAccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "expense payment recorded",
		slog.String("expense_id", expenseID),
		slog.String("account_id", payAccountID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(paid.Status())))
	return paid, nil
}
