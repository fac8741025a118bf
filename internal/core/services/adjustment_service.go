package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

type adjustmentService struct {
	BaseService
	adjustmentRepo portsrepo.AdjustmentRepositoryFacade
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
}

// NewAdjustmentService creates the post-hoc correction engine for paid
// expenses.
func NewAdjustmentService(adjustmentRepo portsrepo.AdjustmentRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) *adjustmentService {
	return &adjustmentService{
		adjustmentRepo: adjustmentRepo,
		expenseRepo:    expenseRepo,
		accountRepo:    accountRepo,
	}
}

func (s *adjustmentService) ListAdjustments(ctx context.Context, expenseID string) ([]domain.AdjustmentRecord, error) {
	if _, err := s.expenseRepo.FindExpenseByID(ctx, expenseID); err != nil {
		return nil, err
	}

	records, err := s.adjustmentRepo.FindAdjustmentsByExpenseID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "failed to list adjustments", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	if records == nil {
		records = []domain.AdjustmentRecord{}
	}
	return records, nil
}

// AdjustExpense corrects a paid expense's amount, funding account, or both.
// The reason recorded in the audit trail is derived from what actually
// changed, never supplied by the caller.
func (s *adjustmentService) AdjustExpense(ctx context.Context, expenseID string, req dto.AdjustExpenseRequest, userID string) (*domain.Expense, *domain.AdjustmentRecord, error) {
	if len(req.Description) < domain.MinAdjustmentDescription {
		return nil, nil, apperrors.NewAppError(400,
			fmt.Sprintf("description must be at least %d characters", domain.MinAdjustmentDescription),
			apperrors.ErrValidation)
	}
	if req.NewAmount == nil && req.NewAccountID == nil {
		return nil, nil, apperrors.NewAppError(400, "nothing to adjust", apperrors.ErrNoChangeRequested)
	}
	if req.NewAmount != nil && !req.NewAmount.IsPositive() {
		return nil, nil, apperrors.NewAppError(400, "new amount must be positive", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	if !expense.IsPaid() {
		return nil, nil, apperrors.NewAppError(400, "only fully paid expenses can be adjusted", apperrors.ErrValidation)
	}

	change, err := s.deriveChange(ctx, expense, req)
	if err != nil {
		return nil, nil, err
	}

	adjusted, record, err := s.adjustmentRepo.ApplyAdjustment(ctx, expenseID, *change, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNoChangeRequested) {
			s.LogError(ctx, err, "failed to apply adjustment", slog.String("expense_id", expenseID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "expense adjusted",
		slog.String("expense_id", expenseID),
		slog.String("adjustment_id", record.AdjustmentID),
		slog.String("reason", string(record.Reason)),
		slog.String("delta", record.AdjustmentDelta.String()))
	return adjusted, record, nil
}

// RevertExpense fully undoes a payment: the amount returns to the funding
// account and the expense goes back to pending with an error_reversal record.
func (s *adjustmentService) RevertExpense(ctx context.Context, expenseID string, req dto.RevertExpenseRequest, userID string) (*domain.Expense, *domain.AdjustmentRecord, error) {
	if len(req.Description) < domain.MinAdjustmentDescription {
		return nil, nil, apperrors.NewAppError(400,
			fmt.Sprintf("description must be at least %d characters", domain.MinAdjustmentDescription),
			apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	if !expense.IsPaid() {
		return nil, nil, apperrors.NewAppError(400, "only fully paid expenses can be reverted", apperrors.ErrValidation)
	}

	reverted, record, err := s.adjustmentRepo.ApplyReversal(ctx, expenseID, req.Description, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "failed to revert expense", slog.String("expense_id", expenseID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "expense payment reverted",
		slog.String("expense_id", expenseID),
		slog.String("adjustment_id", record.AdjustmentID),
		slog.String("restored", record.PreviousAmount.String()))
	return reverted, record, nil
}

// deriveChange normalizes the request into an AdjustmentChange, validating
// any new account and classifying the reason from the effective difference.
func (s *adjustmentService) deriveChange(ctx context.Context, expense *domain.Expense, req dto.AdjustExpenseRequest) (*domain.AdjustmentChange, error) {
	amountChanged := req.NewAmount != nil && !req.NewAmount.Equal(expense.Amount)
	accountChanged := false

	if req.NewAccountID != nil {
		if expense.PaymentAccountID == nil || *req.NewAccountID != *expense.PaymentAccountID {
			accountChanged = true
		}
	}
	if !amountChanged && !accountChanged {
		return nil, apperrors.NewAppError(400, "requested values match current state", apperrors.ErrNoChangeRequested)
	}

	if accountChanged {
		account, err := s.accountRepo.FindAccountByID(ctx, *req.NewAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(400, fmt.Sprintf("account %s not found", *req.NewAccountID), apperrors.ErrValidation)
			}
			return nil, err
		}
		if !account.IsActive {
			return nil, apperrors.NewAppError(400, "account is inactive", apperrors.ErrValidation)
		}
		if !account.Kind.IsLiquid() {
			return nil, apperrors.NewAppError(400, "account is not a payment source", apperrors.ErrValidation)
		}
	}

	change := &domain.AdjustmentChange{
		Description: req.Description,
	}
	switch {
	case amountChanged && accountChanged:
		change.Reason = domain.BothCorrection
	case amountChanged:
		change.Reason = domain.AmountCorrection
	default:
		change.Reason = domain.AccountCorrection
	}
	if amountChanged {
		change.NewAmount = req.NewAmount
	}
	if accountChanged {
		change.NewAccountID = req.NewAccountID
	}
	return change, nil
}
