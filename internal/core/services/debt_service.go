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
	"github.com/univenta/retail_ledger_app/internal/dto"
)

type debtService struct {
	BaseService
	debtRepo portsrepo.DebtRepositoryFacade
}

// NewDebtService creates the receivables/payables service.
func NewDebtService(repo portsrepo.DebtRepositoryFacade) *debtService {
	return &debtService{debtRepo: repo}
}

func (s *debtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest, userID string) (*domain.Debt, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	debt := domain.Debt{
		DebtID:       uuid.NewString(),
		Kind:         req.Kind,
		Description:  req.Description,
		Counterparty: req.Counterparty,
		Amount:       req.Amount,
		AmountPaid:   decimal.Zero,
		InvoiceDate:  req.InvoiceDate,
		DueDate:      req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "failed to save debt", slog.String("debt_id", debt.DebtID))
		return nil, err
	}

	s.LogInfo(ctx, "debt created",
		slog.String("debt_id", debt.DebtID),
		slog.String("kind", string(debt.Kind)),
		slog.String("amount", debt.Amount.String()))
	return &debt, nil
}

func (s *debtService) GetDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find debt by ID", slog.String("debt_id", debtID))
		}
		return nil, err
	}
	return debt, nil
}

func (s *debtService) ListDebts(ctx context.Context, params dto.ListDebtsParams) ([]domain.Debt, error) {
	kind := domain.DebtKind(params.Kind)
	debts, err := s.debtRepo.ListDebts(ctx, kind, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list debts", slog.String("kind", params.Kind))
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	if debts == nil {
		debts = []domain.Debt{}
	}
	return debts, nil
}

// PayDebt increments amount_paid. Debts never touch balance accounts: cash
// received or handed over is recorded against accounts separately.
func (s *debtService) PayDebt(ctx context.Context, debtID string, req dto.PayDebtRequest, userID string) (*domain.Debt, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.IsPaid() {
		return nil, apperrors.NewAppError(400, "debt is already fully paid", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(debt.Balance()) {
		return nil, apperrors.NewAppError(400,
			fmt.Sprintf("payment %s exceeds outstanding balance %s", req.Amount.StringFixed(2), debt.Balance().StringFixed(2)),
			apperrors.ErrValidation)
	}

	paid, err := s.debtRepo.ApplyDebtPayment(ctx, debtID, req.Amount, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "failed to apply debt payment", slog.String("debt_id", debtID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "debt payment recorded",
		slog.String("debt_id", debtID),
		slog.String("amount", req.Amount.String()),
		slog.Bool("settled", paid.IsPaid()))
	return paid, nil
}
