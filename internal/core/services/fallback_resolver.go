package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

type fallbackResolver struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewFallbackResolver creates the cash fallback resolver. It is read-only:
// it reports coverage but never moves money or confirms anything on its own.
func NewFallbackResolver(repo portsrepo.AccountRepositoryFacade) *fallbackResolver {
	return &fallbackResolver{accountRepo: repo}
}

func (s *fallbackResolver) CheckPayment(ctx context.Context, params dto.FallbackCheckParams) (*domain.FallbackCheck, error) {
	if !params.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	return s.resolve(ctx, params.AccountID, params.Amount)
}

// resolve builds the coverage report for a prospective debit. The answer is
// advisory: payment paths re-check balances under row locks, so a stale
// report can never overdraw an account.
func (s *fallbackResolver) resolve(ctx context.Context, accountID string, amount decimal.Decimal) (*domain.FallbackCheck, error) {
	source, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to load source account for fallback check", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if !source.IsActive {
		return nil, apperrors.NewAppError(400, "account is inactive", apperrors.ErrValidation)
	}
	if !source.Kind.IsLiquid() {
		return nil, apperrors.NewAppError(400, "account is not a payment source", apperrors.ErrValidation)
	}

	check := &domain.FallbackCheck{
		SourceAccountID: source.AccountID,
		SourceBalance:   source.Balance,
	}

	if source.Balance.GreaterThanOrEqual(amount) {
		check.CanPay = true
	}

	// Only cash drawers cascade to a second account.
	if source.Kind.IsCash() && source.FallbackAccountID != nil {
		fallback, err := s.accountRepo.FindAccountByID(ctx, *source.FallbackAccountID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "failed to load fallback account", slog.String("account_id", *source.FallbackAccountID))
				return nil, err
			}
			// A dangling fallback reference behaves as no fallback at all.
			return check, nil
		}
		// CanPay speaks for the source account alone; a covering fallback
		// still requires explicit caller consent.
		if fallback.IsActive {
			check.FallbackConfigured = true
			check.FallbackAccountID = fallback.AccountID
			check.FallbackBalance = fallback.Balance
			check.FallbackAvailable = fallback.Balance.GreaterThanOrEqual(amount)
		}
	}

	return check, nil
}
