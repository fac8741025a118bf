package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/univenta/retail_ledger_app/internal/apperrors"
	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
	"github.com/univenta/retail_ledger_app/internal/dto"
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the balance account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) *accountService {
	return &accountService{accountRepo: repo}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.BalanceAccount, error) {
	now := time.Now()

	if req.FallbackAccountID != nil {
		if err := s.validateFallbackPairing(ctx, req.Kind, *req.FallbackAccountID); err != nil {
			return nil, err
		}
	}

	account := domain.BalanceAccount{
		AccountID:         uuid.NewString(),
		Code:              req.Code,
		Name:              req.Name,
		Kind:              req.Kind,
		Balance:           req.InitialBalance,
		FallbackAccountID: req.FallbackAccountID,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "failed to save account", slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "account created", slog.String("account_id", account.AccountID), slog.String("kind", string(account.Kind)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.BalanceAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.BalanceAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.BalanceAccount{}
	}
	return accounts, nil
}

func (s *accountService) ListAuditEntries(ctx context.Context, accountID string, limit int, offset int) ([]domain.AccountAuditEntry, error) {
	// Verify the account exists so a bad ID yields 404 rather than an empty list.
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	entries, err := s.accountRepo.ListAuditEntries(ctx, accountID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list audit entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	if entries == nil {
		entries = []domain.AccountAuditEntry{}
	}
	return entries, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.BalanceAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.FallbackAccountID != nil {
		if *req.FallbackAccountID == "" {
			account.FallbackAccountID = nil
		} else {
			if err := s.validateFallbackPairing(ctx, account.Kind, *req.FallbackAccountID); err != nil {
				return nil, err
			}
			account.FallbackAccountID = req.FallbackAccountID
		}
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "account updated", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) SetBalance(ctx context.Context, accountID string, req dto.SetBalanceRequest, userID string) (*domain.BalanceAccount, *domain.AccountAuditEntry, error) {
	account, entry, err := s.accountRepo.SetAccountBalance(ctx, accountID, req.NewBalance, req.Reason, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to set account balance", slog.String("account_id", accountID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "account balance overridden",
		slog.String("account_id", accountID),
		slog.String("previous_balance", entry.PreviousBalance.String()),
		slog.String("new_balance", entry.NewBalance.String()))
	return account, entry, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "failed to deactivate account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "account deactivated", slog.String("account_id", accountID))
	return nil
}

// validateFallbackPairing enforces the fallback configuration rules: only
// cash accounts carry a fallback, and the fallback target must itself be an
// active cash account.
func (s *accountService) validateFallbackPairing(ctx context.Context, kind domain.AccountKind, fallbackID string) error {
	if !kind.IsCash() {
		return apperrors.NewAppError(400, "only cash accounts may configure a fallback account", apperrors.ErrValidation)
	}

	fallback, err := s.accountRepo.FindAccountByID(ctx, fallbackID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(400, fmt.Sprintf("fallback account %s not found", fallbackID), apperrors.ErrValidation)
		}
		return err
	}
	if !fallback.Kind.IsCash() {
		return apperrors.NewAppError(400, "fallback account must be a cash account", apperrors.ErrValidation)
	}
	if !fallback.IsActive {
		return apperrors.NewAppError(400, "fallback account is inactive", apperrors.ErrValidation)
	}
	return nil
}
