package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/univenta/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/univenta/retail_ledger_app/internal/core/ports/repositories"
)

type patrimonyService struct {
	BaseService
	patrimonyRepo portsrepo.PatrimonyReader
}

// NewPatrimonyService creates the net-worth aggregator. It holds no state and
// recomputes the snapshot from the ledger on every call.
func NewPatrimonyService(repo portsrepo.PatrimonyReader) *patrimonyService {
	return &patrimonyService{patrimonyRepo: repo}
}

func (s *patrimonyService) GetPatrimony(ctx context.Context) (*domain.PatrimonySnapshot, error) {
	balances, err := s.patrimonyRepo.SumBalancesByKind(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to sum account balances")
		return nil, fmt.Errorf("failed to sum account balances: %w", err)
	}

	inventory, _, err := s.patrimonyRepo.InventoryValuation(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to read inventory valuation")
		return nil, fmt.Errorf("failed to read inventory valuation: %w", err)
	}

	receivables, err := s.patrimonyRepo.SumPendingDebts(ctx, domain.Receivable)
	if err != nil {
		s.LogError(ctx, err, "failed to sum pending receivables")
		return nil, fmt.Errorf("failed to sum pending receivables: %w", err)
	}

	payables, err := s.patrimonyRepo.SumPendingDebts(ctx, domain.Payable)
	if err != nil {
		s.LogError(ctx, err, "failed to sum pending payables")
		return nil, fmt.Errorf("failed to sum pending payables: %w", err)
	}

	pendingExpenses, err := s.patrimonyRepo.SumPendingExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to sum pending expenses")
		return nil, fmt.Errorf("failed to sum pending expenses: %w", err)
	}

	snapshot := domain.ComputePatrimony(domain.PatrimonyInputs{
		BalancesByKind:     balances,
		InventoryValuation: inventory,
		PendingReceivables: receivables,
		PendingPayables:    payables,
		PendingExpenses:    pendingExpenses,
	}, time.Now())

	s.LogDebug(ctx, "patrimony computed",
		slog.String("assets", snapshot.Assets.Total.String()),
		slog.String("liabilities", snapshot.Liabilities.Total.String()),
		slog.String("net", snapshot.NetPatrimony.String()))
	return &snapshot, nil
}
