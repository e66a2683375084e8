package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

type cashBalanceService struct {
	BaseService
	store portsrepo.TransactionStore
}

// NewCashBalanceService creates the live cash calculator.
func NewCashBalanceService(store portsrepo.TransactionStore, options ...BaseServiceOption) portssvc.CashBalanceSvc {
	return &cashBalanceService{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.CashBalanceSvc = (*cashBalanceService)(nil)

// LiveCash sums every cash movement strictly after the latest cut on top of the cut's
// baseline. Reads are over-fetched from the start of the cut's day and filtered in memory so
// an event stamped exactly at the cut is never counted twice.
func (s *cashBalanceService) LiveCash(ctx context.Context, locationID string) (*domain.LiveCashResult, error) {
	result := &domain.LiveCashResult{
		LocationID:     locationID,
		BaselineSource: domain.BaselineNone,
		Reference:      time.Unix(0, 0).UTC(),
	}

	cut, err := s.store.LatestCashCut(ctx, locationID)
	switch {
	case err == nil:
		result.Baseline, result.BaselineSource = cut.Baseline()
		result.CutID = cut.CutID
		result.Reference = cut.CutAt
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogDebug(ctx, "No cash cut found, starting from zero", slog.String("location_id", locationID))
	default:
		s.LogError(ctx, err, "Failed to load latest cash cut", slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to load latest cash cut: %w", err)
	}

	from := domain.StartOfDay(result.Reference, s.Location)
	filter := portsrepo.QueryFilter{LocationID: locationID, From: &from}

	var (
		sales    []domain.Sale
		incomes  []domain.ManualIncome
		expenses []domain.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.store.ListSales(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.store.ListManualIncomes(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load cash movements", slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to load cash movements: %w", err)
	}

	for _, sale := range sales {
		if !sale.SoldAt.After(result.Reference) {
			continue
		}
		result.SalesCash = result.SalesCash.Add(sale.CashComponent())
		result.EventCount++
	}
	for _, income := range incomes {
		if !income.Date.After(result.Reference) {
			continue
		}
		result.Incomes = result.Incomes.Add(income.Amount)
		result.EventCount++
	}
	for _, expense := range expenses {
		if !expense.Date.After(result.Reference) {
			continue
		}
		result.Expenses = result.Expenses.Add(expense.Amount)
		result.EventCount++
	}

	result.Amount = domain.Round2(result.Baseline.Add(result.SalesCash).Add(result.Incomes).Sub(result.Expenses))

	s.LogDebug(ctx, "Live cash computed",
		slog.String("location_id", locationID),
		slog.String("cut_id", result.CutID),
		slog.String("amount", result.Amount.String()),
		slog.Int("events", result.EventCount))
	return result, nil
}
