package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

type commissionAttributor struct {
	BaseService
	store portsrepo.TransactionStore
}

// NewCommissionAttributor creates the commission attribution service.
func NewCommissionAttributor(store portsrepo.TransactionStore, options ...BaseServiceOption) portssvc.CommissionAttributorSvc {
	return &commissionAttributor{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.CommissionAttributorSvc = (*commissionAttributor)(nil)

// Summarize groups commission payments by recipient display name. Professionals are looked
// up by id first; unknown recipients keep their raw value, which is how older records named
// the professional directly.
func (s *commissionAttributor) Summarize(expenses []domain.Expense, professionals []domain.Professional) map[string]domain.CommissionSummary {
	names := make(map[string]string, len(professionals))
	for _, p := range professionals {
		if p.Name != "" {
			names[p.ProfessionalID] = p.Name
		}
	}

	out := make(map[string]domain.CommissionSummary)
	for _, e := range expenses {
		if !e.IsCommissionPayment() {
			continue
		}
		name, ok := names[e.Recipient]
		if !ok {
			name = e.Recipient
		}
		out[name] = out[name].Add(CommissionBreakdownOf(e))
	}

	for name, summary := range out {
		if summary.Total().IsZero() {
			delete(out, name)
		}
	}
	return out
}

func (s *commissionAttributor) CommissionSummary(ctx context.Context, locationID string, from, to time.Time) (map[string]domain.CommissionSummary, error) {
	if !from.Before(to) {
		return nil, apperrors.Validationf("from (%s) must be before to (%s)", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	var (
		expenses      []domain.Expense
		professionals []domain.Professional
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(gctx, portsrepo.QueryFilter{LocationID: locationID, From: &from, To: &to})
		return err
	})
	g.Go(func() error {
		var err error
		professionals, err = s.store.ListProfessionals(gctx, locationID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load commission inputs", slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to load commission inputs: %w", err)
	}

	summary := s.Summarize(expenses, professionals)
	for name, sum := range summary {
		summary[name] = sum.Rounded()
	}

	s.LogInfo(ctx, "Commission summary generated",
		slog.String("location_id", locationID),
		slog.Int("expense_count", len(expenses)),
		slog.Int("recipient_count", len(summary)))
	return summary, nil
}
