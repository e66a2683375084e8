package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

type monthlyReportService struct {
	BaseService
	store      portsrepo.TransactionStore
	attributor portssvc.CommissionAttributorSvc
}

// NewMonthlyReportService creates the monthly aggregator.
func NewMonthlyReportService(store portsrepo.TransactionStore, attributor portssvc.CommissionAttributorSvc, options ...BaseServiceOption) portssvc.MonthlyReportSvc {
	return &monthlyReportService{
		BaseService: newBaseService(options...),
		store:       store,
		attributor:  attributor,
	}
}

var _ portssvc.MonthlyReportSvc = (*monthlyReportService)(nil)

func (s *monthlyReportService) MonthlyReport(ctx context.Context, key domain.PeriodKey) (*domain.MonthlyReport, error) {
	if err := key.Validate(); err != nil {
		return nil, apperrors.Validationf("%s", err.Error())
	}

	in, err := s.loadInputs(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to load monthly report inputs", slog.String("period", key.String()))
		return nil, fmt.Errorf("failed to load monthly report inputs: %w", err)
	}

	report := buildMonthlyReport(key, aggregateMonth(in, s.attributor.Summarize), in.Admins, in.Override)

	s.LogInfo(ctx, "Monthly report generated",
		slog.String("period", key.String()),
		slog.Int("sale_count", len(in.Sales)),
		slog.Int("expense_count", len(in.Expenses)),
		slog.Bool("overridden", report.Overridden))
	return report, nil
}

// loadInputs issues every read of a report in parallel.
func (s *monthlyReportService) loadInputs(ctx context.Context, key domain.PeriodKey) (monthInputs, error) {
	var in monthInputs
	from, to := key.Bounds(s.Location)
	filter := portsrepo.QueryFilter{LocationID: key.LocationID, From: &from, To: &to}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		in.Sales, err = s.store.ListSales(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		in.Expenses, err = s.store.ListExpenses(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		in.Professionals, err = s.store.ListProfessionals(gctx, key.LocationID)
		return err
	})
	g.Go(func() error {
		var err error
		in.Products, err = s.store.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		in.Admins, err = s.store.ListAdminCommissions(gctx, key)
		return err
	})
	g.Go(func() error {
		ov, err := s.store.GetOverride(gctx, key)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		in.Override = ov
		return nil
	})
	if err := g.Wait(); err != nil {
		return monthInputs{}, err
	}
	return in, nil
}
