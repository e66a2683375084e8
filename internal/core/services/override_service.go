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
	"github.com/SscSPs/reconciliation_engine/internal/dto"
	"github.com/go-playground/validator/v10"
)

type overrideService struct {
	BaseService
	store    portsrepo.TransactionStore
	reports  portssvc.MonthlyReportSvc
	validate *validator.Validate
	writes   *latestRunGate
	// shared orders writes across replicas, nil on a single instance
	shared portsrepo.WriteSequencer
}

// NewOverrideService creates the monthly override manager. shared may be nil.
func NewOverrideService(store portsrepo.TransactionStore, reports portssvc.MonthlyReportSvc, shared portsrepo.WriteSequencer, options ...BaseServiceOption) portssvc.OverrideSvc {
	return &overrideService{
		BaseService: newBaseService(options...),
		store:       store,
		reports:     reports,
		validate:    newValidator(),
		writes:      newLatestRunGate(),
		shared:      shared,
	}
}

var _ portssvc.OverrideSvc = (*overrideService)(nil)

func (s *overrideService) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	if err := key.Validate(); err != nil {
		return nil, apperrors.Validationf("%s", err.Error())
	}
	ov, err := s.store.GetOverride(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load override", slog.String("period", key.String()))
		}
		return nil, fmt.Errorf("override for %s: %w", key, err)
	}
	return ov, nil
}

// SaveOverride stores the request verbatim. The values are never recomputed afterwards.
func (s *overrideService) SaveOverride(ctx context.Context, req dto.SaveOverrideRequest, userID string) (*domain.Override, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%s", validationMessage(err))
	}
	for cat := range req.ExpenseCategories {
		if !cat.IsValid() {
			return nil, apperrors.Validationf("unknown expense category %q", cat)
		}
	}
	for adminID := range req.AdminCommissions {
		if adminID == "" {
			return nil, apperrors.Validationf("admin commission override without admin id")
		}
	}

	override := req.ToOverride(userID, s.Now())
	if err := s.write(ctx, override.Period, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.PutOverride(ctx, override)
	}); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Monthly override saved",
		slog.String("period", override.Period.String()),
		slog.String("user_id", userID))
	return &override, nil
}

// DeleteOverride removes the frozen figures; the next report is fully automatic again.
func (s *overrideService) DeleteOverride(ctx context.Context, key domain.PeriodKey, userID string) error {
	if err := key.Validate(); err != nil {
		return apperrors.Validationf("%s", err.Error())
	}
	if err := s.write(ctx, key, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.DeleteOverride(ctx, key)
	}); err != nil {
		return err
	}

	s.LogInfo(ctx, "Monthly override deleted",
		slog.String("period", key.String()),
		slog.String("user_id", userID))
	return nil
}

// FreezeMonthlyReport computes the automatic figures and stores them as the override. Only
// the newest write request per period may commit: an older freeze still computing when a
// newer save, delete or freeze arrives is cancelled and its result discarded.
func (s *overrideService) FreezeMonthlyReport(ctx context.Context, req dto.FreezeOverrideRequest, userID string) (*domain.Override, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validationf("%s", validationMessage(err))
	}
	key := req.Key()
	gateKey := key.String()

	runCtx, id, done := s.writes.begin(ctx, gateKey)
	defer done()
	gen := s.nextGeneration(runCtx, gateKey)

	report, err := s.reports.MonthlyReport(runCtx, key)
	if err != nil {
		if ctx.Err() == nil && !s.writes.isCurrent(gateKey, id) {
			return nil, s.superseded(ctx, key)
		}
		return nil, err
	}

	override := freezeOverride(report)
	override.Note = req.Note
	override.UpdatedAt = s.Now()
	override.UpdatedBy = userID

	err = s.commit(runCtx, gateKey, gen, func(txCtx context.Context, tx portsrepo.StoreTx) error {
		if !s.writes.isCurrent(gateKey, id) {
			return apperrors.ErrSuperseded
		}
		return tx.PutOverride(txCtx, override)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrSuperseded) || (ctx.Err() == nil && !s.writes.isCurrent(gateKey, id)) {
			return nil, s.superseded(ctx, key)
		}
		s.LogError(ctx, err, "Failed to store frozen report", slog.String("period", key.String()))
		return nil, fmt.Errorf("failed to store frozen report: %w", err)
	}

	s.LogInfo(ctx, "Monthly report frozen as override",
		slog.String("period", key.String()),
		slog.String("user_id", userID))
	return &override, nil
}

// write runs fn as the newest write request for key, superseding any running freeze.
func (s *overrideService) write(ctx context.Context, key domain.PeriodKey, fn portsrepo.TxFunc) error {
	gateKey := key.String()
	runCtx, id, done := s.writes.begin(ctx, gateKey)
	defer done()
	gen := s.nextGeneration(runCtx, gateKey)

	err := s.commit(runCtx, gateKey, gen, func(txCtx context.Context, tx portsrepo.StoreTx) error {
		if !s.writes.isCurrent(gateKey, id) {
			return apperrors.ErrSuperseded
		}
		return fn(txCtx, tx)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("override for %s: %w", key, err)
	case errors.Is(err, apperrors.ErrSuperseded) || (ctx.Err() == nil && !s.writes.isCurrent(gateKey, id)):
		return s.superseded(ctx, key)
	default:
		s.LogError(ctx, err, "Failed to write override", slog.String("period", key.String()))
		return fmt.Errorf("failed to write override for %s: %w", key, err)
	}
}

// nextGeneration draws a shared write generation, or 0 when writes are only ordered on
// this instance.
func (s *overrideService) nextGeneration(ctx context.Context, gateKey string) int64 {
	if s.shared == nil {
		return 0
	}
	gen, err := s.shared.Begin(ctx, gateKey)
	if err != nil {
		s.LogError(ctx, err, "Shared write sequence unavailable, ordering override writes locally",
			slog.String("period", gateKey))
		return 0
	}
	return gen
}

// commit runs fn in a store transaction, under the shared sequence when gen was drawn.
func (s *overrideService) commit(ctx context.Context, gateKey string, gen int64, fn portsrepo.TxFunc) error {
	run := func(ctx context.Context) error {
		return s.store.RunInTransaction(ctx, fn)
	}
	if gen == 0 {
		return run(ctx)
	}
	return s.shared.Commit(ctx, gateKey, gen, run)
}

func (s *overrideService) superseded(ctx context.Context, key domain.PeriodKey) error {
	s.LogWarn(ctx, "Override write superseded by a newer request", slog.String("period", key.String()))
	return fmt.Errorf("override for %s: %w", key, apperrors.ErrSuperseded)
}
