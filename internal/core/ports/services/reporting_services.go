package services

import (
	"context"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
)

// MonthlyReportSvc builds the monthly profit and loss report.
type MonthlyReportSvc interface {
	// MonthlyReport computes the automatic figures of a period and merges its override.
	MonthlyReport(ctx context.Context, key domain.PeriodKey) (*domain.MonthlyReport, error)
}

// OverrideSvc manages the frozen monthly figures.
type OverrideSvc interface {
	GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error)

	// SaveOverride replaces the override of the request's period.
	SaveOverride(ctx context.Context, req dto.SaveOverrideRequest, userID string) (*domain.Override, error)

	// DeleteOverride removes the override so the next report falls back to automatic values.
	DeleteOverride(ctx context.Context, key domain.PeriodKey, userID string) error

	// FreezeMonthlyReport stores the current automatic figures as the period's override.
	// A newer freeze of the same period supersedes this one, which then returns
	// apperrors.ErrSuperseded without writing.
	FreezeMonthlyReport(ctx context.Context, req dto.FreezeOverrideRequest, userID string) (*domain.Override, error)
}
