package services

import (
	"context"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	CashBalance      CashBalanceSvc
	Commissions      CommissionAttributorSvc
	Settlement       SettlementSvcFacade
	Reports          MonthlyReportSvc
	Overrides        OverrideSvc
	CategoryMigrator ExpenseCategoryMigratorSvc
	Import           ImportSvc
}

// ExpenseCategoryMigratorSvc back-fills the category of expenses created before categories
// existed.
type ExpenseCategoryMigratorSvc interface {
	// MigrateExpenseCategories classifies every un-categorised expense. With dryRun nothing
	// is written and the planned assignments are returned.
	MigrateExpenseCategories(ctx context.Context, dryRun bool) ([]domain.CategoryAssignment, error)
}

// ImportSvc ingests records produced by external workflows.
type ImportSvc interface {
	Import(ctx context.Context, req dto.ImportBatchRequest) (*dto.ImportResult, error)
}
