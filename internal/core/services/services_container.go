package services

import (
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
	"github.com/SscSPs/reconciliation_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// sequencer orders override writes across replicas and may be nil.
func NewServiceContainer(cfg *config.Config, store portsrepo.TransactionStore, sequencer portsrepo.WriteSequencer, options ...BaseServiceOption) *portssvc.ServiceContainer {
	opts := append([]BaseServiceOption{WithLocation(cfg.BusinessLocation)}, options...)

	container := &portssvc.ServiceContainer{}

	// The attributor is shared by the commission summary and the monthly report
	container.Commissions = NewCommissionAttributor(store, opts...)
	container.CashBalance = NewCashBalanceService(store, opts...)
	container.Settlement = NewSettlementService(store, opts...)
	container.Reports = NewMonthlyReportService(store, container.Commissions, opts...)
	container.Overrides = NewOverrideService(store, container.Reports, sequencer, opts...)
	container.CategoryMigrator = NewExpenseCategoryMigrator(store, opts...)
	container.Import = NewImportService(store, opts...)

	return container
}
