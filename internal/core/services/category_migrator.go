package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/reconciliation_engine/internal/core/ports/services"
)

type categoryMigrator struct {
	BaseService
	store portsrepo.TransactionManager
}

// NewExpenseCategoryMigrator creates the back-fill job for legacy expense categories.
func NewExpenseCategoryMigrator(store portsrepo.TransactionManager, options ...BaseServiceOption) portssvc.ExpenseCategoryMigratorSvc {
	return &categoryMigrator{
		BaseService: newBaseService(options...),
		store:       store,
	}
}

var _ portssvc.ExpenseCategoryMigratorSvc = (*categoryMigrator)(nil)

// MigrateExpenseCategories classifies every expense without a category using its legacy
// concept and recipient. Running it twice is a no-op the second time.
func (s *categoryMigrator) MigrateExpenseCategories(ctx context.Context, dryRun bool) ([]domain.CategoryAssignment, error) {
	var assignments []domain.CategoryAssignment

	err := s.store.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		assignments = nil
		expenses, err := tx.ListUncategorizedExpenses(ctx)
		if err != nil {
			return fmt.Errorf("failed to list uncategorized expenses: %w", err)
		}
		for _, e := range expenses {
			category := domain.ClassifyLegacyExpense(e.Concept, e.Recipient)
			assignments = append(assignments, domain.CategoryAssignment{
				ExpenseID: e.ExpenseID,
				Concept:   e.Concept,
				Recipient: e.Recipient,
				Category:  category,
			})
			if dryRun {
				continue
			}
			if err := tx.SetExpenseCategory(ctx, e.ExpenseID, category); err != nil {
				return fmt.Errorf("failed to set category of expense %s: %w", e.ExpenseID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Expense category migration failed", slog.Bool("dry_run", dryRun))
		return nil, err
	}

	s.LogInfo(ctx, "Expense category migration finished",
		slog.Bool("dry_run", dryRun),
		slog.Int("expenses", len(assignments)))
	return assignments, nil
}
