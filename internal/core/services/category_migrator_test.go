package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/memory"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uncategorized(t *testing.T, store *memory.Store) []domain.Expense {
	t.Helper()
	var out []domain.Expense
	seed(t, store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		var err error
		out, err = tx.ListUncategorizedExpenses(ctx)
		return err
	})
	return out
}

func TestExpenseCategoryMigrator(t *testing.T) {
	store := memory.NewStore()
	seedExpenses(t, store,
		domain.Expense{ExpenseID: "e1", Date: jan(2, 0, 0), Concept: "Commission payroll", Recipient: "p1", Amount: dec("10")},
		domain.Expense{ExpenseID: "e2", Date: jan(2, 0, 0), Concept: "Payroll", Recipient: "staff", Amount: dec("10")},
		domain.Expense{ExpenseID: "e3", Date: jan(2, 0, 0), Concept: "Rent", Recipient: "Fixed costs", Amount: dec("10")},
		domain.Expense{ExpenseID: "e4", Date: jan(2, 0, 0), Concept: "Supplies", Recipient: "shop", Amount: dec("10")},
		domain.Expense{ExpenseID: "e5", Date: jan(2, 0, 0), Concept: "commission", Category: domain.CategoryOther, Amount: dec("10")},
	)
	migrator := services.NewExpenseCategoryMigrator(store, testOptions()...)

	planned, err := migrator.MigrateExpenseCategories(context.Background(), true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.CategoryAssignment{
		{ExpenseID: "e1", Concept: "Commission payroll", Recipient: "p1", Category: domain.CategoryCommissionPayment},
		{ExpenseID: "e2", Concept: "Payroll", Recipient: "staff", Category: domain.CategoryPayroll},
		{ExpenseID: "e3", Concept: "Rent", Recipient: "Fixed costs", Category: domain.CategoryFixedCost},
		{ExpenseID: "e4", Concept: "Supplies", Recipient: "shop", Category: domain.CategoryOther},
	}, planned)
	assert.Len(t, uncategorized(t, store), 4, "dry run writes nothing")

	applied, err := migrator.MigrateExpenseCategories(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, planned, applied)
	assert.Empty(t, uncategorized(t, store))

	again, err := migrator.MigrateExpenseCategories(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, again)

	expenses, err := store.ListExpenses(context.Background(), portsrepo.QueryFilter{})
	require.NoError(t, err)
	for _, e := range expenses {
		if e.ExpenseID == "e5" {
			assert.Equal(t, domain.CategoryOther, e.Category, "stored categories are never reclassified")
		}
	}
}
