package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateSQLite(db))
	s := NewStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStore_SaleRoundTripAndFlags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	soldAt := time.Date(2024, 2, 3, 15, 4, 5, 0, time.UTC)
	discount := dec("10")
	sale := domain.Sale{
		SaleID:         "s1",
		LocationID:     "loc-1",
		SoldAt:         soldAt,
		Total:          dec("250.50"),
		PaymentMethod:  domain.PaymentMixed,
		MixedBreakdown: &domain.MixedBreakdown{Cash: dec("100"), Card: dec("150.50")},
		Items: []domain.LineItem{
			{Kind: domain.ItemService, UnitPrice: dec("200"), Quantity: 1, DiscountAmount: &discount, ProfessionalID: "p1"},
			{Kind: domain.ItemProduct, ProductID: "prod-1", UnitPrice: dec("30.25"), Quantity: 2, ProfessionalID: "p2"},
		},
	}

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.UpsertSale(ctx, sale)
	}))

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		got, err := tx.GetSale(ctx, "s1")
		require.NoError(t, err)
		got.Items[1].CommissionPaid = true
		got.TipPaid = true
		return tx.SaveSaleFlags(ctx, *got)
	}))

	sales, err := s.ListSales(ctx, portsrepo.QueryFilter{LocationID: "loc-1"})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	got := sales[0]
	assert.True(t, got.SoldAt.Equal(soldAt))
	assert.True(t, got.Total.Equal(dec("250.50")))
	require.NotNil(t, got.MixedBreakdown)
	assert.True(t, got.MixedBreakdown.Card.Equal(dec("150.50")))
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].DiscountAmount)
	assert.True(t, got.Items[0].DiscountAmount.Equal(discount))
	assert.Nil(t, got.Items[1].DiscountAmount)
	assert.False(t, got.Items[0].CommissionPaid)
	assert.True(t, got.Items[1].CommissionPaid)
	assert.True(t, got.TipPaid)
}

func TestStore_ExpenseSettlementAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	expense := domain.Expense{
		ExpenseID:  "e1",
		LocationID: "loc-1",
		Date:       time.Date(2024, 2, 3, 18, 0, 0, 0, time.UTC),
		Concept:    "Commission",
		Category:   domain.CategoryCommissionPayment,
		Recipient:  "p1",
		Amount:     dec("55"),
		Breakdown:  &domain.CommissionBreakdown{Service: dec("50"), Tip: dec("5")},
		Settlement: &domain.StructuredSettlement{
			ItemRefs: []domain.ItemRef{{SaleID: "s1", ItemIndex: 0}},
			TipRefs:  []string{"s1"},
		},
		CreatedAt: time.Date(2024, 2, 3, 18, 0, 1, 0, time.UTC),
	}

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.CreateExpense(ctx, expense)
	}))
	err := s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.CreateExpense(ctx, expense)
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	expenses, err := s.ListExpenses(ctx, portsrepo.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, expense.Settlement, expenses[0].Settlement)
	require.NotNil(t, expenses[0].Breakdown)
	assert.True(t, expenses[0].Breakdown.Tip.Equal(dec("5")))

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.DeleteExpense(ctx, "e1")
	}))
	err = s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.DeleteExpense(ctx, "e1")
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		require.NoError(t, tx.UpsertManualIncome(ctx, domain.ManualIncome{
			IncomeID: "i1", LocationID: "loc-1", Date: time.Now(), Amount: dec("20"),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	incomes, err := s.ListManualIncomes(ctx, portsrepo.QueryFilter{})
	require.NoError(t, err)
	assert.Empty(t, incomes)
}

func TestStore_CashCutsAndReferenceData(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 2, 1, 22, 0, 0, 0, time.UTC)
	systemTotal := dec("1200")
	rule := domain.CommissionRule{Kind: domain.CommissionPercentage, Value: dec("10")}

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		require.NoError(t, tx.UpsertCashCut(ctx, domain.CashCut{CutID: "c1", LocationID: "loc-1", CutAt: base}))
		require.NoError(t, tx.UpsertCashCut(ctx, domain.CashCut{CutID: "c2", LocationID: "loc-1", CutAt: base.Add(24 * time.Hour), SystemTotal: &systemTotal}))
		require.NoError(t, tx.UpsertProfessional(ctx, domain.Professional{
			ProfessionalID:     "p1",
			LocationID:         "loc-1",
			Name:               "Ana",
			ProductCommissions: map[string]domain.CommissionRule{"prod-1": rule},
		}))
		require.NoError(t, tx.UpsertProduct(ctx, domain.Product{ProductID: "prod-1", PurchaseCost: dec("12.5")}))
		return tx.UpsertAdminCommission(ctx, domain.AdminCommission{
			AdminID: "a1",
			Period:  domain.PeriodKey{LocationID: "loc-1", Year: 2024, Month: 2},
			Service: &rule,
		})
	}))

	cut, err := s.LatestCashCut(ctx, "loc-1")
	require.NoError(t, err)
	assert.Equal(t, "c2", cut.CutID)
	require.NotNil(t, cut.SystemTotal)
	assert.True(t, cut.SystemTotal.Equal(systemTotal))

	_, err = s.LatestCashCut(ctx, "loc-9")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	profs, err := s.ListProfessionals(ctx, "loc-1")
	require.NoError(t, err)
	require.Len(t, profs, 1)
	assert.Nil(t, profs[0].DefaultProductCommission)
	assert.True(t, profs[0].ProductCommissions["prod-1"].Value.Equal(dec("10")))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].DefaultCommission)

	admins, err := s.ListAdminCommissions(ctx, domain.PeriodKey{Year: 2024, Month: 2})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.NotNil(t, admins[0].Service)
	assert.Nil(t, admins[0].Product)
}

func TestStore_Overrides(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	key := domain.PeriodKey{LocationID: "loc-1", Year: 2024, Month: 2}
	revenue := dec("9000")

	_, err := s.GetOverride(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.PutOverride(ctx, domain.Override{Period: key, ServiceRevenue: &revenue, UpdatedBy: "u1", UpdatedAt: time.Now()})
	}))

	got, err := s.GetOverride(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got.ServiceRevenue)
	assert.True(t, got.ServiceRevenue.Equal(revenue))
	assert.Equal(t, "u1", got.UpdatedBy)

	require.NoError(t, s.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return tx.DeleteOverride(ctx, key)
	}))
	_, err = s.GetOverride(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
