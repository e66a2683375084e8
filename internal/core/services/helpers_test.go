package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/adapters/database/memory"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

// testOptions pins the clock and makes generated ids predictable.
func testOptions() []services.BaseServiceOption {
	n := 0
	return []services.BaseServiceOption{
		services.WithLocation(time.UTC),
		services.WithClock(func() time.Time { return jan(31, 12, 0) }),
		services.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}
}

func seed(t *testing.T, store *memory.Store, fn portsrepo.TxFunc) {
	t.Helper()
	require.NoError(t, store.RunInTransaction(context.Background(), fn))
}

func seedSales(t *testing.T, store *memory.Store, sales ...domain.Sale) {
	t.Helper()
	seed(t, store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		for _, s := range sales {
			if err := tx.UpsertSale(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func seedExpenses(t *testing.T, store *memory.Store, expenses ...domain.Expense) {
	t.Helper()
	seed(t, store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		for _, e := range expenses {
			if err := tx.UpsertExpense(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
}

func getSale(t *testing.T, store *memory.Store, saleID string) domain.Sale {
	t.Helper()
	var sale *domain.Sale
	seed(t, store, func(ctx context.Context, tx portsrepo.StoreTx) error {
		var err error
		sale, err = tx.GetSale(ctx, saleID)
		return err
	})
	return *sale
}

func serviceItem(professionalID, amount string) domain.LineItem {
	return domain.LineItem{
		Kind:           domain.ItemService,
		UnitPrice:      dec(amount),
		Quantity:       1,
		ProfessionalID: professionalID,
	}
}

func cashSale(id, locationID string, at time.Time, total string, items ...domain.LineItem) domain.Sale {
	return domain.Sale{
		SaleID:        id,
		LocationID:    locationID,
		SoldAt:        at,
		Total:         dec(total),
		PaymentMethod: domain.PaymentCash,
		Items:         items,
	}
}

// failingStore injects a storage failure into the transactional view of a memory store.
type failingStore struct {
	*memory.Store
	failOn string
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) RunInTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return s.Store.RunInTransaction(ctx, func(ctx context.Context, tx portsrepo.StoreTx) error {
		return fn(ctx, &failingTx{StoreTx: tx, failOn: s.failOn})
	})
}

type failingTx struct {
	portsrepo.StoreTx
	failOn string
}

func (t *failingTx) SaveSaleFlags(ctx context.Context, sale domain.Sale) error {
	if t.failOn == "SaveSaleFlags" {
		return errDiskFull
	}
	return t.StoreTx.SaveSaleFlags(ctx, sale)
}

func (t *failingTx) DeleteExpense(ctx context.Context, expenseID string) error {
	if t.failOn == "DeleteExpense" {
		return errDiskFull
	}
	return t.StoreTx.DeleteExpense(ctx, expenseID)
}

func (t *failingTx) CreateExpense(ctx context.Context, expense domain.Expense) error {
	if t.failOn == "CreateExpense" {
		return errDiskFull
	}
	return t.StoreTx.CreateExpense(ctx, expense)
}
