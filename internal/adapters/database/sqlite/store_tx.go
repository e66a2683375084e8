package sqlite

import (
	"context"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
)

type storeTx struct {
	q querier
}

var _ portsrepo.StoreTx = (*storeTx)(nil)

func (t *storeTx) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return getSale(ctx, t.q, saleID)
}

func (t *storeTx) ListSales(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Sale, error) {
	return listSales(ctx, t.q, filter)
}

func (t *storeTx) SaveSaleFlags(ctx context.Context, sale domain.Sale) error {
	return saveSaleFlags(ctx, t.q, sale)
}

func (t *storeTx) UpsertSale(ctx context.Context, sale domain.Sale) error {
	return upsertSale(ctx, t.q, sale)
}

func (t *storeTx) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	return getExpense(ctx, t.q, expenseID)
}

func (t *storeTx) CreateExpense(ctx context.Context, expense domain.Expense) error {
	return writeExpense(ctx, t.q, expense, false)
}

func (t *storeTx) UpsertExpense(ctx context.Context, expense domain.Expense) error {
	return writeExpense(ctx, t.q, expense, true)
}

func (t *storeTx) DeleteExpense(ctx context.Context, expenseID string) error {
	return deleteExpense(ctx, t.q, expenseID)
}

func (t *storeTx) ListUncategorizedExpenses(ctx context.Context) ([]domain.Expense, error) {
	return listUncategorizedExpenses(ctx, t.q)
}

func (t *storeTx) SetExpenseCategory(ctx context.Context, expenseID string, category domain.ExpenseCategory) error {
	return setExpenseCategory(ctx, t.q, expenseID, category)
}

func (t *storeTx) UpsertManualIncome(ctx context.Context, income domain.ManualIncome) error {
	return upsertManualIncome(ctx, t.q, income)
}

func (t *storeTx) UpsertCashCut(ctx context.Context, cut domain.CashCut) error {
	return upsertCashCut(ctx, t.q, cut)
}

func (t *storeTx) UpsertProfessional(ctx context.Context, professional domain.Professional) error {
	return upsertProfessional(ctx, t.q, professional)
}

func (t *storeTx) UpsertProduct(ctx context.Context, product domain.Product) error {
	return upsertProduct(ctx, t.q, product)
}

func (t *storeTx) UpsertAdminCommission(ctx context.Context, commission domain.AdminCommission) error {
	return upsertAdminCommission(ctx, t.q, commission)
}

func (t *storeTx) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	return getOverride(ctx, t.q, key)
}

func (t *storeTx) PutOverride(ctx context.Context, override domain.Override) error {
	return putOverride(ctx, t.q, override)
}

func (t *storeTx) DeleteOverride(ctx context.Context, key domain.PeriodKey) error {
	return deleteOverride(ctx, t.q, key)
}
