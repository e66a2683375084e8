package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
)

type storeTx struct {
	st *state
}

var _ portsrepo.StoreTx = (*storeTx)(nil)

func (t *storeTx) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	sale, ok := t.st.sales[saleID]
	if !ok {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	sale = cloneSale(sale)
	return &sale, nil
}

func (t *storeTx) ListSales(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Sale, error) {
	return listSales(t.st, filter), nil
}

func (t *storeTx) SaveSaleFlags(ctx context.Context, sale domain.Sale) error {
	stored, ok := t.st.sales[sale.SaleID]
	if !ok {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrNotFound)
	}
	if len(stored.Items) != len(sale.Items) {
		return fmt.Errorf("%w: sale %s has %d items, got %d", apperrors.ErrConflict, sale.SaleID, len(stored.Items), len(sale.Items))
	}
	stored = cloneSale(stored)
	stored.TipPaid = sale.TipPaid
	for i := range stored.Items {
		stored.Items[i].CommissionPaid = sale.Items[i].CommissionPaid
	}
	t.st.sales[sale.SaleID] = stored
	return nil
}

func (t *storeTx) UpsertSale(ctx context.Context, sale domain.Sale) error {
	t.st.sales[sale.SaleID] = cloneSale(sale)
	return nil
}

func (t *storeTx) GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	e, ok := t.st.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	e = cloneExpense(e)
	return &e, nil
}

func (t *storeTx) CreateExpense(ctx context.Context, expense domain.Expense) error {
	if _, ok := t.st.expenses[expense.ExpenseID]; ok {
		return fmt.Errorf("expense %s: %w", expense.ExpenseID, apperrors.ErrDuplicate)
	}
	t.st.expenses[expense.ExpenseID] = cloneExpense(expense)
	return nil
}

func (t *storeTx) UpsertExpense(ctx context.Context, expense domain.Expense) error {
	t.st.expenses[expense.ExpenseID] = cloneExpense(expense)
	return nil
}

func (t *storeTx) DeleteExpense(ctx context.Context, expenseID string) error {
	if _, ok := t.st.expenses[expenseID]; !ok {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	delete(t.st.expenses, expenseID)
	return nil
}

func (t *storeTx) ListUncategorizedExpenses(ctx context.Context) ([]domain.Expense, error) {
	out := make([]domain.Expense, 0)
	for _, e := range t.st.expenses {
		if !e.Category.IsValid() {
			out = append(out, cloneExpense(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseID < out[j].ExpenseID })
	return out, nil
}

func (t *storeTx) SetExpenseCategory(ctx context.Context, expenseID string, category domain.ExpenseCategory) error {
	e, ok := t.st.expenses[expenseID]
	if !ok {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	e = cloneExpense(e)
	e.Category = category
	t.st.expenses[expenseID] = e
	return nil
}

func (t *storeTx) UpsertManualIncome(ctx context.Context, income domain.ManualIncome) error {
	t.st.incomes[income.IncomeID] = income
	return nil
}

func (t *storeTx) UpsertCashCut(ctx context.Context, cut domain.CashCut) error {
	t.st.cuts[cut.CutID] = cut
	return nil
}

func (t *storeTx) UpsertProfessional(ctx context.Context, professional domain.Professional) error {
	t.st.professionals[professional.ProfessionalID] = cloneProfessional(professional)
	return nil
}

func (t *storeTx) UpsertProduct(ctx context.Context, product domain.Product) error {
	t.st.products[product.ProductID] = cloneProduct(product)
	return nil
}

func (t *storeTx) UpsertAdminCommission(ctx context.Context, commission domain.AdminCommission) error {
	t.st.admins[adminKey{AdminID: commission.AdminID, Period: commission.Period}] = cloneAdminCommission(commission)
	return nil
}

func (t *storeTx) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	return getOverride(t.st, key)
}

func (t *storeTx) PutOverride(ctx context.Context, override domain.Override) error {
	t.st.overrides[override.Period] = cloneOverride(override)
	return nil
}

func (t *storeTx) DeleteOverride(ctx context.Context, key domain.PeriodKey) error {
	if _, ok := t.st.overrides[key]; !ok {
		return fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)
	}
	delete(t.st.overrides, key)
	return nil
}
