package repositories

import (
	"context"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
)

// TxFunc is the body of a store transaction. Returning an error rolls back every write made
// through tx.
type TxFunc func(ctx context.Context, tx StoreTx) error

// TransactionManager runs read-validate-write units atomically.
type TransactionManager interface {
	// RunInTransaction executes fn inside one transaction. Either every write made through
	// the StoreTx is committed or none is.
	RunInTransaction(ctx context.Context, fn TxFunc) error
}

// StoreTx is the transactional view of the store handed to a TxFunc.
type StoreTx interface {
	// GetSale loads one sale for update. Returns apperrors.ErrNotFound if it does not exist.
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, filter QueryFilter) ([]domain.Sale, error)
	// SaveSaleFlags persists TipPaid and every item's CommissionPaid of sale.
	SaveSaleFlags(ctx context.Context, sale domain.Sale) error
	UpsertSale(ctx context.Context, sale domain.Sale) error

	GetExpense(ctx context.Context, expenseID string) (*domain.Expense, error)
	CreateExpense(ctx context.Context, expense domain.Expense) error
	UpsertExpense(ctx context.Context, expense domain.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
	ListUncategorizedExpenses(ctx context.Context) ([]domain.Expense, error)
	SetExpenseCategory(ctx context.Context, expenseID string, category domain.ExpenseCategory) error

	UpsertManualIncome(ctx context.Context, income domain.ManualIncome) error
	UpsertCashCut(ctx context.Context, cut domain.CashCut) error
	UpsertProfessional(ctx context.Context, professional domain.Professional) error
	UpsertProduct(ctx context.Context, product domain.Product) error
	UpsertAdminCommission(ctx context.Context, commission domain.AdminCommission) error

	GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error)
	PutOverride(ctx context.Context, override domain.Override) error
	// DeleteOverride returns apperrors.ErrNotFound if no override is stored for key.
	DeleteOverride(ctx context.Context, key domain.PeriodKey) error
}
