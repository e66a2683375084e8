package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
)

// QueryFilter narrows a range query. From is inclusive, To is exclusive, and an empty
// LocationID matches every location.
type QueryFilter struct {
	LocationID string
	From       *time.Time
	To         *time.Time
}

// Matches reports whether a record at t for location passes the filter.
func (f QueryFilter) Matches(location string, t time.Time) bool {
	if f.LocationID != "" && f.LocationID != location {
		return false
	}
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.Before(*f.To) {
		return false
	}
	return true
}

// SaleReader defines read operations for sales.
type SaleReader interface {
	// ListSales returns matching sales ordered by SoldAt.
	ListSales(ctx context.Context, filter QueryFilter) ([]domain.Sale, error)
}

// ExpenseReader defines read operations for expenses.
type ExpenseReader interface {
	// ListExpenses returns matching expenses ordered by Date.
	ListExpenses(ctx context.Context, filter QueryFilter) ([]domain.Expense, error)
}

// CashMovementReader defines read operations for manual incomes and cash cuts.
type CashMovementReader interface {
	ListManualIncomes(ctx context.Context, filter QueryFilter) ([]domain.ManualIncome, error)
	ListCashCuts(ctx context.Context, filter QueryFilter) ([]domain.CashCut, error)
	// LatestCashCut returns the cut with the greatest CutAt for the location ("" for any).
	// Returns apperrors.ErrNotFound when no cut exists.
	LatestCashCut(ctx context.Context, locationID string) (*domain.CashCut, error)
}

// ReferenceDataReader defines read operations for the catalogue and staff data consumed by
// the reports.
type ReferenceDataReader interface {
	// ListProfessionals returns the professionals of a location, or all when locationID is "".
	ListProfessionals(ctx context.Context, locationID string) ([]domain.Professional, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListAdminCommissions(ctx context.Context, key domain.PeriodKey) ([]domain.AdminCommission, error)
}

// OverrideReader defines read operations for monthly overrides.
type OverrideReader interface {
	// GetOverride returns apperrors.ErrNotFound when no override is stored for key.
	GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error)
}

// TransactionStore is the storage port of the reconciliation engine.
type TransactionStore interface {
	SaleReader
	ExpenseReader
	CashMovementReader
	ReferenceDataReader
	OverrideReader
	TransactionManager
}

// WriteSequencer orders writes to the same key across engine instances. Begin draws a
// generation; Commit runs fn only while that generation is still the newest and returns
// apperrors.ErrSuperseded otherwise.
type WriteSequencer interface {
	Begin(ctx context.Context, key string) (int64, error)
	Commit(ctx context.Context, key string, gen int64, fn func(ctx context.Context) error) error
}
