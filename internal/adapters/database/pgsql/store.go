package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL TransactionStore. Rows a transaction validates are read with
// SELECT ... FOR UPDATE so concurrent settlements of the same sale serialize.
type Store struct {
	BaseRepository
}

// NewStore creates a new store on top of pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionStore = (*Store)(nil)

// RunInTransaction executes fn inside one database transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer s.Rollback(ctx, tx)

	if err := fn(ctx, &storeTx{q: tx}); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

func (s *Store) ListSales(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Sale, error) {
	return listSales(ctx, s.Pool, filter, false)
}

func (s *Store) ListExpenses(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Expense, error) {
	where, args := whereFilter(filter, "location_id", "expense_date", nil)
	return queryExpenses(ctx, s.Pool, where+" ORDER BY expense_date, expense_id", args...)
}

func (s *Store) ListManualIncomes(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.ManualIncome, error) {
	return listManualIncomes(ctx, s.Pool, filter)
}

func (s *Store) ListCashCuts(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.CashCut, error) {
	where, args := whereFilter(filter, "location_id", "cut_at", nil)
	return queryCashCuts(ctx, s.Pool, where+" ORDER BY cut_at, cut_id", args...)
}

func (s *Store) LatestCashCut(ctx context.Context, locationID string) (*domain.CashCut, error) {
	where, args := whereFilter(portsrepo.QueryFilter{LocationID: locationID}, "location_id", "cut_at", nil)
	cuts, err := queryCashCuts(ctx, s.Pool, where+" ORDER BY cut_at DESC, cut_id DESC LIMIT 1", args...)
	if err != nil {
		return nil, err
	}
	if len(cuts) == 0 {
		return nil, fmt.Errorf("cash cut for location %q: %w", locationID, apperrors.ErrNotFound)
	}
	return &cuts[0], nil
}

func (s *Store) ListProfessionals(ctx context.Context, locationID string) ([]domain.Professional, error) {
	return listProfessionals(ctx, s.Pool, locationID)
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return listProducts(ctx, s.Pool)
}

func (s *Store) ListAdminCommissions(ctx context.Context, key domain.PeriodKey) ([]domain.AdminCommission, error) {
	return listAdminCommissions(ctx, s.Pool, key)
}

func (s *Store) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	return getOverride(ctx, s.Pool, key)
}
