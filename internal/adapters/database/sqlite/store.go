package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite TransactionStore. The connection is expected to begin transactions
// with BEGIN IMMEDIATE, which serializes writers for the whole database.
type Store struct {
	db *sql.DB
}

// NewStore creates a new store on top of db. Migrations must already be applied.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ portsrepo.TransactionStore = (*Store)(nil)

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RunInTransaction executes fn inside one database transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", mapSQLiteError(err))
	}
	// No-op once the transaction is committed
	defer tx.Rollback()

	if err := fn(ctx, &storeTx{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", mapSQLiteError(err))
	}
	return nil
}

func (s *Store) ListSales(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Sale, error) {
	return listSales(ctx, s.db, filter)
}

func (s *Store) ListExpenses(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Expense, error) {
	where, args := whereFilter(filter, "location_id", "expense_date")
	return queryExpenses(ctx, s.db, where+" ORDER BY expense_date, expense_id", args...)
}

func (s *Store) ListManualIncomes(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.ManualIncome, error) {
	return listManualIncomes(ctx, s.db, filter)
}

func (s *Store) ListCashCuts(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.CashCut, error) {
	where, args := whereFilter(filter, "location_id", "cut_at")
	return queryCashCuts(ctx, s.db, where+" ORDER BY cut_at, cut_id", args...)
}

func (s *Store) LatestCashCut(ctx context.Context, locationID string) (*domain.CashCut, error) {
	where, args := whereFilter(portsrepo.QueryFilter{LocationID: locationID}, "location_id", "cut_at")
	cuts, err := queryCashCuts(ctx, s.db, where+" ORDER BY cut_at DESC, cut_id DESC LIMIT 1", args...)
	if err != nil {
		return nil, err
	}
	if len(cuts) == 0 {
		return nil, fmt.Errorf("cash cut for location %q: %w", locationID, apperrors.ErrNotFound)
	}
	return &cuts[0], nil
}

func (s *Store) ListProfessionals(ctx context.Context, locationID string) ([]domain.Professional, error) {
	return listProfessionals(ctx, s.db, locationID)
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return listProducts(ctx, s.db)
}

func (s *Store) ListAdminCommissions(ctx context.Context, key domain.PeriodKey) ([]domain.AdminCommission, error) {
	return listAdminCommissions(ctx, s.db, key)
}

func (s *Store) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	return getOverride(ctx, s.db, key)
}

// mapSQLiteError translates constraint and locking failures into application sentinels.
func mapSQLiteError(err error) error {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return err
	}
	switch code := se.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return errors.Join(apperrors.ErrDuplicate, err)
	case code&0xff == sqlite3.SQLITE_BUSY || code&0xff == sqlite3.SQLITE_LOCKED:
		return errors.Join(apperrors.ErrConflict, err)
	}
	return err
}

// Timestamps are stored as UTC unix nanoseconds.

func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func whereFilter(filter portsrepo.QueryFilter, locationCol, timeCol string) (string, []any) {
	var conds []string
	var args []any
	if filter.LocationID != "" {
		conds = append(conds, locationCol+" = ?")
		args = append(args, filter.LocationID)
	}
	if filter.From != nil {
		conds = append(conds, timeCol+" >= ?")
		args = append(args, toNanos(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, timeCol+" < ?")
		args = append(args, toNanos(*filter.To))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// inClause renders "(?, ?, ...)" for ids and returns them as query args.
func inClause(ids []string) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ")", args
}
