package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
)

type adminKey struct {
	AdminID string
	Period  domain.PeriodKey
}

type state struct {
	sales         map[string]domain.Sale
	expenses      map[string]domain.Expense
	incomes       map[string]domain.ManualIncome
	cuts          map[string]domain.CashCut
	professionals map[string]domain.Professional
	products      map[string]domain.Product
	admins        map[adminKey]domain.AdminCommission
	overrides     map[domain.PeriodKey]domain.Override
}

func newState() *state {
	return &state{
		sales:         make(map[string]domain.Sale),
		expenses:      make(map[string]domain.Expense),
		incomes:       make(map[string]domain.ManualIncome),
		cuts:          make(map[string]domain.CashCut),
		professionals: make(map[string]domain.Professional),
		products:      make(map[string]domain.Product),
		admins:        make(map[adminKey]domain.AdminCommission),
		overrides:     make(map[domain.PeriodKey]domain.Override),
	}
}

// copy returns a state whose maps can be written without touching s. Stored values are
// never mutated in place, so copying the maps is enough.
func (s *state) copy() *state {
	return &state{
		sales:         maps.Clone(s.sales),
		expenses:      maps.Clone(s.expenses),
		incomes:       maps.Clone(s.incomes),
		cuts:          maps.Clone(s.cuts),
		professionals: maps.Clone(s.professionals),
		products:      maps.Clone(s.products),
		admins:        maps.Clone(s.admins),
		overrides:     maps.Clone(s.overrides),
	}
}

// Store is an in-process TransactionStore. Transactions run one at a time against a
// private copy of the data, which replaces the shared state only when the body succeeds.
type Store struct {
	mu   sync.RWMutex // guards cur
	txMu sync.Mutex   // serializes transactions
	cur  *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cur: newState()}
}

var _ portsrepo.TransactionStore = (*Store)(nil)

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// RunInTransaction executes fn against a private copy of the store.
func (s *Store) RunInTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &storeTx{st: s.snapshot().copy()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	// A cancelled caller must not see its writes published.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = tx.st
	s.mu.Unlock()
	return nil
}

func (s *Store) ListSales(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Sale, error) {
	return listSales(s.snapshot(), filter), nil
}

func (s *Store) ListExpenses(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.Expense, error) {
	st := s.snapshot()
	out := make([]domain.Expense, 0)
	for _, e := range st.expenses {
		if filter.Matches(e.LocationID, e.Date) {
			out = append(out, cloneExpense(e))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ExpenseID < out[j].ExpenseID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Store) ListManualIncomes(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.ManualIncome, error) {
	st := s.snapshot()
	out := make([]domain.ManualIncome, 0)
	for _, in := range st.incomes {
		if filter.Matches(in.LocationID, in.Date) {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].IncomeID < out[j].IncomeID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Store) ListCashCuts(ctx context.Context, filter portsrepo.QueryFilter) ([]domain.CashCut, error) {
	st := s.snapshot()
	out := make([]domain.CashCut, 0)
	for _, c := range st.cuts {
		if filter.Matches(c.LocationID, c.CutAt) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CutAt.Equal(out[j].CutAt) {
			return out[i].CutID < out[j].CutID
		}
		return out[i].CutAt.Before(out[j].CutAt)
	})
	return out, nil
}

func (s *Store) LatestCashCut(ctx context.Context, locationID string) (*domain.CashCut, error) {
	cuts, _ := s.ListCashCuts(ctx, portsrepo.QueryFilter{LocationID: locationID})
	if len(cuts) == 0 {
		return nil, fmt.Errorf("cash cut for location %q: %w", locationID, apperrors.ErrNotFound)
	}
	latest := cuts[len(cuts)-1]
	return &latest, nil
}

func (s *Store) ListProfessionals(ctx context.Context, locationID string) ([]domain.Professional, error) {
	st := s.snapshot()
	out := make([]domain.Professional, 0)
	for _, p := range st.professionals {
		if locationID == "" || p.LocationID == locationID {
			out = append(out, cloneProfessional(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfessionalID < out[j].ProfessionalID })
	return out, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	st := s.snapshot()
	out := make([]domain.Product, 0, len(st.products))
	for _, p := range st.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (s *Store) ListAdminCommissions(ctx context.Context, key domain.PeriodKey) ([]domain.AdminCommission, error) {
	st := s.snapshot()
	out := make([]domain.AdminCommission, 0)
	for k, a := range st.admins {
		if k.Period.Year != key.Year || k.Period.Month != key.Month {
			continue
		}
		if key.LocationID != "" && k.Period.LocationID != key.LocationID {
			continue
		}
		out = append(out, cloneAdminCommission(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdminID < out[j].AdminID })
	return out, nil
}

func (s *Store) GetOverride(ctx context.Context, key domain.PeriodKey) (*domain.Override, error) {
	return getOverride(s.snapshot(), key)
}

func listSales(st *state, filter portsrepo.QueryFilter) []domain.Sale {
	out := make([]domain.Sale, 0)
	for _, sale := range st.sales {
		if filter.Matches(sale.LocationID, sale.SoldAt) {
			out = append(out, cloneSale(sale))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SoldAt.Equal(out[j].SoldAt) {
			return out[i].SaleID < out[j].SaleID
		}
		return out[i].SoldAt.Before(out[j].SoldAt)
	})
	return out
}

func getOverride(st *state, key domain.PeriodKey) (*domain.Override, error) {
	o, ok := st.overrides[key]
	if !ok {
		return nil, fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)
	}
	o = cloneOverride(o)
	return &o, nil
}
