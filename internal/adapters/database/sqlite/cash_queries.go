package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
)

func listManualIncomes(ctx context.Context, q querier, filter portsrepo.QueryFilter) ([]domain.ManualIncome, error) {
	where, args := whereFilter(filter, "location_id", "income_date")
	rows, err := q.QueryContext(ctx, `
		SELECT income_id, location_id, income_date, amount, concept
		FROM manual_incomes
		`+where+`
		ORDER BY income_date, income_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query manual incomes: %w", err)
	}
	defer rows.Close()

	var out []domain.ManualIncome
	for rows.Next() {
		var m models.ManualIncome
		var date int64
		if err := rows.Scan(&m.IncomeID, &m.LocationID, &date, &m.Amount, &m.Concept); err != nil {
			return nil, fmt.Errorf("scan manual income row: %w", err)
		}
		m.IncomeDate = fromNanos(date)
		out = append(out, mapping.ToDomainManualIncome(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manual income rows: %w", err)
	}
	return out, nil
}

// queryCashCuts loads cash cuts matching the clause that follows FROM cash_cuts.
func queryCashCuts(ctx context.Context, q querier, clause string, args ...any) ([]domain.CashCut, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT cut_id, location_id, cut_at, system_total, legacy_calculated_total, base_float, delivered_amount
		FROM cash_cuts
		`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query cash cuts: %w", err)
	}
	defer rows.Close()

	var out []domain.CashCut
	for rows.Next() {
		var m models.CashCut
		var cutAt int64
		if err := rows.Scan(
			&m.CutID,
			&m.LocationID,
			&cutAt,
			&m.SystemTotal,
			&m.LegacyCalculatedTotal,
			&m.BaseFloat,
			&m.DeliveredAmount,
		); err != nil {
			return nil, fmt.Errorf("scan cash cut row: %w", err)
		}
		m.CutAt = fromNanos(cutAt)
		out = append(out, mapping.ToDomainCashCut(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cash cut rows: %w", err)
	}
	return out, nil
}

func upsertManualIncome(ctx context.Context, q querier, income domain.ManualIncome) error {
	m := mapping.ToModelManualIncome(income)
	_, err := q.ExecContext(ctx, `
		INSERT INTO manual_incomes (income_id, location_id, income_date, amount, concept)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (income_id) DO UPDATE SET
			location_id = excluded.location_id,
			income_date = excluded.income_date,
			amount = excluded.amount,
			concept = excluded.concept`,
		m.IncomeID, m.LocationID, toNanos(m.IncomeDate), m.Amount, m.Concept)
	if err != nil {
		return fmt.Errorf("upsert manual income %s: %w", m.IncomeID, mapSQLiteError(err))
	}
	return nil
}

func upsertCashCut(ctx context.Context, q querier, cut domain.CashCut) error {
	m := mapping.ToModelCashCut(cut)
	_, err := q.ExecContext(ctx, `
		INSERT INTO cash_cuts (cut_id, location_id, cut_at, system_total, legacy_calculated_total, base_float, delivered_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (cut_id) DO UPDATE SET
			location_id = excluded.location_id,
			cut_at = excluded.cut_at,
			system_total = excluded.system_total,
			legacy_calculated_total = excluded.legacy_calculated_total,
			base_float = excluded.base_float,
			delivered_amount = excluded.delivered_amount`,
		m.CutID,
		m.LocationID,
		toNanos(m.CutAt),
		m.SystemTotal,
		m.LegacyCalculatedTotal,
		m.BaseFloat,
		m.DeliveredAmount,
	)
	if err != nil {
		return fmt.Errorf("upsert cash cut %s: %w", m.CutID, mapSQLiteError(err))
	}
	return nil
}
