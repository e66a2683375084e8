package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
)

func listManualIncomes(ctx context.Context, q querier, filter portsrepo.QueryFilter) ([]domain.ManualIncome, error) {
	where, args := whereFilter(filter, "location_id", "income_date", nil)
	query := `
		SELECT income_id, location_id, income_date, amount, concept
		FROM manual_incomes
		` + where + `
		ORDER BY income_date, income_id`
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query manual incomes: %w", err)
	}
	defer rows.Close()

	var out []domain.ManualIncome
	for rows.Next() {
		var m models.ManualIncome
		if err := rows.Scan(&m.IncomeID, &m.LocationID, &m.IncomeDate, &m.Amount, &m.Concept); err != nil {
			return nil, fmt.Errorf("failed to scan manual income row: %w", err)
		}
		out = append(out, mapping.ToDomainManualIncome(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manual income rows: %w", err)
	}
	return out, nil
}

// queryCashCuts loads cash cuts matching the clause that follows FROM cash_cuts.
func queryCashCuts(ctx context.Context, q querier, clause string, args ...any) ([]domain.CashCut, error) {
	query := `
		SELECT cut_id, location_id, cut_at, system_total, legacy_calculated_total, base_float, delivered_amount
		FROM cash_cuts
		` + clause
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash cuts: %w", err)
	}
	defer rows.Close()

	var out []domain.CashCut
	for rows.Next() {
		var m models.CashCut
		if err := rows.Scan(
			&m.CutID,
			&m.LocationID,
			&m.CutAt,
			&m.SystemTotal,
			&m.LegacyCalculatedTotal,
			&m.BaseFloat,
			&m.DeliveredAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cash cut row: %w", err)
		}
		out = append(out, mapping.ToDomainCashCut(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash cut rows: %w", err)
	}
	return out, nil
}

func upsertManualIncome(ctx context.Context, q querier, income domain.ManualIncome) error {
	m := mapping.ToModelManualIncome(income)
	query := `
		INSERT INTO manual_incomes (income_id, location_id, income_date, amount, concept)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (income_id) DO UPDATE SET
			location_id = EXCLUDED.location_id,
			income_date = EXCLUDED.income_date,
			amount = EXCLUDED.amount,
			concept = EXCLUDED.concept`
	if _, err := q.Exec(ctx, query, m.IncomeID, m.LocationID, m.IncomeDate, m.Amount, m.Concept); err != nil {
		return fmt.Errorf("failed to upsert manual income %s: %w", m.IncomeID, mapPgError(err))
	}
	return nil
}

func upsertCashCut(ctx context.Context, q querier, cut domain.CashCut) error {
	m := mapping.ToModelCashCut(cut)
	query := `
		INSERT INTO cash_cuts (cut_id, location_id, cut_at, system_total, legacy_calculated_total, base_float, delivered_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (cut_id) DO UPDATE SET
			location_id = EXCLUDED.location_id,
			cut_at = EXCLUDED.cut_at,
			system_total = EXCLUDED.system_total,
			legacy_calculated_total = EXCLUDED.legacy_calculated_total,
			base_float = EXCLUDED.base_float,
			delivered_amount = EXCLUDED.delivered_amount`
	_, err := q.Exec(ctx, query,
		m.CutID,
		m.LocationID,
		m.CutAt,
		m.SystemTotal,
		m.LegacyCalculatedTotal,
		m.BaseFloat,
		m.DeliveredAmount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cash cut %s: %w", m.CutID, mapPgError(err))
	}
	return nil
}
