package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const expenseColumns = `expense_id, location_id, expense_date, concept, category, recipient, amount, comment,
		       has_breakdown, breakdown_service, breakdown_product, breakdown_tip, has_settlement, created_at`

var knownCategories = []string{
	string(domain.CategoryCommissionPayment),
	string(domain.CategoryPayroll),
	string(domain.CategoryFixedCost),
	string(domain.CategoryOther),
}

// queryExpenses loads expenses matching the clause that follows FROM expenses.
func queryExpenses(ctx context.Context, q querier, clause string, args ...any) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		` + clause
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	var expenses []models.Expense
	for rows.Next() {
		var m models.Expense
		if err := rows.Scan(
			&m.ExpenseID,
			&m.LocationID,
			&m.ExpenseDate,
			&m.Concept,
			&m.Category,
			&m.Recipient,
			&m.Amount,
			&m.Comment,
			&m.HasBreakdown,
			&m.BreakdownService,
			&m.BreakdownProduct,
			&m.BreakdownTip,
			&m.HasSettlement,
			&m.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	var settled []string
	for _, m := range expenses {
		if m.HasSettlement {
			settled = append(settled, m.ExpenseID)
		}
	}
	refs, err := loadSettlementRefs(ctx, q, settled)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Expense, len(expenses))
	for i, m := range expenses {
		out[i] = mapping.ToDomainExpense(m, refs[m.ExpenseID])
	}
	return out, nil
}

func loadSettlementRefs(ctx context.Context, q querier, expenseIDs []string) (map[string][]models.SettlementRef, error) {
	refs := make(map[string][]models.SettlementRef, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return refs, nil
	}
	query := `
		SELECT expense_id, ordinal, ref_kind, sale_id, item_index
		FROM expense_settlement_refs
		WHERE expense_id = ANY($1)
		ORDER BY expense_id, ordinal`
	rows, err := q.Query(ctx, query, expenseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlement refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.SettlementRef
		if err := rows.Scan(&r.ExpenseID, &r.Ordinal, &r.RefKind, &r.SaleID, &r.ItemIndex); err != nil {
			return nil, fmt.Errorf("failed to scan settlement ref row: %w", err)
		}
		refs[r.ExpenseID] = append(refs[r.ExpenseID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement ref rows: %w", err)
	}
	return refs, nil
}

func getExpense(ctx context.Context, q querier, expenseID string) (*domain.Expense, error) {
	expenses, err := queryExpenses(ctx, q, "WHERE expense_id = $1 FOR UPDATE", expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return &expenses[0], nil
}

func listUncategorizedExpenses(ctx context.Context, q querier) ([]domain.Expense, error) {
	return queryExpenses(ctx, q, "WHERE NOT (category = ANY($1)) ORDER BY expense_id FOR UPDATE", knownCategories)
}

// writeExpense inserts the expense; with upsert an existing row and its references are
// replaced.
func writeExpense(ctx context.Context, q querier, expense domain.Expense, upsert bool) error {
	m, refs := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if upsert {
		query += `
		ON CONFLICT (expense_id) DO UPDATE SET
			location_id = EXCLUDED.location_id,
			expense_date = EXCLUDED.expense_date,
			concept = EXCLUDED.concept,
			category = EXCLUDED.category,
			recipient = EXCLUDED.recipient,
			amount = EXCLUDED.amount,
			comment = EXCLUDED.comment,
			has_breakdown = EXCLUDED.has_breakdown,
			breakdown_service = EXCLUDED.breakdown_service,
			breakdown_product = EXCLUDED.breakdown_product,
			breakdown_tip = EXCLUDED.breakdown_tip,
			has_settlement = EXCLUDED.has_settlement,
			created_at = EXCLUDED.created_at`
	}
	_, err := q.Exec(ctx, query,
		m.ExpenseID,
		m.LocationID,
		m.ExpenseDate,
		m.Concept,
		m.Category,
		m.Recipient,
		m.Amount,
		m.Comment,
		m.HasBreakdown,
		m.BreakdownService,
		m.BreakdownProduct,
		m.BreakdownTip,
		m.HasSettlement,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, mapPgError(err))
	}

	batch := &pgx.Batch{}
	if upsert {
		batch.Queue(`DELETE FROM expense_settlement_refs WHERE expense_id = $1`, m.ExpenseID)
	}
	for _, r := range refs {
		batch.Queue(`
			INSERT INTO expense_settlement_refs (expense_id, ordinal, ref_kind, sale_id, item_index)
			VALUES ($1, $2, $3, $4, $5)`,
			r.ExpenseID, r.Ordinal, r.RefKind, r.SaleID, r.ItemIndex)
	}
	if err := execBatch(ctx, q, batch); err != nil {
		return fmt.Errorf("failed to save settlement of expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

func deleteExpense(ctx context.Context, q querier, expenseID string) error {
	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return nil
}

func setExpenseCategory(ctx context.Context, q querier, expenseID string, category domain.ExpenseCategory) error {
	tag, err := q.Exec(ctx, `UPDATE expenses SET category = $2 WHERE expense_id = $1`, expenseID, string(category))
	if err != nil {
		return fmt.Errorf("failed to set category of expense %s: %w", expenseID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return nil
}
