package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
)

const expenseColumns = `expense_id, location_id, expense_date, concept, category, recipient, amount, comment,
		       has_breakdown, breakdown_service, breakdown_product, breakdown_tip, has_settlement, created_at`

// queryExpenses loads expenses matching the clause that follows FROM expenses.
func queryExpenses(ctx context.Context, q querier, clause string, args ...any) ([]domain.Expense, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses
		`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	var expenses []models.Expense
	for rows.Next() {
		var m models.Expense
		var date, created int64
		if err := rows.Scan(
			&m.ExpenseID,
			&m.LocationID,
			&date,
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
			&created,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		m.ExpenseDate = fromNanos(date)
		m.CreatedAt = fromNanos(created)
		expenses = append(expenses, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
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
	in, args := inClause(expenseIDs)
	rows, err := q.QueryContext(ctx, `
		SELECT expense_id, ordinal, ref_kind, sale_id, item_index
		FROM expense_settlement_refs
		WHERE expense_id IN `+in+`
		ORDER BY expense_id, ordinal`, args...)
	if err != nil {
		return nil, fmt.Errorf("query settlement refs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.SettlementRef
		if err := rows.Scan(&r.ExpenseID, &r.Ordinal, &r.RefKind, &r.SaleID, &r.ItemIndex); err != nil {
			return nil, fmt.Errorf("scan settlement ref row: %w", err)
		}
		refs[r.ExpenseID] = append(refs[r.ExpenseID], r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlement ref rows: %w", err)
	}
	return refs, nil
}

func getExpense(ctx context.Context, q querier, expenseID string) (*domain.Expense, error) {
	expenses, err := queryExpenses(ctx, q, "WHERE expense_id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return &expenses[0], nil
}

func listUncategorizedExpenses(ctx context.Context, q querier) ([]domain.Expense, error) {
	return queryExpenses(ctx, q, "WHERE category NOT IN (?, ?, ?, ?) ORDER BY expense_id",
		string(domain.CategoryCommissionPayment),
		string(domain.CategoryPayroll),
		string(domain.CategoryFixedCost),
		string(domain.CategoryOther),
	)
}

// writeExpense inserts the expense; with upsert an existing row and its references are
// replaced.
func writeExpense(ctx context.Context, q querier, expense domain.Expense, upsert bool) error {
	m, refs := mapping.ToModelExpense(expense)
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if upsert {
		query += `
		ON CONFLICT (expense_id) DO UPDATE SET
			location_id = excluded.location_id,
			expense_date = excluded.expense_date,
			concept = excluded.concept,
			category = excluded.category,
			recipient = excluded.recipient,
			amount = excluded.amount,
			comment = excluded.comment,
			has_breakdown = excluded.has_breakdown,
			breakdown_service = excluded.breakdown_service,
			breakdown_product = excluded.breakdown_product,
			breakdown_tip = excluded.breakdown_tip,
			has_settlement = excluded.has_settlement,
			created_at = excluded.created_at`
	}
	_, err := q.ExecContext(ctx, query,
		m.ExpenseID,
		m.LocationID,
		toNanos(m.ExpenseDate),
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
		toNanos(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("save expense %s: %w", m.ExpenseID, mapSQLiteError(err))
	}

	if upsert {
		if _, err := q.ExecContext(ctx, `DELETE FROM expense_settlement_refs WHERE expense_id = ?`, m.ExpenseID); err != nil {
			return fmt.Errorf("clear settlement of expense %s: %w", m.ExpenseID, mapSQLiteError(err))
		}
	}
	for _, r := range refs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO expense_settlement_refs (expense_id, ordinal, ref_kind, sale_id, item_index)
			VALUES (?, ?, ?, ?, ?)`,
			r.ExpenseID, r.Ordinal, r.RefKind, r.SaleID, r.ItemIndex); err != nil {
			return fmt.Errorf("save settlement of expense %s: %w", m.ExpenseID, mapSQLiteError(err))
		}
	}
	return nil
}

func deleteExpense(ctx context.Context, q querier, expenseID string) error {
	res, err := q.ExecContext(ctx, `DELETE FROM expenses WHERE expense_id = ?`, expenseID)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", expenseID, mapSQLiteError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return nil
}

func setExpenseCategory(ctx context.Context, q querier, expenseID string, category domain.ExpenseCategory) error {
	res, err := q.ExecContext(ctx, `UPDATE expenses SET category = ? WHERE expense_id = ?`, string(category), expenseID)
	if err != nil {
		return fmt.Errorf("set category of expense %s: %w", expenseID, mapSQLiteError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, apperrors.ErrNotFound)
	}
	return nil
}
