package sqlite

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
)

const saleColumns = `sale_id, location_id, sold_at, total, real_paid, payment_method,
		       mixed_cash, mixed_card, mixed_online, tip_paid`

func listSales(ctx context.Context, q querier, filter portsrepo.QueryFilter) ([]domain.Sale, error) {
	where, args := whereFilter(filter, "location_id", "sold_at")
	return querySales(ctx, q, where+" ORDER BY sold_at, sale_id", args...)
}

func getSale(ctx context.Context, q querier, saleID string) (*domain.Sale, error) {
	sales, err := querySales(ctx, q, "WHERE sale_id = ?", saleID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	return &sales[0], nil
}

// querySales loads sales matching the clause that follows FROM sales.
func querySales(ctx context.Context, q querier, clause string, args ...any) ([]domain.Sale, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		`+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	var sales []models.Sale
	for rows.Next() {
		var m models.Sale
		var soldAt int64
		if err := rows.Scan(
			&m.SaleID,
			&m.LocationID,
			&soldAt,
			&m.Total,
			&m.RealPaid,
			&m.PaymentMethod,
			&m.MixedCash,
			&m.MixedCard,
			&m.MixedOnline,
			&m.TipPaid,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		m.SoldAt = fromNanos(soldAt)
		sales = append(sales, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale rows: %w", err)
	}

	ids := make([]string, len(sales))
	for i, m := range sales {
		ids[i] = m.SaleID
	}
	items, err := loadSaleItems(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Sale, len(sales))
	for i, m := range sales {
		out[i] = mapping.ToDomainSale(m, items[m.SaleID])
	}
	return out, nil
}

func loadSaleItems(ctx context.Context, q querier, saleIDs []string) (map[string][]models.SaleItem, error) {
	items := make(map[string][]models.SaleItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return items, nil
	}
	in, args := inClause(saleIDs)
	rows, err := q.QueryContext(ctx, `
		SELECT sale_id, item_index, kind, product_id, description, unit_price, quantity,
		       subtotal, discount_amount, purchase_cost, professional_id, commission_paid
		FROM sale_items
		WHERE sale_id IN `+in+`
		ORDER BY sale_id, item_index`, args...)
	if err != nil {
		return nil, fmt.Errorf("query sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.SaleItem
		if err := rows.Scan(
			&it.SaleID,
			&it.ItemIndex,
			&it.Kind,
			&it.ProductID,
			&it.Description,
			&it.UnitPrice,
			&it.Quantity,
			&it.Subtotal,
			&it.DiscountAmount,
			&it.PurchaseCost,
			&it.ProfessionalID,
			&it.CommissionPaid,
		); err != nil {
			return nil, fmt.Errorf("scan sale item row: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale item rows: %w", err)
	}
	return items, nil
}

func saveSaleFlags(ctx context.Context, q querier, sale domain.Sale) error {
	res, err := q.ExecContext(ctx, `UPDATE sales SET tip_paid = ? WHERE sale_id = ?`, sale.TipPaid, sale.SaleID)
	if err != nil {
		return fmt.Errorf("update sale %s: %w", sale.SaleID, mapSQLiteError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrNotFound)
	}
	for i, it := range sale.Items {
		if _, err := q.ExecContext(ctx, `
			UPDATE sale_items SET commission_paid = ?
			WHERE sale_id = ? AND item_index = ?`,
			it.CommissionPaid, sale.SaleID, i); err != nil {
			return fmt.Errorf("update item %d of sale %s: %w", i, sale.SaleID, mapSQLiteError(err))
		}
	}
	return nil
}

func upsertSale(ctx context.Context, q querier, sale domain.Sale) error {
	m, items := mapping.ToModelSale(sale)
	_, err := q.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (sale_id) DO UPDATE SET
			location_id = excluded.location_id,
			sold_at = excluded.sold_at,
			total = excluded.total,
			real_paid = excluded.real_paid,
			payment_method = excluded.payment_method,
			mixed_cash = excluded.mixed_cash,
			mixed_card = excluded.mixed_card,
			mixed_online = excluded.mixed_online,
			tip_paid = excluded.tip_paid`,
		m.SaleID,
		m.LocationID,
		toNanos(m.SoldAt),
		m.Total,
		m.RealPaid,
		m.PaymentMethod,
		m.MixedCash,
		m.MixedCard,
		m.MixedOnline,
		m.TipPaid,
	)
	if err != nil {
		return fmt.Errorf("upsert sale %s: %w", m.SaleID, mapSQLiteError(err))
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = ?`, m.SaleID); err != nil {
		return fmt.Errorf("clear items of sale %s: %w", m.SaleID, mapSQLiteError(err))
	}
	for _, it := range items {
		_, err := q.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, item_index, kind, product_id, description, unit_price, quantity,
			                        subtotal, discount_amount, purchase_cost, professional_id, commission_paid)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.SaleID,
			it.ItemIndex,
			it.Kind,
			it.ProductID,
			it.Description,
			it.UnitPrice,
			it.Quantity,
			it.Subtotal,
			it.DiscountAmount,
			it.PurchaseCost,
			it.ProfessionalID,
			it.CommissionPaid,
		)
		if err != nil {
			return fmt.Errorf("insert item %d of sale %s: %w", it.ItemIndex, m.SaleID, mapSQLiteError(err))
		}
	}
	return nil
}
