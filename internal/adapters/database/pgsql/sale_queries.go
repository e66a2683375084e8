package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `sale_id, location_id, sold_at, total, real_paid, payment_method,
		       mixed_cash, mixed_card, mixed_online, tip_paid`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.LocationID,
		&m.SoldAt,
		&m.Total,
		&m.RealPaid,
		&m.PaymentMethod,
		&m.MixedCash,
		&m.MixedCard,
		&m.MixedOnline,
		&m.TipPaid,
	)
	return m, err
}

func listSales(ctx context.Context, q querier, filter portsrepo.QueryFilter, forUpdate bool) ([]domain.Sale, error) {
	where, args := whereFilter(filter, "location_id", "sold_at", nil)
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		` + where + `
		ORDER BY sold_at, sale_id`
	if forUpdate {
		query += " FOR UPDATE"
	}
	return querySales(ctx, q, query, args...)
}

func getSale(ctx context.Context, q querier, saleID string) (*domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE sale_id = $1
		FOR UPDATE`
	sales, err := querySales(ctx, q, query, saleID)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return nil, fmt.Errorf("sale %s: %w", saleID, apperrors.ErrNotFound)
	}
	return &sales[0], nil
}

func querySales(ctx context.Context, q querier, query string, args ...any) ([]domain.Sale, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	var sales []models.Sale
	for rows.Next() {
		m, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
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
	query := `
		SELECT sale_id, item_index, kind, product_id, description, unit_price, quantity,
		       subtotal, discount_amount, purchase_cost, professional_id, commission_paid
		FROM sale_items
		WHERE sale_id = ANY($1)
		ORDER BY sale_id, item_index`
	rows, err := q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
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
			return nil, fmt.Errorf("failed to scan sale item row: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale item rows: %w", err)
	}
	return items, nil
}

func saveSaleFlags(ctx context.Context, q querier, sale domain.Sale) error {
	tag, err := q.Exec(ctx, `UPDATE sales SET tip_paid = $2 WHERE sale_id = $1`, sale.SaleID, sale.TipPaid)
	if err != nil {
		return fmt.Errorf("failed to update sale %s: %w", sale.SaleID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale %s: %w", sale.SaleID, apperrors.ErrNotFound)
	}

	batch := &pgx.Batch{}
	for i, it := range sale.Items {
		batch.Queue(`
			UPDATE sale_items SET commission_paid = $3
			WHERE sale_id = $1 AND item_index = $2`,
			sale.SaleID, i, it.CommissionPaid)
	}
	if err := execBatch(ctx, q, batch); err != nil {
		return fmt.Errorf("failed to update items of sale %s: %w", sale.SaleID, err)
	}
	return nil
}

func upsertSale(ctx context.Context, q querier, sale domain.Sale) error {
	m, items := mapping.ToModelSale(sale)
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (sale_id) DO UPDATE SET
			location_id = EXCLUDED.location_id,
			sold_at = EXCLUDED.sold_at,
			total = EXCLUDED.total,
			real_paid = EXCLUDED.real_paid,
			payment_method = EXCLUDED.payment_method,
			mixed_cash = EXCLUDED.mixed_cash,
			mixed_card = EXCLUDED.mixed_card,
			mixed_online = EXCLUDED.mixed_online,
			tip_paid = EXCLUDED.tip_paid`
	_, err := q.Exec(ctx, query,
		m.SaleID,
		m.LocationID,
		m.SoldAt,
		m.Total,
		m.RealPaid,
		m.PaymentMethod,
		m.MixedCash,
		m.MixedCard,
		m.MixedOnline,
		m.TipPaid,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert sale %s: %w", m.SaleID, mapPgError(err))
	}

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM sale_items WHERE sale_id = $1`, m.SaleID)
	for _, it := range items {
		batch.Queue(`
			INSERT INTO sale_items (sale_id, item_index, kind, product_id, description, unit_price, quantity,
			                        subtotal, discount_amount, purchase_cost, professional_id, commission_paid)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
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
	}
	if err := execBatch(ctx, q, batch); err != nil {
		return fmt.Errorf("failed to write items of sale %s: %w", m.SaleID, err)
	}
	return nil
}

// isNoRows reports whether err is pgx's empty-result error.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
