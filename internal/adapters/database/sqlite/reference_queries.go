package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
)

// jsonArg binds an encoded document as TEXT, or NULL when there is none.
func jsonArg(doc []byte) any {
	if doc == nil {
		return nil
	}
	return string(doc)
}

func listProfessionals(ctx context.Context, q querier, locationID string) ([]domain.Professional, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT professional_id, location_id, name, default_product_commission, product_commissions
		FROM professionals
		WHERE ? = '' OR location_id = ?
		ORDER BY professional_id`, locationID, locationID)
	if err != nil {
		return nil, fmt.Errorf("query professionals: %w", err)
	}
	defer rows.Close()

	var out []domain.Professional
	for rows.Next() {
		var m models.Professional
		if err := rows.Scan(&m.ProfessionalID, &m.LocationID, &m.Name, &m.DefaultProductCommission, &m.ProductCommissions); err != nil {
			return nil, fmt.Errorf("scan professional row: %w", err)
		}
		p, err := mapping.ToDomainProfessional(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate professional rows: %w", err)
	}
	return out, nil
}

func listProducts(ctx context.Context, q querier) ([]domain.Product, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT product_id, name, purchase_cost, default_commission
		FROM products
		ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var m models.Product
		if err := rows.Scan(&m.ProductID, &m.Name, &m.PurchaseCost, &m.DefaultCommission); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		p, err := mapping.ToDomainProduct(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return out, nil
}

func listAdminCommissions(ctx context.Context, q querier, key domain.PeriodKey) ([]domain.AdminCommission, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT admin_id, admin_name, location_id, year, month, service_rule, product_rule
		FROM admin_commissions
		WHERE year = ? AND month = ? AND (? = '' OR location_id = ?)
		ORDER BY admin_id, location_id`, key.Year, key.Month, key.LocationID, key.LocationID)
	if err != nil {
		return nil, fmt.Errorf("query admin commissions: %w", err)
	}
	defer rows.Close()

	var out []domain.AdminCommission
	for rows.Next() {
		var m models.AdminCommission
		if err := rows.Scan(&m.AdminID, &m.AdminName, &m.LocationID, &m.Year, &m.Month, &m.ServiceRule, &m.ProductRule); err != nil {
			return nil, fmt.Errorf("scan admin commission row: %w", err)
		}
		ac, err := mapping.ToDomainAdminCommission(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admin commission rows: %w", err)
	}
	return out, nil
}

func upsertProfessional(ctx context.Context, q querier, professional domain.Professional) error {
	m, err := mapping.ToModelProfessional(professional)
	if err != nil {
		return fmt.Errorf("encode professional %s: %w", professional.ProfessionalID, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO professionals (professional_id, location_id, name, default_product_commission, product_commissions)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (professional_id) DO UPDATE SET
			location_id = excluded.location_id,
			name = excluded.name,
			default_product_commission = excluded.default_product_commission,
			product_commissions = excluded.product_commissions`,
		m.ProfessionalID, m.LocationID, m.Name, jsonArg(m.DefaultProductCommission), jsonArg(m.ProductCommissions))
	if err != nil {
		return fmt.Errorf("upsert professional %s: %w", m.ProfessionalID, mapSQLiteError(err))
	}
	return nil
}

func upsertProduct(ctx context.Context, q querier, product domain.Product) error {
	m, err := mapping.ToModelProduct(product)
	if err != nil {
		return fmt.Errorf("encode product %s: %w", product.ProductID, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO products (product_id, name, purchase_cost, default_commission)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (product_id) DO UPDATE SET
			name = excluded.name,
			purchase_cost = excluded.purchase_cost,
			default_commission = excluded.default_commission`,
		m.ProductID, m.Name, m.PurchaseCost, jsonArg(m.DefaultCommission))
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", m.ProductID, mapSQLiteError(err))
	}
	return nil
}

func upsertAdminCommission(ctx context.Context, q querier, commission domain.AdminCommission) error {
	m, err := mapping.ToModelAdminCommission(commission)
	if err != nil {
		return fmt.Errorf("encode admin commission %s: %w", commission.AdminID, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO admin_commissions (admin_id, admin_name, location_id, year, month, service_rule, product_rule)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (admin_id, location_id, year, month) DO UPDATE SET
			admin_name = excluded.admin_name,
			service_rule = excluded.service_rule,
			product_rule = excluded.product_rule`,
		m.AdminID, m.AdminName, m.LocationID, m.Year, m.Month, jsonArg(m.ServiceRule), jsonArg(m.ProductRule))
	if err != nil {
		return fmt.Errorf("upsert admin commission %s: %w", m.AdminID, mapSQLiteError(err))
	}
	return nil
}

func getOverride(ctx context.Context, q querier, key domain.PeriodKey) (*domain.Override, error) {
	var m models.Override
	var updatedAt int64
	err := q.QueryRowContext(ctx, `
		SELECT location_id, year, month, document, updated_at, updated_by
		FROM monthly_overrides
		WHERE location_id = ? AND year = ? AND month = ?`,
		key.LocationID, key.Year, key.Month).Scan(
		&m.LocationID,
		&m.Year,
		&m.Month,
		&m.Document,
		&updatedAt,
		&m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("load override %s: %w", key, err)
	}
	m.UpdatedAt = fromNanos(updatedAt)
	o, err := mapping.ToDomainOverride(m)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func putOverride(ctx context.Context, q querier, override domain.Override) error {
	m, err := mapping.ToModelOverride(override)
	if err != nil {
		return fmt.Errorf("encode override %s: %w", override.Period, err)
	}
	_, err = q.ExecContext(ctx, `
		INSERT INTO monthly_overrides (location_id, year, month, document, updated_at, updated_by)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (location_id, year, month) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at,
			updated_by = excluded.updated_by`,
		m.LocationID, m.Year, m.Month, jsonArg(m.Document), toNanos(m.UpdatedAt), m.UpdatedBy)
	if err != nil {
		return fmt.Errorf("store override %s: %w", override.Period, mapSQLiteError(err))
	}
	return nil
}

func deleteOverride(ctx context.Context, q querier, key domain.PeriodKey) error {
	res, err := q.ExecContext(ctx, `
		DELETE FROM monthly_overrides
		WHERE location_id = ? AND year = ? AND month = ?`,
		key.LocationID, key.Year, key.Month)
	if err != nil {
		return fmt.Errorf("delete override %s: %w", key, mapSQLiteError(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)
	}
	return nil
}
