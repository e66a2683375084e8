package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/apperrors"
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
	"github.com/SscSPs/reconciliation_engine/internal/utils/mapping"
)

func listProfessionals(ctx context.Context, q querier, locationID string) ([]domain.Professional, error) {
	query := `
		SELECT professional_id, location_id, name, default_product_commission, product_commissions
		FROM professionals
		WHERE $1 = '' OR location_id = $1
		ORDER BY professional_id`
	rows, err := q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query professionals: %w", err)
	}
	defer rows.Close()

	var out []domain.Professional
	for rows.Next() {
		var m models.Professional
		if err := rows.Scan(&m.ProfessionalID, &m.LocationID, &m.Name, &m.DefaultProductCommission, &m.ProductCommissions); err != nil {
			return nil, fmt.Errorf("failed to scan professional row: %w", err)
		}
		p, err := mapping.ToDomainProfessional(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating professional rows: %w", err)
	}
	return out, nil
}

func listProducts(ctx context.Context, q querier) ([]domain.Product, error) {
	query := `
		SELECT product_id, name, purchase_cost, default_commission
		FROM products
		ORDER BY product_id`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var m models.Product
		if err := rows.Scan(&m.ProductID, &m.Name, &m.PurchaseCost, &m.DefaultCommission); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p, err := mapping.ToDomainProduct(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return out, nil
}

func listAdminCommissions(ctx context.Context, q querier, key domain.PeriodKey) ([]domain.AdminCommission, error) {
	query := `
		SELECT admin_id, admin_name, location_id, year, month, service_rule, product_rule
		FROM admin_commissions
		WHERE year = $1 AND month = $2 AND ($3 = '' OR location_id = $3)
		ORDER BY admin_id, location_id`
	rows, err := q.Query(ctx, query, key.Year, key.Month, key.LocationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin commissions: %w", err)
	}
	defer rows.Close()

	var out []domain.AdminCommission
	for rows.Next() {
		var m models.AdminCommission
		if err := rows.Scan(&m.AdminID, &m.AdminName, &m.LocationID, &m.Year, &m.Month, &m.ServiceRule, &m.ProductRule); err != nil {
			return nil, fmt.Errorf("failed to scan admin commission row: %w", err)
		}
		ac, err := mapping.ToDomainAdminCommission(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin commission rows: %w", err)
	}
	return out, nil
}

func upsertProfessional(ctx context.Context, q querier, professional domain.Professional) error {
	m, err := mapping.ToModelProfessional(professional)
	if err != nil {
		return fmt.Errorf("failed to encode professional %s: %w", professional.ProfessionalID, err)
	}
	query := `
		INSERT INTO professionals (professional_id, location_id, name, default_product_commission, product_commissions)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (professional_id) DO UPDATE SET
			location_id = EXCLUDED.location_id,
			name = EXCLUDED.name,
			default_product_commission = EXCLUDED.default_product_commission,
			product_commissions = EXCLUDED.product_commissions`
	if _, err := q.Exec(ctx, query, m.ProfessionalID, m.LocationID, m.Name, m.DefaultProductCommission, m.ProductCommissions); err != nil {
		return fmt.Errorf("failed to upsert professional %s: %w", m.ProfessionalID, mapPgError(err))
	}
	return nil
}

func upsertProduct(ctx context.Context, q querier, product domain.Product) error {
	m, err := mapping.ToModelProduct(product)
	if err != nil {
		return fmt.Errorf("failed to encode product %s: %w", product.ProductID, err)
	}
	query := `
		INSERT INTO products (product_id, name, purchase_cost, default_commission)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			purchase_cost = EXCLUDED.purchase_cost,
			default_commission = EXCLUDED.default_commission`
	if _, err := q.Exec(ctx, query, m.ProductID, m.Name, m.PurchaseCost, m.DefaultCommission); err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", m.ProductID, mapPgError(err))
	}
	return nil
}

func upsertAdminCommission(ctx context.Context, q querier, commission domain.AdminCommission) error {
	m, err := mapping.ToModelAdminCommission(commission)
	if err != nil {
		return fmt.Errorf("failed to encode admin commission %s: %w", commission.AdminID, err)
	}
	query := `
		INSERT INTO admin_commissions (admin_id, admin_name, location_id, year, month, service_rule, product_rule)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (admin_id, location_id, year, month) DO UPDATE SET
			admin_name = EXCLUDED.admin_name,
			service_rule = EXCLUDED.service_rule,
			product_rule = EXCLUDED.product_rule`
	if _, err := q.Exec(ctx, query, m.AdminID, m.AdminName, m.LocationID, m.Year, m.Month, m.ServiceRule, m.ProductRule); err != nil {
		return fmt.Errorf("failed to upsert admin commission %s: %w", m.AdminID, mapPgError(err))
	}
	return nil
}

func getOverride(ctx context.Context, q querier, key domain.PeriodKey) (*domain.Override, error) {
	query := `
		SELECT location_id, year, month, document, updated_at, updated_by
		FROM monthly_overrides
		WHERE location_id = $1 AND year = $2 AND month = $3`
	var m models.Override
	err := q.QueryRow(ctx, query, key.LocationID, key.Year, key.Month).Scan(
		&m.LocationID,
		&m.Year,
		&m.Month,
		&m.Document,
		&m.UpdatedAt,
		&m.UpdatedBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load override %s: %w", key, err)
	}
	o, err := mapping.ToDomainOverride(m)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func putOverride(ctx context.Context, q querier, override domain.Override) error {
	m, err := mapping.ToModelOverride(override)
	if err != nil {
		return fmt.Errorf("failed to encode override %s: %w", override.Period, err)
	}
	query := `
		INSERT INTO monthly_overrides (location_id, year, month, document, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (location_id, year, month) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`
	if _, err := q.Exec(ctx, query, m.LocationID, m.Year, m.Month, m.Document, m.UpdatedAt, m.UpdatedBy); err != nil {
		return fmt.Errorf("failed to store override %s: %w", override.Period, mapPgError(err))
	}
	return nil
}

func deleteOverride(ctx context.Context, q querier, key domain.PeriodKey) error {
	tag, err := q.Exec(ctx, `
		DELETE FROM monthly_overrides
		WHERE location_id = $1 AND year = $2 AND month = $3`,
		key.LocationID, key.Year, key.Month)
	if err != nil {
		return fmt.Errorf("failed to delete override %s: %w", key, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("override %s: %w", key, apperrors.ErrNotFound)
	}
	return nil
}
