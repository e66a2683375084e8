package mapping

import (
	"fmt"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
)

// ToModelProfessional converts a domain Professional to a model Professional
func ToModelProfessional(d domain.Professional) (models.Professional, error) {
	m := models.Professional{
		ProfessionalID: d.ProfessionalID,
		LocationID:     d.LocationID,
		Name:           d.Name,
	}
	var err error
	if m.DefaultProductCommission, err = toJSON(d.DefaultProductCommission); err != nil {
		return m, err
	}
	if len(d.ProductCommissions) > 0 {
		if m.ProductCommissions, err = toJSON(&d.ProductCommissions); err != nil {
			return m, err
		}
	}
	return m, nil
}

// ToDomainProfessional converts a model Professional to a domain Professional
func ToDomainProfessional(m models.Professional) (domain.Professional, error) {
	d := domain.Professional{
		ProfessionalID: m.ProfessionalID,
		LocationID:     m.LocationID,
		Name:           m.Name,
	}
	var err error
	if d.DefaultProductCommission, err = fromJSON[domain.CommissionRule](m.DefaultProductCommission); err != nil {
		return d, fmt.Errorf("professional %s: %w", m.ProfessionalID, err)
	}
	rules, err := fromJSON[map[string]domain.CommissionRule](m.ProductCommissions)
	if err != nil {
		return d, fmt.Errorf("professional %s: %w", m.ProfessionalID, err)
	}
	if rules != nil {
		d.ProductCommissions = *rules
	}
	return d, nil
}

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) (models.Product, error) {
	m := models.Product{
		ProductID:    d.ProductID,
		Name:         d.Name,
		PurchaseCost: d.PurchaseCost,
	}
	var err error
	m.DefaultCommission, err = toJSON(d.DefaultCommission)
	return m, err
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) (domain.Product, error) {
	d := domain.Product{
		ProductID:    m.ProductID,
		Name:         m.Name,
		PurchaseCost: m.PurchaseCost,
	}
	var err error
	if d.DefaultCommission, err = fromJSON[domain.CommissionRule](m.DefaultCommission); err != nil {
		return d, fmt.Errorf("product %s: %w", m.ProductID, err)
	}
	return d, nil
}

// ToModelAdminCommission converts a domain AdminCommission to a model AdminCommission
func ToModelAdminCommission(d domain.AdminCommission) (models.AdminCommission, error) {
	m := models.AdminCommission{
		AdminID:    d.AdminID,
		AdminName:  d.AdminName,
		LocationID: d.Period.LocationID,
		Year:       d.Period.Year,
		Month:      d.Period.Month,
	}
	var err error
	if m.ServiceRule, err = toJSON(d.Service); err != nil {
		return m, err
	}
	m.ProductRule, err = toJSON(d.Product)
	return m, err
}

// ToDomainAdminCommission converts a model AdminCommission to a domain AdminCommission
func ToDomainAdminCommission(m models.AdminCommission) (domain.AdminCommission, error) {
	d := domain.AdminCommission{
		AdminID:   m.AdminID,
		AdminName: m.AdminName,
		Period:    domain.PeriodKey{LocationID: m.LocationID, Year: m.Year, Month: m.Month},
	}
	var err error
	if d.Service, err = fromJSON[domain.CommissionRule](m.ServiceRule); err != nil {
		return d, fmt.Errorf("admin commission %s: %w", m.AdminID, err)
	}
	if d.Product, err = fromJSON[domain.CommissionRule](m.ProductRule); err != nil {
		return d, fmt.Errorf("admin commission %s: %w", m.AdminID, err)
	}
	return d, nil
}

// ToModelOverride converts a domain Override to a model Override
func ToModelOverride(d domain.Override) (models.Override, error) {
	doc, err := toJSON(&d)
	if err != nil {
		return models.Override{}, err
	}
	return models.Override{
		LocationID: d.Period.LocationID,
		Year:       d.Period.Year,
		Month:      d.Period.Month,
		Document:   doc,
		UpdatedAt:  d.UpdatedAt,
		UpdatedBy:  d.UpdatedBy,
	}, nil
}

// ToDomainOverride converts a model Override to a domain Override. The key columns win over
// whatever the document says.
func ToDomainOverride(m models.Override) (domain.Override, error) {
	doc, err := fromJSON[domain.Override](m.Document)
	if err != nil {
		return domain.Override{}, fmt.Errorf("override %04d-%02d: %w", m.Year, m.Month, err)
	}
	var d domain.Override
	if doc != nil {
		d = *doc
	}
	d.Period = domain.PeriodKey{LocationID: m.LocationID, Year: m.Year, Month: m.Month}
	d.UpdatedAt = m.UpdatedAt
	d.UpdatedBy = m.UpdatedBy
	return d, nil
}
