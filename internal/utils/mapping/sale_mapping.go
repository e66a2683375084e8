package mapping

import (
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
)

// ToModelSale converts a domain Sale to its row and the rows of its items
func ToModelSale(d domain.Sale) (models.Sale, []models.SaleItem) {
	m := models.Sale{
		SaleID:        d.SaleID,
		LocationID:    d.LocationID,
		SoldAt:        d.SoldAt,
		Total:         d.Total,
		RealPaid:      ToNullDecimal(d.RealPaid),
		PaymentMethod: string(d.PaymentMethod),
		TipPaid:       d.TipPaid,
	}
	if d.MixedBreakdown != nil {
		m.MixedCash = ToNullDecimal(&d.MixedBreakdown.Cash)
		m.MixedCard = ToNullDecimal(&d.MixedBreakdown.Card)
		m.MixedOnline = ToNullDecimal(&d.MixedBreakdown.Online)
	}

	items := make([]models.SaleItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.SaleItem{
			SaleID:         d.SaleID,
			ItemIndex:      i,
			Kind:           string(it.Kind),
			ProductID:      it.ProductID,
			Description:    it.Description,
			UnitPrice:      it.UnitPrice,
			Quantity:       it.Quantity,
			Subtotal:       ToNullDecimal(it.Subtotal),
			DiscountAmount: ToNullDecimal(it.DiscountAmount),
			PurchaseCost:   ToNullDecimal(it.PurchaseCost),
			ProfessionalID: it.ProfessionalID,
			CommissionPaid: it.CommissionPaid,
		}
	}
	return m, items
}

// ToDomainSale converts a sale row and its item rows, ordered by item index, to a domain Sale
func ToDomainSale(m models.Sale, items []models.SaleItem) domain.Sale {
	d := domain.Sale{
		SaleID:        m.SaleID,
		LocationID:    m.LocationID,
		SoldAt:        m.SoldAt,
		Total:         m.Total,
		RealPaid:      FromNullDecimal(m.RealPaid),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		TipPaid:       m.TipPaid,
		Items:         make([]domain.LineItem, len(items)),
	}
	if m.MixedCash.Valid || m.MixedCard.Valid || m.MixedOnline.Valid {
		d.MixedBreakdown = &domain.MixedBreakdown{
			Cash:   m.MixedCash.Decimal,
			Card:   m.MixedCard.Decimal,
			Online: m.MixedOnline.Decimal,
		}
	}
	for i, it := range items {
		d.Items[i] = domain.LineItem{
			Kind:           domain.ItemKind(it.Kind),
			ProductID:      it.ProductID,
			Description:    it.Description,
			UnitPrice:      it.UnitPrice,
			Quantity:       it.Quantity,
			Subtotal:       FromNullDecimal(it.Subtotal),
			DiscountAmount: FromNullDecimal(it.DiscountAmount),
			PurchaseCost:   FromNullDecimal(it.PurchaseCost),
			ProfessionalID: it.ProfessionalID,
			CommissionPaid: it.CommissionPaid,
		}
	}
	return d
}
