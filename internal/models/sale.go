package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a row of the sales table. The mixed columns are all NULL unless the sale was paid
// with a mixed method.
type Sale struct {
	SaleID        string          `db:"sale_id"`
	LocationID    string          `db:"location_id"`
	SoldAt        time.Time       `db:"sold_at"`
	Total         decimal.Decimal `db:"total"`
	RealPaid      NullDecimal     `db:"real_paid"`
	PaymentMethod string          `db:"payment_method"`
	MixedCash     NullDecimal     `db:"mixed_cash"`
	MixedCard     NullDecimal     `db:"mixed_card"`
	MixedOnline   NullDecimal     `db:"mixed_online"`
	TipPaid       bool            `db:"tip_paid"`
}

// SaleItem is a row of the sale_items table, keyed by (sale_id, item_index).
type SaleItem struct {
	SaleID         string          `db:"sale_id"`
	ItemIndex      int             `db:"item_index"`
	Kind           string          `db:"kind"`
	ProductID      string          `db:"product_id"`
	Description    string          `db:"description"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	Quantity       int             `db:"quantity"`
	Subtotal       NullDecimal     `db:"subtotal"`
	DiscountAmount NullDecimal     `db:"discount_amount"`
	PurchaseCost   NullDecimal     `db:"purchase_cost"`
	ProfessionalID string          `db:"professional_id"`
	CommissionPaid bool            `db:"commission_paid"`
}
