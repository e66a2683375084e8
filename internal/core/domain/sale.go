package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod describes how a sale was paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentMixed    PaymentMethod = "mixed"
	PaymentOnline   PaymentMethod = "online"
)

// IsValid reports whether m is a known payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentMixed, PaymentOnline:
		return true
	}
	return false
}

// ItemKind distinguishes services from retail products on a sale.
type ItemKind string

const (
	ItemService ItemKind = "service"
	ItemProduct ItemKind = "product"
)

// MixedBreakdown splits a mixed-method payment. Present iff the sale is mixed.
type MixedBreakdown struct {
	Cash   decimal.Decimal `json:"cash"`
	Card   decimal.Decimal `json:"card"`
	Online decimal.Decimal `json:"online"`
}

// LineItem is one service or product line of a sale.
type LineItem struct {
	Kind           ItemKind         `json:"kind"`
	ProductID      string           `json:"productID,omitempty"`
	Description    string           `json:"description,omitempty"`
	UnitPrice      decimal.Decimal  `json:"unitPrice"`
	Quantity       int              `json:"quantity"`
	Subtotal       *decimal.Decimal `json:"subtotal,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
	PurchaseCost   *decimal.Decimal `json:"purchaseCost,omitempty"` // unit cost captured at sale time
	ProfessionalID string           `json:"professionalID"`
	CommissionPaid bool             `json:"commissionPaid"`
}

// Gross is the pre-discount line amount.
func (li LineItem) Gross() decimal.Decimal {
	if li.Subtotal != nil {
		return *li.Subtotal
	}
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// NetRevenue is (gross - discount) scaled by the sale's payment ratio.
func (li LineItem) NetRevenue(ratio decimal.Decimal) decimal.Decimal {
	return li.Gross().Sub(DecimalOrZero(li.DiscountAmount)).Mul(ratio)
}

// Sale is a point-of-sale ticket.
type Sale struct {
	SaleID         string           `json:"saleID"`
	LocationID     string           `json:"locationID"`
	SoldAt         time.Time        `json:"soldAt"`
	Total          decimal.Decimal  `json:"total"`
	RealPaid       *decimal.Decimal `json:"realPaid,omitempty"` // set for partial or deposit payments
	PaymentMethod  PaymentMethod    `json:"paymentMethod"`
	MixedBreakdown *MixedBreakdown  `json:"mixedBreakdown,omitempty"`
	Items          []LineItem       `json:"items"`
	TipPaid        bool             `json:"tipPaid"`
}

// PaymentRatio is realPaid/total, or 1 when the sale was paid in full.
func (s Sale) PaymentRatio() decimal.Decimal {
	if s.RealPaid == nil || s.Total.IsZero() {
		return decimal.NewFromInt(1)
	}
	if s.RealPaid.GreaterThanOrEqual(s.Total) {
		return decimal.NewFromInt(1)
	}
	return s.RealPaid.Div(s.Total)
}

// EffectiveAmount is what was actually collected.
func (s Sale) EffectiveAmount() decimal.Decimal {
	if s.RealPaid != nil && s.RealPaid.LessThan(s.Total) {
		return *s.RealPaid
	}
	return s.Total
}

// CashComponent is the part of the sale that landed in the cash drawer.
func (s Sale) CashComponent() decimal.Decimal {
	switch s.PaymentMethod {
	case PaymentCash:
		return s.EffectiveAmount()
	case PaymentMixed:
		if s.MixedBreakdown == nil {
			return decimal.Zero
		}
		return s.MixedBreakdown.Cash
	default:
		return decimal.Zero
	}
}

// HasItemsFor reports whether any line belongs to professionalID.
func (s Sale) HasItemsFor(professionalID string) bool {
	for _, it := range s.Items {
		if it.ProfessionalID == professionalID {
			return true
		}
	}
	return false
}
