package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CommissionKind tells percentage rules from flat ones.
type CommissionKind string

const (
	CommissionPercentage CommissionKind = "PERCENTAGE"
	CommissionFixed      CommissionKind = "FIXED"
)

// CommissionRule is either a percentage (Value=10 means 10%) or a flat amount.
type CommissionRule struct {
	Kind  CommissionKind  `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// Validate rejects unknown kinds and negative values.
func (r CommissionRule) Validate() error {
	if r.Kind != CommissionPercentage && r.Kind != CommissionFixed {
		return fmt.Errorf("unknown commission kind %q", r.Kind)
	}
	if r.Value.IsNegative() {
		return fmt.Errorf("commission value must not be negative")
	}
	return nil
}

// Apply evaluates the rule. base is the amount a percentage applies to; flat is the amount a
// fixed rule resolves to in the caller's context.
func (r CommissionRule) Apply(base, flat decimal.Decimal) decimal.Decimal {
	if r.Kind == CommissionPercentage {
		return base.Mul(r.Value).Div(decimal.NewFromInt(100))
	}
	return flat
}

// Professional is a staff member who earns commissions.
type Professional struct {
	ProfessionalID           string                    `json:"professionalID"`
	LocationID               string                    `json:"locationID"`
	Name                     string                    `json:"name"`
	DefaultProductCommission *CommissionRule           `json:"defaultProductCommission,omitempty"`
	ProductCommissions       map[string]CommissionRule `json:"productCommissions,omitempty"` // keyed by product id
}

// Product is a retail catalogue entry.
type Product struct {
	ProductID         string          `json:"productID"`
	Name              string          `json:"name"`
	PurchaseCost      decimal.Decimal `json:"purchaseCost"`
	DefaultCommission *CommissionRule `json:"defaultCommission,omitempty"`
}

// AdminCommission is the monthly commission adjustment of a local administrator.
type AdminCommission struct {
	AdminID   string          `json:"adminID"`
	AdminName string          `json:"adminName"`
	Period    PeriodKey       `json:"period"`
	Service   *CommissionRule `json:"service,omitempty"`
	Product   *CommissionRule `json:"product,omitempty"`
}

// ResolveProductCommission picks the rule for a product line: the professional's rule for
// that product, then the product default, then the professional default.
func ResolveProductCommission(prof *Professional, product *Product, productID string) *CommissionRule {
	if prof != nil {
		if rule, ok := prof.ProductCommissions[productID]; ok {
			return &rule
		}
	}
	if product != nil && product.DefaultCommission != nil {
		return product.DefaultCommission
	}
	if prof != nil && prof.DefaultProductCommission != nil {
		return prof.DefaultProductCommission
	}
	return nil
}
