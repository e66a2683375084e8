package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory classifies an expense at creation time.
type ExpenseCategory string

const (
	CategoryCommissionPayment ExpenseCategory = "COMMISSION_PAYMENT"
	CategoryPayroll           ExpenseCategory = "PAYROLL"
	CategoryFixedCost         ExpenseCategory = "FIXED_COST"
	CategoryOther             ExpenseCategory = "OTHER"
)

// Legacy free-text markers still found on records created before categories existed.
const (
	LegacyCommissionKeyword = "commission"
	LegacyPayrollConcept    = "Payroll"
	LegacyFixedCostsLabel   = "Fixed costs"
)

// IsValid reports whether c is one of the known categories.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryCommissionPayment, CategoryPayroll, CategoryFixedCost, CategoryOther:
		return true
	}
	return false
}

// ClassifyLegacyExpense maps the free-text concept/recipient pair of an old record onto a
// category. Commission wins over payroll, which wins over fixed costs.
func ClassifyLegacyExpense(concept, recipient string) ExpenseCategory {
	switch {
	case strings.Contains(strings.ToLower(concept), LegacyCommissionKeyword):
		return CategoryCommissionPayment
	case concept == LegacyPayrollConcept:
		return CategoryPayroll
	case recipient == LegacyFixedCostsLabel:
		return CategoryFixedCost
	default:
		return CategoryOther
	}
}

// CommissionBreakdown is the typed split of a commission payment.
type CommissionBreakdown struct {
	Service decimal.Decimal `json:"service"`
	Product decimal.Decimal `json:"product"`
	Tip     decimal.Decimal `json:"tip"`
}

// Total sums the three buckets.
func (b CommissionBreakdown) Total() decimal.Decimal {
	return b.Service.Add(b.Product).Add(b.Tip)
}

// ItemRef points at one line of one sale.
type ItemRef struct {
	SaleID    string `json:"saleID"`
	ItemIndex int    `json:"itemIndex"`
}

// StructuredSettlement records exactly which items and tips a payment settled.
type StructuredSettlement struct {
	ItemRefs []ItemRef `json:"itemRefs"`
	TipRefs  []string  `json:"tipRefs"`
}

// IsEmpty reports whether the settlement references nothing.
func (s StructuredSettlement) IsEmpty() bool {
	return len(s.ItemRefs) == 0 && len(s.TipRefs) == 0
}

// Expense is money leaving the business.
type Expense struct {
	ExpenseID  string                `json:"expenseID"`
	LocationID string                `json:"locationID"`
	Date       time.Time             `json:"date"`
	Concept    string                `json:"concept"`
	Category   ExpenseCategory       `json:"category,omitempty"` // empty on legacy rows
	Recipient  string                `json:"recipient"`
	Amount     decimal.Decimal       `json:"amount"`
	Comment    string                `json:"comment,omitempty"`
	Breakdown  *CommissionBreakdown  `json:"breakdown,omitempty"`
	Settlement *StructuredSettlement `json:"settlement,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// EffectiveCategory returns the stored category, or the legacy classification when unset.
func (e Expense) EffectiveCategory() ExpenseCategory {
	if e.Category.IsValid() {
		return e.Category
	}
	return ClassifyLegacyExpense(e.Concept, e.Recipient)
}

// IsCommissionPayment reports whether the expense pays professional commissions.
func (e Expense) IsCommissionPayment() bool {
	return e.EffectiveCategory() == CategoryCommissionPayment
}

// SettlementRefKind tells item references from tip references.
type SettlementRefKind string

const (
	RefItem SettlementRefKind = "ITEM"
	RefTip  SettlementRefKind = "TIP"
)

// SettlementRef describes one flag flipped (or skipped) by a settlement operation.
type SettlementRef struct {
	Kind      SettlementRefKind `json:"kind"`
	SaleID    string            `json:"saleID"`
	ItemIndex int               `json:"itemIndex,omitempty"`
	Reason    string            `json:"reason,omitempty"`
}

// ReversalMode tells how a commission payment was undone.
type ReversalMode string

const (
	ReversalNone       ReversalMode = "NONE"
	ReversalStructured ReversalMode = "STRUCTURED"
	ReversalHeuristic  ReversalMode = "HEURISTIC"
)

// ReversalResult lists the flags a reversal flipped back to unpaid and the references it
// had to skip.
type ReversalResult struct {
	ExpenseID string          `json:"expenseID"`
	Mode      ReversalMode    `json:"mode"`
	Reverted  []SettlementRef `json:"reverted"`
	Skipped   []SettlementRef `json:"skipped,omitempty"`
}

// CategoryAssignment is one row of the legacy category back-fill.
type CategoryAssignment struct {
	ExpenseID string          `json:"expenseID"`
	Concept   string          `json:"concept"`
	Recipient string          `json:"recipient"`
	Category  ExpenseCategory `json:"category"`
}
