package domain

import (
	"github.com/shopspring/decimal"
)

// ReportValue carries an automatically computed figure, the operator override (if any) and
// the value a consumer should display.
type ReportValue struct {
	Auto      decimal.Decimal  `json:"auto"`
	Override  *decimal.Decimal `json:"override,omitempty"`
	Effective decimal.Decimal  `json:"effective"`
}

// NewReportValue rounds both sides and picks the override when present.
func NewReportValue(auto decimal.Decimal, override *decimal.Decimal) ReportValue {
	v := ReportValue{Auto: Round2(auto), Effective: Round2(auto)}
	if override != nil {
		o := Round2(*override)
		v.Override = &o
		v.Effective = o
	}
	return v
}

// IsOverridden reports whether the displayed value comes from an override.
func (v ReportValue) IsOverridden() bool {
	return v.Override != nil
}

// CommissionSummary is what one recipient was paid over a period.
type CommissionSummary struct {
	ServiceCommission decimal.Decimal `json:"serviceCommission"`
	ProductCommission decimal.Decimal `json:"productCommission"`
	Tip               decimal.Decimal `json:"tip"`
}

// Total sums the three buckets.
func (c CommissionSummary) Total() decimal.Decimal {
	return c.ServiceCommission.Add(c.ProductCommission).Add(c.Tip)
}

// Add accumulates another breakdown into the summary.
func (c CommissionSummary) Add(b CommissionBreakdown) CommissionSummary {
	return CommissionSummary{
		ServiceCommission: c.ServiceCommission.Add(b.Service),
		ProductCommission: c.ProductCommission.Add(b.Product),
		Tip:               c.Tip.Add(b.Tip),
	}
}

// Rounded returns the summary rounded to money places.
func (c CommissionSummary) Rounded() CommissionSummary {
	return CommissionSummary{
		ServiceCommission: Round2(c.ServiceCommission),
		ProductCommission: Round2(c.ProductCommission),
		Tip:               Round2(c.Tip),
	}
}

// AdminCommissionLine is one administrator's share of the month.
type AdminCommissionLine struct {
	AdminID   string      `json:"adminID"`
	AdminName string      `json:"adminName"`
	Service   ReportValue `json:"service"`
	Product   ReportValue `json:"product"`
}

// MonthlyReport is the service and product profit/loss of one period.
type MonthlyReport struct {
	Period PeriodKey `json:"period"`

	ServiceRevenue     ReportValue `json:"serviceRevenue"`
	ServiceCommissions ReportValue `json:"serviceCommissions"` // service + tip buckets
	ProductCommissions ReportValue `json:"productCommissions"` // product bucket of commission payments
	Payroll            ReportValue `json:"payroll"`
	FixedCosts         ReportValue `json:"fixedCosts"`
	ServiceExpense     ReportValue `json:"serviceExpense"`
	ServiceSubtotal    ReportValue `json:"serviceSubtotal"`

	ProductRevenue                ReportValue `json:"productRevenue"`
	Reinvestment                  ReportValue `json:"reinvestment"`
	ProductProfessionalCommission ReportValue `json:"productProfessionalCommission"`
	ProductSubtotal               ReportValue `json:"productSubtotal"`

	AdminCommissions  []AdminCommissionLine `json:"adminCommissions"`
	NetServiceUtility ReportValue           `json:"netServiceUtility"`
	NetProductUtility ReportValue           `json:"netProductUtility"`

	ExpenseCategories map[ExpenseCategory]ReportValue `json:"expenseCategories"`
	Commissions       map[string]CommissionSummary    `json:"commissions"`

	Overridden   bool   `json:"overridden"`
	OverrideNote string `json:"overrideNote,omitempty"`
}
