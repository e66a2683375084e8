package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func TestSale_PaymentRatio(t *testing.T) {
	tests := []struct {
		name string
		sale domain.Sale
		want string
	}{
		{"paid in full", domain.Sale{Total: decimal.NewFromInt(200)}, "1"},
		{"half paid", domain.Sale{Total: decimal.NewFromInt(200), RealPaid: decimalPtr(decimal.NewFromInt(100))}, "0.5"},
		{"overpaid", domain.Sale{Total: decimal.NewFromInt(200), RealPaid: decimalPtr(decimal.NewFromInt(250))}, "1"},
		{"zero total", domain.Sale{Total: decimal.Zero, RealPaid: decimalPtr(decimal.NewFromInt(5))}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sale.PaymentRatio()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSale_CashComponent(t *testing.T) {
	total := decimal.NewFromInt(100)
	tests := []struct {
		name string
		sale domain.Sale
		want string
	}{
		{"cash", domain.Sale{Total: total, PaymentMethod: domain.PaymentCash}, "100"},
		{"partial cash", domain.Sale{Total: total, RealPaid: decimalPtr(decimal.NewFromInt(30)), PaymentMethod: domain.PaymentCash}, "30"},
		{"card", domain.Sale{Total: total, PaymentMethod: domain.PaymentCard}, "0"},
		{"mixed", domain.Sale{Total: total, PaymentMethod: domain.PaymentMixed, MixedBreakdown: &domain.MixedBreakdown{Cash: decimal.NewFromInt(45)}}, "45"},
		{"mixed without breakdown", domain.Sale{Total: total, PaymentMethod: domain.PaymentMixed}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sale.CashComponent()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestLineItem_NetRevenue(t *testing.T) {
	item := domain.LineItem{
		UnitPrice:      decimal.NewFromInt(60),
		Quantity:       2,
		DiscountAmount: decimalPtr(decimal.NewFromInt(20)),
	}
	assert.Equal(t, "50", item.NetRevenue(decimal.RequireFromString("0.5")).String())

	item.Subtotal = decimalPtr(decimal.NewFromInt(100))
	assert.Equal(t, "80", item.NetRevenue(decimal.NewFromInt(1)).String())
}

func TestCashCut_Baseline(t *testing.T) {
	system := decimalPtr(decimal.NewFromInt(500))
	legacy := decimalPtr(decimal.NewFromInt(300))
	float := decimalPtr(decimal.NewFromInt(100))

	tests := []struct {
		name       string
		cut        domain.CashCut
		want       string
		wantSource domain.BaselineSource
	}{
		{"system total wins", domain.CashCut{SystemTotal: system, LegacyCalculatedTotal: legacy, BaseFloat: float, DeliveredAmount: decimal.NewFromInt(-1)}, "500", domain.BaselineSystemTotal},
		{"legacy sentinel", domain.CashCut{LegacyCalculatedTotal: legacy, BaseFloat: float, DeliveredAmount: decimal.NewFromInt(-1)}, "300", domain.BaselineLegacyTotal},
		{"legacy total ignored without sentinel", domain.CashCut{LegacyCalculatedTotal: legacy, BaseFloat: float}, "100", domain.BaselineBaseFloat},
		{"nothing recorded", domain.CashCut{DeliveredAmount: decimal.NewFromInt(-1)}, "0", domain.BaselineBaseFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := tt.cut.Baseline()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestClassifyLegacyExpense(t *testing.T) {
	tests := []struct {
		concept   string
		recipient string
		want      domain.ExpenseCategory
	}{
		{"Commission", "p1", domain.CategoryCommissionPayment},
		{"weekly COMMISSIONS", "p1", domain.CategoryCommissionPayment},
		{"Commission", "Fixed costs", domain.CategoryCommissionPayment},
		{"Payroll", "Fixed costs", domain.CategoryPayroll},
		{"payroll", "staff", domain.CategoryOther},
		{"Rent", "Fixed costs", domain.CategoryFixedCost},
		{"Rent", "fixed costs", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.concept+"/"+tt.recipient, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyLegacyExpense(tt.concept, tt.recipient))
		})
	}
}

func TestExpense_EffectiveCategory(t *testing.T) {
	stored := domain.Expense{Concept: "Commission", Category: domain.CategoryOther}
	legacy := domain.Expense{Concept: "Commission"}

	assert.Equal(t, domain.CategoryOther, stored.EffectiveCategory())
	assert.False(t, stored.IsCommissionPayment())
	assert.True(t, legacy.IsCommissionPayment())
}

func TestPeriodKey(t *testing.T) {
	key := domain.PeriodKey{LocationID: "loc-1", Year: 2024, Month: 12}
	loc := time.FixedZone("CST", -6*60*60)

	from, to := key.Bounds(loc)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), to)
	assert.Equal(t, "2024-12@loc-1", key.String())
	assert.Equal(t, "2024-12@*", domain.PeriodKey{Year: 2024, Month: 12}.String())
	assert.NoError(t, key.Validate())
	assert.Error(t, domain.PeriodKey{Year: 2024, Month: 0}.Validate())
	assert.Error(t, domain.PeriodKey{Year: 1999, Month: 1}.Validate())
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("CST", -6*60*60)
	// 03:00 UTC on the 11th is still the 10th in CST
	got := domain.StartOfDay(time.Date(2024, time.January, 11, 3, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, loc), got)
}

func TestResolveProductCommission(t *testing.T) {
	specific := domain.CommissionRule{Kind: domain.CommissionPercentage, Value: decimal.NewFromInt(15)}
	productDefault := &domain.CommissionRule{Kind: domain.CommissionFixed, Value: decimal.NewFromInt(3)}
	profDefault := &domain.CommissionRule{Kind: domain.CommissionPercentage, Value: decimal.NewFromInt(5)}

	prof := &domain.Professional{
		ProfessionalID:           "p1",
		DefaultProductCommission: profDefault,
		ProductCommissions:       map[string]domain.CommissionRule{"prod-1": specific},
	}
	product := &domain.Product{ProductID: "prod-2", DefaultCommission: productDefault}
	bare := &domain.Product{ProductID: "prod-3"}

	assert.Equal(t, &specific, domain.ResolveProductCommission(prof, product, "prod-1"))
	assert.Equal(t, productDefault, domain.ResolveProductCommission(prof, product, "prod-2"))
	assert.Equal(t, profDefault, domain.ResolveProductCommission(prof, bare, "prod-3"))
	assert.Nil(t, domain.ResolveProductCommission(nil, bare, "prod-3"))
}

func TestCommissionRule(t *testing.T) {
	pct := domain.CommissionRule{Kind: domain.CommissionPercentage, Value: decimal.NewFromInt(10)}
	fixed := domain.CommissionRule{Kind: domain.CommissionFixed, Value: decimal.NewFromInt(4)}

	assert.Equal(t, "12", pct.Apply(decimal.NewFromInt(120), decimal.NewFromInt(99)).String())
	assert.Equal(t, "99", fixed.Apply(decimal.NewFromInt(120), decimal.NewFromInt(99)).String())
	assert.NoError(t, pct.Validate())
	assert.Error(t, domain.CommissionRule{Kind: "BONUS", Value: decimal.NewFromInt(1)}.Validate())
	assert.Error(t, domain.CommissionRule{Kind: domain.CommissionFixed, Value: decimal.NewFromInt(-1)}.Validate())
}

func TestNewReportValue(t *testing.T) {
	auto := decimal.RequireFromString("10.005")

	plain := domain.NewReportValue(auto, nil)
	assert.Equal(t, "10.01", plain.Effective.String())
	assert.False(t, plain.IsOverridden())

	overridden := domain.NewReportValue(auto, decimalPtr(decimal.RequireFromString("7.1")))
	assert.Equal(t, "10.01", overridden.Auto.String())
	assert.Equal(t, "7.1", overridden.Effective.String())
	assert.True(t, overridden.IsOverridden())
}
