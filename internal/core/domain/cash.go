package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualIncome is a cash movement into the drawer that is not a sale.
type ManualIncome struct {
	IncomeID   string          `json:"incomeID"`
	LocationID string          `json:"locationID"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Concept    string          `json:"concept"`
}

// CashCut is an end-of-shift audit snapshot. Cuts are never mutated, only superseded.
type CashCut struct {
	CutID                 string           `json:"cutID"`
	LocationID            string           `json:"locationID"`
	CutAt                 time.Time        `json:"cutAt"`
	SystemTotal           *decimal.Decimal `json:"systemTotal,omitempty"`
	LegacyCalculatedTotal *decimal.Decimal `json:"legacyCalculatedTotal,omitempty"`
	BaseFloat             *decimal.Decimal `json:"baseFloat,omitempty"`
	DeliveredAmount       decimal.Decimal  `json:"deliveredAmount"` // negative on legacy rows
}

// BaselineSource names which cash cut field seeded a live cash computation.
type BaselineSource string

const (
	BaselineNone        BaselineSource = "NONE"
	BaselineSystemTotal BaselineSource = "SYSTEM_TOTAL"
	BaselineLegacyTotal BaselineSource = "LEGACY_CALCULATED_TOTAL"
	BaselineBaseFloat   BaselineSource = "BASE_FLOAT"
)

// Baseline resolves the opening balance a cut represents.
func (c CashCut) Baseline() (decimal.Decimal, BaselineSource) {
	if c.SystemTotal != nil {
		return *c.SystemTotal, BaselineSystemTotal
	}
	if c.DeliveredAmount.IsNegative() && c.LegacyCalculatedTotal != nil {
		return *c.LegacyCalculatedTotal, BaselineLegacyTotal
	}
	if c.BaseFloat != nil {
		return *c.BaseFloat, BaselineBaseFloat
	}
	return decimal.Zero, BaselineBaseFloat
}

// LiveCashResult is the outcome of a live cash computation together with its inputs.
type LiveCashResult struct {
	LocationID     string          `json:"locationID"`
	Amount         decimal.Decimal `json:"amount"`
	Baseline       decimal.Decimal `json:"baseline"`
	BaselineSource BaselineSource  `json:"baselineSource"`
	CutID          string          `json:"cutID,omitempty"`
	Reference      time.Time       `json:"reference"`
	SalesCash      decimal.Decimal `json:"salesCash"`
	Incomes        decimal.Decimal `json:"incomes"`
	Expenses       decimal.Decimal `json:"expenses"`
	EventCount     int             `json:"eventCount"`
}
