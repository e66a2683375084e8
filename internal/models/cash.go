package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualIncome is a row of the manual_incomes table.
type ManualIncome struct {
	IncomeID   string          `db:"income_id"`
	LocationID string          `db:"location_id"`
	IncomeDate time.Time       `db:"income_date"`
	Amount     decimal.Decimal `db:"amount"`
	Concept    string          `db:"concept"`
}

// CashCut is a row of the cash_cuts table.
type CashCut struct {
	CutID                 string          `db:"cut_id"`
	LocationID            string          `db:"location_id"`
	CutAt                 time.Time       `db:"cut_at"`
	SystemTotal           NullDecimal     `db:"system_total"`
	LegacyCalculatedTotal NullDecimal     `db:"legacy_calculated_total"`
	BaseFloat             NullDecimal     `db:"base_float"`
	DeliveredAmount       decimal.Decimal `db:"delivered_amount"`
}
