package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a row of the expenses table. HasBreakdown and HasSettlement distinguish typed
// commission payments from legacy rows.
type Expense struct {
	ExpenseID        string          `db:"expense_id"`
	LocationID       string          `db:"location_id"`
	ExpenseDate      time.Time       `db:"expense_date"`
	Concept          string          `db:"concept"`
	Category         string          `db:"category"` // empty on legacy rows
	Recipient        string          `db:"recipient"`
	Amount           decimal.Decimal `db:"amount"`
	Comment          string          `db:"comment"`
	HasBreakdown     bool            `db:"has_breakdown"`
	BreakdownService decimal.Decimal `db:"breakdown_service"`
	BreakdownProduct decimal.Decimal `db:"breakdown_product"`
	BreakdownTip     decimal.Decimal `db:"breakdown_tip"`
	HasSettlement    bool            `db:"has_settlement"`
	CreatedAt        time.Time       `db:"created_at"`
}

// SettlementRef is a row of the expense_settlement_refs table.
type SettlementRef struct {
	ExpenseID string `db:"expense_id"`
	Ordinal   int    `db:"ordinal"`
	RefKind   string `db:"ref_kind"`
	SaleID    string `db:"sale_id"`
	ItemIndex int    `db:"item_index"`
}
