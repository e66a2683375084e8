package dto

import "github.com/SscSPs/reconciliation_engine/internal/core/domain"

// PeriodQuery selects one calendar month, optionally for a single location.
type PeriodQuery struct {
	LocationID string `form:"location_id"`
	Year       int    `form:"year" binding:"required,min=2000,max=9999"`
	Month      int    `form:"month" binding:"required,min=1,max=12"`
}

// Key returns the period the query targets.
func (q PeriodQuery) Key() domain.PeriodKey {
	return domain.PeriodKey{LocationID: q.LocationID, Year: q.Year, Month: q.Month}
}

// LiveCashQuery selects the drawer to compute.
type LiveCashQuery struct {
	LocationID string `form:"location_id" binding:"required"`
}

// CommissionSummaryQuery selects a range of calendar days. Both ends are inclusive and use
// DateLayout; omitted ends default to the current month up to today.
type CommissionSummaryQuery struct {
	LocationID string `form:"location_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}
