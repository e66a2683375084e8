package dto

import (
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted and returned by the API.
const DateLayout = "2006-01-02"

// LiveCashResponse defines the data returned for a live cash query.
type LiveCashResponse struct {
	LocationID     string                `json:"locationID,omitempty"`
	Amount         decimal.Decimal       `json:"amount"`
	Baseline       decimal.Decimal       `json:"baseline"`
	BaselineSource domain.BaselineSource `json:"baselineSource"`
	CutID          string                `json:"cutID,omitempty"`
	Since          time.Time             `json:"since"`
	SalesCash      decimal.Decimal       `json:"salesCash"`
	Incomes        decimal.Decimal       `json:"incomes"`
	Expenses       decimal.Decimal       `json:"expenses"`
	EventCount     int                   `json:"eventCount"`
}

// ToLiveCashResponse converts a domain.LiveCashResult to LiveCashResponse DTO
func ToLiveCashResponse(r *domain.LiveCashResult) LiveCashResponse {
	return LiveCashResponse{
		LocationID:     r.LocationID,
		Amount:         r.Amount,
		Baseline:       domain.Round2(r.Baseline),
		BaselineSource: r.BaselineSource,
		CutID:          r.CutID,
		Since:          r.Reference,
		SalesCash:      domain.Round2(r.SalesCash),
		Incomes:        domain.Round2(r.Incomes),
		Expenses:       domain.Round2(r.Expenses),
		EventCount:     r.EventCount,
	}
}
