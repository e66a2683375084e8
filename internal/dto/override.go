package dto

import (
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AdminCommissionOverrideRequest freezes one administrator's commissions.
type AdminCommissionOverrideRequest struct {
	Service *decimal.Decimal `json:"service"`
	Product *decimal.Decimal `json:"product"`
}

// SaveOverrideRequest defines the frozen figures an operator enters for a month. Omitted
// fields keep their automatic value.
type SaveOverrideRequest struct {
	LocationID                    string                                     `json:"locationID"`
	Year                          int                                        `json:"year" binding:"required,min=2000,max=9999"`
	Month                         int                                        `json:"month" binding:"required,min=1,max=12"`
	ServiceRevenue                *decimal.Decimal                           `json:"serviceRevenue"`
	ServiceExpense                *decimal.Decimal                           `json:"serviceExpense"`
	ServiceCommissions            *decimal.Decimal                           `json:"serviceCommissions"`
	ProductRevenue                *decimal.Decimal                           `json:"productRevenue"`
	Reinvestment                  *decimal.Decimal                           `json:"reinvestment"`
	ProductProfessionalCommission *decimal.Decimal                           `json:"productProfessionalCommission"`
	AdminCommissions              map[string]AdminCommissionOverrideRequest  `json:"adminCommissions"`
	ExpenseCategories             map[domain.ExpenseCategory]decimal.Decimal `json:"expenseCategories"`
	Note                          string                                     `json:"note" binding:"max=500"`
}

// Key returns the period the request targets.
func (r SaveOverrideRequest) Key() domain.PeriodKey {
	return domain.PeriodKey{LocationID: r.LocationID, Year: r.Year, Month: r.Month}
}

// ToOverride converts the request to the stored document.
func (r SaveOverrideRequest) ToOverride(userID string, now time.Time) domain.Override {
	o := domain.Override{
		Period:                        r.Key(),
		ServiceRevenue:                r.ServiceRevenue,
		ServiceExpense:                r.ServiceExpense,
		ServiceCommissions:            r.ServiceCommissions,
		ProductRevenue:                r.ProductRevenue,
		Reinvestment:                  r.Reinvestment,
		ProductProfessionalCommission: r.ProductProfessionalCommission,
		Note:                          r.Note,
		UpdatedAt:                     now,
		UpdatedBy:                     userID,
	}
	if len(r.AdminCommissions) > 0 {
		o.AdminCommissions = make(map[string]domain.AdminCommissionOverride, len(r.AdminCommissions))
		for adminID, ac := range r.AdminCommissions {
			o.AdminCommissions[adminID] = domain.AdminCommissionOverride{Service: ac.Service, Product: ac.Product}
		}
	}
	if len(r.ExpenseCategories) > 0 {
		o.ExpenseCategories = make(map[domain.ExpenseCategory]decimal.Decimal, len(r.ExpenseCategories))
		for cat, amount := range r.ExpenseCategories {
			o.ExpenseCategories[cat] = amount
		}
	}
	return o
}

// FreezeOverrideRequest asks for the current automatic figures of a month to be stored as
// its override.
type FreezeOverrideRequest struct {
	LocationID string `json:"locationID"`
	Year       int    `json:"year" binding:"required,min=2000,max=9999"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Note       string `json:"note" binding:"max=500"`
}

// Key returns the period the request targets.
func (r FreezeOverrideRequest) Key() domain.PeriodKey {
	return domain.PeriodKey{LocationID: r.LocationID, Year: r.Year, Month: r.Month}
}
