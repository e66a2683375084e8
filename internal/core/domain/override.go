package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminCommissionOverride freezes both sides of one administrator's commission.
type AdminCommissionOverride struct {
	Service *decimal.Decimal `json:"service,omitempty"`
	Product *decimal.Decimal `json:"product,omitempty"`
}

// Override is an operator-entered frozen snapshot of a month's figures. A nil field keeps
// the automatic value.
type Override struct {
	Period                        PeriodKey                           `json:"period"`
	ServiceRevenue                *decimal.Decimal                    `json:"serviceRevenue,omitempty"`
	ServiceExpense                *decimal.Decimal                    `json:"serviceExpense,omitempty"`
	ServiceCommissions            *decimal.Decimal                    `json:"serviceCommissions,omitempty"`
	ProductRevenue                *decimal.Decimal                    `json:"productRevenue,omitempty"`
	Reinvestment                  *decimal.Decimal                    `json:"reinvestment,omitempty"`
	ProductProfessionalCommission *decimal.Decimal                    `json:"productProfessionalCommission,omitempty"`
	AdminCommissions              map[string]AdminCommissionOverride  `json:"adminCommissions,omitempty"`
	ExpenseCategories             map[ExpenseCategory]decimal.Decimal `json:"expenseCategories,omitempty"`
	Note                          string                              `json:"note,omitempty"`
	UpdatedAt                     time.Time                           `json:"updatedAt"`
	UpdatedBy                     string                              `json:"updatedBy,omitempty"`
}
