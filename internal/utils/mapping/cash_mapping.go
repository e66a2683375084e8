package mapping

import (
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
)

// ToModelManualIncome converts a domain ManualIncome to a model ManualIncome
func ToModelManualIncome(d domain.ManualIncome) models.ManualIncome {
	return models.ManualIncome{
		IncomeID:   d.IncomeID,
		LocationID: d.LocationID,
		IncomeDate: d.Date,
		Amount:     d.Amount,
		Concept:    d.Concept,
	}
}

// ToDomainManualIncome converts a model ManualIncome to a domain ManualIncome
func ToDomainManualIncome(m models.ManualIncome) domain.ManualIncome {
	return domain.ManualIncome{
		IncomeID:   m.IncomeID,
		LocationID: m.LocationID,
		Date:       m.IncomeDate,
		Amount:     m.Amount,
		Concept:    m.Concept,
	}
}

// ToModelCashCut converts a domain CashCut to a model CashCut
func ToModelCashCut(d domain.CashCut) models.CashCut {
	return models.CashCut{
		CutID:                 d.CutID,
		LocationID:            d.LocationID,
		CutAt:                 d.CutAt,
		SystemTotal:           ToNullDecimal(d.SystemTotal),
		LegacyCalculatedTotal: ToNullDecimal(d.LegacyCalculatedTotal),
		BaseFloat:             ToNullDecimal(d.BaseFloat),
		DeliveredAmount:       d.DeliveredAmount,
	}
}

// ToDomainCashCut converts a model CashCut to a domain CashCut
func ToDomainCashCut(m models.CashCut) domain.CashCut {
	return domain.CashCut{
		CutID:                 m.CutID,
		LocationID:            m.LocationID,
		CutAt:                 m.CutAt,
		SystemTotal:           FromNullDecimal(m.SystemTotal),
		LegacyCalculatedTotal: FromNullDecimal(m.LegacyCalculatedTotal),
		BaseFloat:             FromNullDecimal(m.BaseFloat),
		DeliveredAmount:       m.DeliveredAmount,
	}
}
