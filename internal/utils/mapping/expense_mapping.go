package mapping

import (
	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/models"
)

// ToModelExpense converts a domain Expense to its row and its settlement reference rows
func ToModelExpense(d domain.Expense) (models.Expense, []models.SettlementRef) {
	m := models.Expense{
		ExpenseID:     d.ExpenseID,
		LocationID:    d.LocationID,
		ExpenseDate:   d.Date,
		Concept:       d.Concept,
		Category:      string(d.Category),
		Recipient:     d.Recipient,
		Amount:        d.Amount,
		Comment:       d.Comment,
		HasSettlement: d.Settlement != nil,
		CreatedAt:     d.CreatedAt,
	}
	if d.Breakdown != nil {
		m.HasBreakdown = true
		m.BreakdownService = d.Breakdown.Service
		m.BreakdownProduct = d.Breakdown.Product
		m.BreakdownTip = d.Breakdown.Tip
	}

	var refs []models.SettlementRef
	if d.Settlement != nil {
		for _, ref := range d.Settlement.ItemRefs {
			refs = append(refs, models.SettlementRef{
				ExpenseID: d.ExpenseID,
				Ordinal:   len(refs),
				RefKind:   string(domain.RefItem),
				SaleID:    ref.SaleID,
				ItemIndex: ref.ItemIndex,
			})
		}
		for _, saleID := range d.Settlement.TipRefs {
			refs = append(refs, models.SettlementRef{
				ExpenseID: d.ExpenseID,
				Ordinal:   len(refs),
				RefKind:   string(domain.RefTip),
				SaleID:    saleID,
			})
		}
	}
	return m, refs
}

// ToDomainExpense converts an expense row and its reference rows, ordered by ordinal, to a
// domain Expense
func ToDomainExpense(m models.Expense, refs []models.SettlementRef) domain.Expense {
	d := domain.Expense{
		ExpenseID:  m.ExpenseID,
		LocationID: m.LocationID,
		Date:       m.ExpenseDate,
		Concept:    m.Concept,
		Category:   domain.ExpenseCategory(m.Category),
		Recipient:  m.Recipient,
		Amount:     m.Amount,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
	if m.HasBreakdown {
		d.Breakdown = &domain.CommissionBreakdown{
			Service: m.BreakdownService,
			Product: m.BreakdownProduct,
			Tip:     m.BreakdownTip,
		}
	}
	if m.HasSettlement {
		settlement := domain.StructuredSettlement{ItemRefs: []domain.ItemRef{}, TipRefs: []string{}}
		for _, ref := range refs {
			switch domain.SettlementRefKind(ref.RefKind) {
			case domain.RefItem:
				settlement.ItemRefs = append(settlement.ItemRefs, domain.ItemRef{SaleID: ref.SaleID, ItemIndex: ref.ItemIndex})
			case domain.RefTip:
				settlement.TipRefs = append(settlement.TipRefs, ref.SaleID)
			}
		}
		d.Settlement = &settlement
	}
	return d
}
