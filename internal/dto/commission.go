package dto

import (
	"sort"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ItemRefRequest points at one line of a sale being settled.
type ItemRefRequest struct {
	SaleID    string `json:"saleID" binding:"required"`
	ItemIndex int    `json:"itemIndex" binding:"min=0"`
}

// RecordCommissionPaymentRequest defines the data needed to pay a professional and mark the
// settled items and tips as paid.
type RecordCommissionPaymentRequest struct {
	LocationID string           `json:"locationID" binding:"required"`
	Recipient  string           `json:"recipient" binding:"required"` // professional id
	Date       time.Time        `json:"date" binding:"required"`
	Concept    string           `json:"concept"`
	Service    decimal.Decimal  `json:"service"`
	Product    decimal.Decimal  `json:"product"`
	Tip        decimal.Decimal  `json:"tip"`
	ItemRefs   []ItemRefRequest `json:"itemRefs" binding:"dive"`
	TipRefs    []string         `json:"tipRefs" binding:"dive,required"`
	Comment    string           `json:"comment" binding:"max=1000"`
}

// Breakdown converts the request amounts to the typed breakdown.
func (r RecordCommissionPaymentRequest) Breakdown() domain.CommissionBreakdown {
	return domain.CommissionBreakdown{Service: r.Service, Product: r.Product, Tip: r.Tip}
}

// Settlement converts the request references to the structured settlement.
func (r RecordCommissionPaymentRequest) Settlement() domain.StructuredSettlement {
	s := domain.StructuredSettlement{
		ItemRefs: make([]domain.ItemRef, 0, len(r.ItemRefs)),
		TipRefs:  make([]string, 0, len(r.TipRefs)),
	}
	for _, ref := range r.ItemRefs {
		s.ItemRefs = append(s.ItemRefs, domain.ItemRef{SaleID: ref.SaleID, ItemIndex: ref.ItemIndex})
	}
	s.TipRefs = append(s.TipRefs, r.TipRefs...)
	return s
}

// CommissionPaymentResponse is returned after a payment was recorded.
type CommissionPaymentResponse struct {
	Expense ExpenseResponse        `json:"expense"`
	Settled []domain.SettlementRef `json:"settled"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID  string                       `json:"expenseID"`
	LocationID string                       `json:"locationID"`
	Date       time.Time                    `json:"date"`
	Concept    string                       `json:"concept"`
	Category   domain.ExpenseCategory       `json:"category"`
	Recipient  string                       `json:"recipient"`
	Amount     decimal.Decimal              `json:"amount"`
	Comment    string                       `json:"comment,omitempty"`
	Breakdown  *domain.CommissionBreakdown  `json:"breakdown,omitempty"`
	Settlement *domain.StructuredSettlement `json:"settlement,omitempty"`
	CreatedAt  time.Time                    `json:"createdAt"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:  e.ExpenseID,
		LocationID: e.LocationID,
		Date:       e.Date,
		Concept:    e.Concept,
		Category:   e.EffectiveCategory(),
		Recipient:  e.Recipient,
		Amount:     domain.Round2(e.Amount),
		Comment:    e.Comment,
		Breakdown:  e.Breakdown,
		Settlement: e.Settlement,
		CreatedAt:  e.CreatedAt,
	}
}

// DeleteExpenseResponse reports what deleting an expense reverted.
type DeleteExpenseResponse struct {
	ExpenseID string                 `json:"expenseID"`
	Mode      domain.ReversalMode    `json:"mode"`
	Reverted  []domain.SettlementRef `json:"reverted"`
	Skipped   []domain.SettlementRef `json:"skipped,omitempty"`
}

// ToDeleteExpenseResponse converts a reversal result to its DTO.
func ToDeleteExpenseResponse(r *domain.ReversalResult) DeleteExpenseResponse {
	resp := DeleteExpenseResponse{
		ExpenseID: r.ExpenseID,
		Mode:      r.Mode,
		Reverted:  r.Reverted,
		Skipped:   r.Skipped,
	}
	if resp.Reverted == nil {
		resp.Reverted = []domain.SettlementRef{}
	}
	return resp
}

// RecipientCommissionResponse is one row of a commission summary.
type RecipientCommissionResponse struct {
	Recipient         string          `json:"recipient"`
	ServiceCommission decimal.Decimal `json:"serviceCommission"`
	ProductCommission decimal.Decimal `json:"productCommission"`
	Tip               decimal.Decimal `json:"tip"`
	Total             decimal.Decimal `json:"total"`
}

// CommissionSummaryResponse lists what every recipient was paid in a date range.
type CommissionSummaryResponse struct {
	LocationID string                        `json:"locationID,omitempty"`
	From       string                        `json:"from"`
	To         string                        `json:"to"`
	Recipients []RecipientCommissionResponse `json:"recipients"`
}

// ToCommissionSummaryResponse converts the per-recipient map to a list sorted by recipient.
func ToCommissionSummaryResponse(locationID string, from, to time.Time, summary map[string]domain.CommissionSummary) CommissionSummaryResponse {
	resp := CommissionSummaryResponse{
		LocationID: locationID,
		From:       from.Format(DateLayout),
		To:         to.Format(DateLayout),
		Recipients: RecipientRows(summary),
	}
	return resp
}

// RecipientRows flattens a per-recipient summary into rows sorted by recipient name.
func RecipientRows(summary map[string]domain.CommissionSummary) []RecipientCommissionResponse {
	rows := make([]RecipientCommissionResponse, 0, len(summary))
	for name, s := range summary {
		s = s.Rounded()
		rows = append(rows, RecipientCommissionResponse{
			Recipient:         name,
			ServiceCommission: s.ServiceCommission,
			ProductCommission: s.ProductCommission,
			Tip:               s.Tip,
			Total:             s.Total(),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Recipient < rows[j].Recipient })
	return rows
}
