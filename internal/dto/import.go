package dto

import "github.com/SscSPs/reconciliation_engine/internal/core/domain"

// ImportBatchRequest carries records produced by the point-of-sale and finance workflows.
// The whole batch is written in one transaction.
type ImportBatchRequest struct {
	Sales            []domain.Sale            `json:"sales"`
	Expenses         []domain.Expense         `json:"expenses"`
	ManualIncomes    []domain.ManualIncome    `json:"manualIncomes"`
	CashCuts         []domain.CashCut         `json:"cashCuts"`
	Professionals    []domain.Professional    `json:"professionals"`
	Products         []domain.Product         `json:"products"`
	AdminCommissions []domain.AdminCommission `json:"adminCommissions"`
}

// IsEmpty reports whether the batch carries no records at all.
func (r ImportBatchRequest) IsEmpty() bool {
	return len(r.Sales)+len(r.Expenses)+len(r.ManualIncomes)+len(r.CashCuts)+
		len(r.Professionals)+len(r.Products)+len(r.AdminCommissions) == 0
}

// ImportResult counts what a batch wrote.
type ImportResult struct {
	Sales            int `json:"sales"`
	Expenses         int `json:"expenses"`
	ManualIncomes    int `json:"manualIncomes"`
	CashCuts         int `json:"cashCuts"`
	Professionals    int `json:"professionals"`
	Products         int `json:"products"`
	AdminCommissions int `json:"adminCommissions"`
}
