package services

import (
	"context"
	"time"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/reconciliation_engine/internal/core/ports/repositories"
	"github.com/SscSPs/reconciliation_engine/internal/dto"
)

// CommissionAttributorSvc splits commission payments into service, product and tip buckets
// per recipient.
type CommissionAttributorSvc interface {
	// Summarize attributes the given expenses. Recipients whose total is zero are omitted.
	Summarize(expenses []domain.Expense, professionals []domain.Professional) map[string]domain.CommissionSummary

	// CommissionSummary loads the expenses of [from, to) and summarizes them, rounded.
	CommissionSummary(ctx context.Context, locationID string, from, to time.Time) (map[string]domain.CommissionSummary, error)
}

// SettlementWriterSvc records commission payments.
type SettlementWriterSvc interface {
	// RecordCommissionPayment creates a structured commission expense and marks every
	// referenced item and tip as paid, atomically.
	RecordCommissionPayment(ctx context.Context, req dto.RecordCommissionPaymentRequest, userID string) (*domain.Expense, []domain.SettlementRef, error)
}

// SettlementReverserSvc undoes commission payments.
type SettlementReverserSvc interface {
	// ReverseCommissionPayment flips back the flags a commission expense set, inside tx.
	ReverseCommissionPayment(ctx context.Context, tx portsrepo.StoreTx, expense domain.Expense) (*domain.ReversalResult, error)

	// DeleteExpense deletes an expense, reversing its settlement first when it is a
	// commission payment. Both happen in one transaction.
	DeleteExpense(ctx context.Context, expenseID string, userID string) (*domain.ReversalResult, error)
}

// SettlementSvcFacade combines all settlement-related service interfaces
type SettlementSvcFacade interface {
	SettlementWriterSvc
	SettlementReverserSvc
}
