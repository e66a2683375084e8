package services

import (
	"context"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
)

// CashBalanceSvc computes the cash that should be in a drawer right now.
type CashBalanceSvc interface {
	// LiveCash returns the latest cash cut baseline plus every cash movement after it. An
	// empty locationID covers all locations.
	LiveCash(ctx context.Context, locationID string) (*domain.LiveCashResult, error)
}
