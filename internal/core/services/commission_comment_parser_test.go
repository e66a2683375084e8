package services_test

import (
	"testing"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegacyCommissionComment(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		wantOK  bool
		service string
		product string
		tip     string
	}{
		{
			name:    "all three segments",
			comment: "Service Commission: $70.00, Product Commission: $26.85, Tip: $0.00",
			wantOK:  true,
			service: "70", product: "26.85", tip: "0",
		},
		{
			name:    "segments out of order",
			comment: "Tip: $5, Service Commission: $10",
			wantOK:  true,
			service: "10", product: "0", tip: "5",
		},
		{
			name:    "lower case without dollar sign",
			comment: "product commission:12.5",
			wantOK:  true,
			service: "0", product: "12.5", tip: "0",
		},
		{
			name:    "thousands separator",
			comment: "Service Commission: $1,250.50",
			wantOK:  true,
			service: "1250.5", product: "0", tip: "0",
		},
		{
			name:    "free text",
			comment: "paid in cash on friday",
			wantOK:  false,
			service: "0", product: "0", tip: "0",
		},
		{
			name:    "empty",
			comment: "   ",
			wantOK:  false,
			service: "0", product: "0", tip: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := services.ParseLegacyCommissionComment(tt.comment)
			assert.Equal(t, tt.wantOK, ok)
			assertMoney(t, tt.service, got.Service)
			assertMoney(t, tt.product, got.Product)
			assertMoney(t, tt.tip, got.Tip)
		})
	}
}

func TestFormatLegacyCommissionComment_RoundTrip(t *testing.T) {
	b := domain.CommissionBreakdown{Service: dec("70"), Product: dec("26.85"), Tip: dec("-5.5")}

	comment := services.FormatLegacyCommissionComment(b)
	assert.Equal(t, "Service Commission: $70.00, Product Commission: $26.85, Tip: -$5.50", comment)

	parsed, ok := services.ParseLegacyCommissionComment(comment)
	require.True(t, ok)
	assertMoney(t, "70", parsed.Service)
	assertMoney(t, "26.85", parsed.Product)
	assertMoney(t, "-5.5", parsed.Tip)
}

func TestCommissionBreakdownOf(t *testing.T) {
	typed := domain.Expense{Amount: dec("9"), Comment: "Tip: $1", Breakdown: &domain.CommissionBreakdown{Product: dec("9")}}
	legacy := domain.Expense{Amount: dec("9"), Comment: "Tip: $1"}
	bare := domain.Expense{Amount: dec("9")}

	assertMoney(t, "9", services.CommissionBreakdownOf(typed).Product)
	assertMoney(t, "1", services.CommissionBreakdownOf(legacy).Tip)
	assertMoney(t, "0", services.CommissionBreakdownOf(legacy).Service)
	assertMoney(t, "9", services.CommissionBreakdownOf(bare).Service)
}
