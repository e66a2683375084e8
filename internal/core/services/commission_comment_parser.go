package services

import (
	"regexp"
	"strings"

	"github.com/SscSPs/reconciliation_engine/internal/core/domain"
	"github.com/SscSPs/reconciliation_engine/internal/utils"
	"github.com/shopspring/decimal"
)

// Legacy commission expenses carry their split in the comment, e.g.
// "Service Commission: $70.00, Product Commission: $26.85, Tip: $0.00".
// Each segment is optional and may appear in any order.
const legacyAmountPattern = `\s*:\s*(-?)\s*\$?\s*(-?\d[\d,]*(?:\.\d+)?)`

var (
	legacyServiceRe = regexp.MustCompile(`(?i)service\s+commission` + legacyAmountPattern)
	legacyProductRe = regexp.MustCompile(`(?i)product\s+commission` + legacyAmountPattern)
	legacyTipRe     = regexp.MustCompile(`(?i)\btips?` + legacyAmountPattern)
)

// ParseLegacyCommissionComment reads the three labelled amounts out of a legacy comment.
// ok is false when none of them is present, in which case the caller applies its fallback.
func ParseLegacyCommissionComment(comment string) (breakdown domain.CommissionBreakdown, ok bool) {
	if strings.TrimSpace(comment) == "" {
		return breakdown, false
	}
	var found bool
	if v, hit := matchAmount(legacyServiceRe, comment); hit {
		breakdown.Service = v
		found = true
	}
	if v, hit := matchAmount(legacyProductRe, comment); hit {
		breakdown.Product = v
		found = true
	}
	if v, hit := matchAmount(legacyTipRe, comment); hit {
		breakdown.Tip = v
		found = true
	}
	return breakdown, found
}

// FormatLegacyCommissionComment writes a breakdown in the comment format older screens
// display. ParseLegacyCommissionComment reads it back unchanged.
func FormatLegacyCommissionComment(b domain.CommissionBreakdown) string {
	return "Service Commission: " + utils.FormatMoney(b.Service) +
		", Product Commission: " + utils.FormatMoney(b.Product) +
		", Tip: " + utils.FormatMoney(b.Tip)
}

func matchAmount(re *regexp.Regexp, s string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(m[1] + strings.ReplaceAll(m[2], ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// CommissionBreakdownOf returns the split of a commission expense: the typed breakdown when
// the record has one, the parsed legacy comment otherwise, and the whole amount as service
// commission when neither is available.
func CommissionBreakdownOf(e domain.Expense) domain.CommissionBreakdown {
	if e.Breakdown != nil {
		return *e.Breakdown
	}
	if b, ok := ParseLegacyCommissionComment(e.Comment); ok {
		return b
	}
	return domain.CommissionBreakdown{Service: e.Amount}
}
