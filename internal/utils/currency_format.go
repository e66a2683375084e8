package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimals shown for amounts.
const MoneyPrecision = 2

// FormatMoney renders an amount the way cashiers write it, e.g. 70 as "$70.00" and -5.5 as
// "-$5.50".
func FormatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(MoneyPrecision)
	}
	return "$" + amount.StringFixed(MoneyPrecision)
}
