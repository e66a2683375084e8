package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept at every externally visible boundary.
const MoneyPlaces = 2

// Round2 rounds a money amount half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// DecimalOrZero dereferences an optional amount.
func DecimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// PeriodKey identifies one month of one location. An empty LocationID means all locations.
type PeriodKey struct {
	LocationID string `json:"locationID"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

// Validate checks that the key names a real calendar month.
func (k PeriodKey) Validate() error {
	if k.Month < 1 || k.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", k.Month)
	}
	if k.Year < 2000 || k.Year > 9999 {
		return fmt.Errorf("year %d is out of range", k.Year)
	}
	return nil
}

// Bounds returns the half-open [from, to) range covered by the period in loc.
func (k PeriodKey) Bounds(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(k.Year, time.Month(k.Month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// String renders the key as "2024-01@location".
func (k PeriodKey) String() string {
	loc := k.LocationID
	if loc == "" {
		loc = "*"
	}
	return fmt.Sprintf("%04d-%02d@%s", k.Year, k.Month, loc)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}
