package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission rules are stored as JSON documents; a nil slice is SQL NULL.

// Professional is a row of the professionals table.
type Professional struct {
	ProfessionalID           string `db:"professional_id"`
	LocationID               string `db:"location_id"`
	Name                     string `db:"name"`
	DefaultProductCommission []byte `db:"default_product_commission"`
	ProductCommissions       []byte `db:"product_commissions"`
}

// Product is a row of the products table.
type Product struct {
	ProductID         string          `db:"product_id"`
	Name              string          `db:"name"`
	PurchaseCost      decimal.Decimal `db:"purchase_cost"`
	DefaultCommission []byte          `db:"default_commission"`
}

// AdminCommission is a row of the admin_commissions table.
type AdminCommission struct {
	AdminID     string `db:"admin_id"`
	AdminName   string `db:"admin_name"`
	LocationID  string `db:"location_id"`
	Year        int    `db:"year"`
	Month       int    `db:"month"`
	ServiceRule []byte `db:"service_rule"`
	ProductRule []byte `db:"product_rule"`
}

// Override is a row of the monthly_overrides table. Document holds the frozen figures.
type Override struct {
	LocationID string    `db:"location_id"`
	Year       int       `db:"year"`
	Month      int       `db:"month"`
	Document   []byte    `db:"document"`
	UpdatedAt  time.Time `db:"updated_at"`
	UpdatedBy  string    `db:"updated_by"`
}
