package models

import "github.com/shopspring/decimal"

// NullDecimal is a nullable money column.
type NullDecimal = decimal.NullDecimal
