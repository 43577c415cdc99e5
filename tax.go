package drip

import "github.com/shopspring/decimal"

// DefaultTaxRate is the US withholding tax on dividends paid to non-residents.
var DefaultTaxRate = decimal.RequireFromString("0.1")

// WithholdingTax returns the tax withheld on a dividend payment at DefaultTaxRate.
func WithholdingTax(amount decimal.Decimal) decimal.Decimal { return Tax(DefaultTaxRate, amount) }

// Tax returns the tax withheld on a dividend payment for a flat rate.
func Tax(rate, amount decimal.Decimal) decimal.Decimal { return amount.Mul(rate) }
