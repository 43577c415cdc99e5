package drip

import "github.com/shopspring/decimal"

// CommissionFunc computes the brokerage commission of a single trade.
//
// Implementations must be non-negative and nondecreasing in quantity, Buy
// relies on it.
type CommissionFunc func(quantity int64, price decimal.Decimal) decimal.Decimal

var (
	minCommission      = decimal.NewFromInt(1)
	perShareCommission = decimal.RequireFromString("0.005")
	maxCommissionRate  = decimal.RequireFromString("0.01")
)

// Commission is the fixed pricing of a US stocks or ETFs buy order at
// Interactive Brokers: $0.005 per share, at least $1 and at most 1% of the
// trade value.
//
// The minimum wins over the maximum, so that a trade always costs $1 at least.
//
// See https://www.interactivebrokers.com/en/index.php?f=1590&p=stocks1
func Commission(quantity int64, price decimal.Decimal) decimal.Decimal {
	q := decimal.NewFromInt(quantity)
	perShare := q.Mul(perShareCommission)
	limit := q.Mul(price).Mul(maxCommissionRate)
	return decimal.Max(minCommission, decimal.Min(perShare, limit))
}
