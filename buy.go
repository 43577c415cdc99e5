package drip

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Buy returns how many whole shares 'cash' can buy at 'price', commission
// included. That is the largest n such that price×n + commission(n, price) <= cash.
//
// It returns 0 when cash or price is not positive, or when even one share is
// not affordable. A nil commission means Commission.
func Buy(cash, price decimal.Decimal, commission CommissionFunc) int64 {
	if !cash.IsPositive() || !price.IsPositive() {
		return 0
	}
	if commission == nil {
		commission = Commission
	}
	affordable := func(n int64) bool {
		cost := price.Mul(decimal.NewFromInt(n)).Add(commission(n, price))
		return !cash.Sub(cost).IsNegative()
	}
	// commissions are non-negative so n can't exceed cash/price.
	hi := int(cash.Div(price).Floor().IntPart())
	// Search the first k in [0, hi] where k+1 shares is not affordable:
	// k is then the largest affordable count.
	k := sort.Search(hi+1, func(k int) bool { return !affordable(int64(k) + 1) })
	return int64(k)
}
