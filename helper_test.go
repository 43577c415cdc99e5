package drip

import (
	"math"
	"time"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from literals.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// weekdays sets the same price for all weekdays in [from, to].
func weekdays(m *MarketData, from, to date.Date, price string) {
	for d := from; !d.After(to); d = d.Add(1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		m.AddPrice(d, D(price))
	}
}

// flat returns a market data trading at 'price' every weekday of 'year', plus
// the first weekday of the next year to anchor the end of the simulation.
func flat(year int, price string) *MarketData {
	m := NewMarketData("FLAT", "USD")
	weekdays(m, date.New(year, 1, 1), date.New(year+1, 1, 7), price)
	return m
}

// noFee returns default params without monthly fee.
func noFee(investment string, from, to int) Params {
	p := DefaultParams()
	p.Investment = D(investment)
	p.MonthlyFee = decimal.Zero
	p.StartYear, p.EndYear = from, to
	return p
}

// near reports whether two percentages are equal up to percentPlaces.
func near(p, q Percent) bool {
	return math.Abs(float64(p-q)) < math.Pow10(-percentPlaces)
}
