package drip

import (
	"fmt"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// MarketData holds the full available history of a single security.
//
// Prices are closing prices, a date present in Prices is a trading date.
// Dividends are amounts paid per share, on their payment date.
type MarketData struct {
	Symbol    string
	Currency  string
	Prices    date.History[decimal.Decimal]
	Dividends date.History[decimal.Decimal]
}

// NewMarketData returns an empty market data for a security.
func NewMarketData(symbol, currency string) *MarketData {
	return &MarketData{Symbol: symbol, Currency: currency}
}

// AddPrice records the closing price on a day, replacing any previous one.
func (m *MarketData) AddPrice(on date.Date, price decimal.Decimal) {
	m.Prices.Append(on, price)
}

// AddDividend records the dividend per share paid on a day, replacing any previous one.
func (m *MarketData) AddDividend(on date.Date, amount decimal.Decimal) {
	m.Dividends.Append(on, amount)
}

// Inception returns the first trading date.
func (m *MarketData) Inception() date.Date {
	on, _ := m.Prices.Earliest()
	return on
}

// Last returns the last trading date.
func (m *MarketData) Last() date.Date {
	on, _ := m.Prices.Latest()
	return on
}

// Anchor returns the first trading date of 'year' and its price.
func (m *MarketData) Anchor(year int) (date.Date, decimal.Decimal, error) {
	on, price, ok := m.Prices.FirstFrom(date.New(year, 1, 1))
	if !ok || on.Year() != year {
		return date.Date{}, decimal.Decimal{}, &DataGapError{Year: year}
	}
	return on, price, nil
}

// Validate checks that there is a price history and that all values are positive.
func (m *MarketData) Validate() error {
	if m.Prices.Len() == 0 {
		return fmt.Errorf("%w: %q has no price history", ErrInvalidMarketData, m.Symbol)
	}
	for on, price := range m.Prices.Values() {
		if !price.IsPositive() {
			return fmt.Errorf("%w: %q price on %s is not positive: %s", ErrInvalidMarketData, m.Symbol, on, price)
		}
	}
	for on, amount := range m.Dividends.Values() {
		if !amount.IsPositive() {
			return fmt.Errorf("%w: %q dividend on %s is not positive: %s", ErrInvalidMarketData, m.Symbol, on, amount)
		}
	}
	return nil
}
