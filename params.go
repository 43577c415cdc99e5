package drip

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Params are the parameters of a simulation.
type Params struct {
	Investment decimal.Decimal // amount invested on the start date
	StartYear  int             // the simulation starts on the first trading date of that year
	EndYear    int             // the simulation ends on the first trading date of that year
	MonthlyFee decimal.Decimal // account fee, waived by the commissions paid in the month
	TaxRate    decimal.Decimal // withholding tax rate on dividends
	Commission CommissionFunc  // nil means Commission
}

// DefaultParams returns the parameters of a $10000 investment in an account
// with a $10 monthly fee, a 10% dividend tax and Interactive Brokers
// commissions. Years are left unset.
func DefaultParams() Params {
	return Params{
		Investment: decimal.NewFromInt(10000),
		MonthlyFee: decimal.NewFromInt(10),
		TaxRate:    DefaultTaxRate,
		Commission: Commission,
	}
}

// Resolve returns the parameters with unset years defaulted for m: the year
// after inception, and the last year of the history. It checks that years are
// within the history.
func (p Params) Resolve(m *MarketData) (Params, error) {
	if m.Prices.Len() == 0 {
		return p, fmt.Errorf("%w: %q has no price history", ErrInvalidMarketData, m.Symbol)
	}
	first, last := m.Inception().Year(), m.Last().Year()
	if p.StartYear == 0 {
		p.StartYear = first + 1
	}
	if p.EndYear == 0 {
		p.EndYear = last
	}
	if p.StartYear < first || p.StartYear > last {
		return p, fmt.Errorf("%w: start year %d is outside of %q history [%d, %d]", ErrInvalidParameter, p.StartYear, m.Symbol, first, last)
	}
	if p.EndYear < first || p.EndYear > last {
		return p, fmt.Errorf("%w: end year %d is outside of %q history [%d, %d]", ErrInvalidParameter, p.EndYear, m.Symbol, first, last)
	}
	return p, p.validate()
}

// validate checks the parameters that do not depend on market data.
func (p Params) validate() error {
	switch {
	case !p.Investment.IsPositive():
		return fmt.Errorf("%w: investment must be positive, got %s", ErrInvalidParameter, p.Investment)
	case p.EndYear < p.StartYear:
		return fmt.Errorf("%w: end year %d is before start year %d", ErrInvalidParameter, p.EndYear, p.StartYear)
	case p.MonthlyFee.IsNegative():
		return fmt.Errorf("%w: monthly fee must not be negative, got %s", ErrInvalidParameter, p.MonthlyFee)
	case p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)):
		return fmt.Errorf("%w: tax rate must be within [0, 1], got %s", ErrInvalidParameter, p.TaxRate)
	}
	return nil
}

func (p Params) commission() CommissionFunc {
	if p.Commission == nil {
		return Commission
	}
	return p.Commission
}
