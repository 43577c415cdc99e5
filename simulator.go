package drip

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Simulator replays a security history to simulate a dividend reinvestment
// plan.
//
// Progress is reported as structured log events ("start", "buy", "dividend",
// "monthly_fee", "annual_return", "end"). A Simulator holds no simulation
// state and can be reused.
type Simulator struct {
	log zerolog.Logger
}

// NewSimulator returns a Simulator logging its progress to log.
func NewSimulator(log zerolog.Logger) *Simulator {
	return &Simulator{log: log.With().Str("component", "simulator").Logger()}
}

// Simulate runs a simulation without logging.
func Simulate(m *MarketData, p Params) (*Report, error) {
	return NewSimulator(zerolog.Nop()).Run(m, p)
}

// position is the mutable state of a single run.
type position struct {
	shares int64
	buffer decimal.Decimal
}

func (p *position) value(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(p.shares))
}

// Run simulates investing p.Investment on the first trading date of
// p.StartYear, then reinvesting dividends until the first trading date of
// p.EndYear.
//
// It returns a *DataGapError if either year has no trading date, and an
// ErrInvalidMarketData error if m does not validate.
func (s *Simulator) Run(m *MarketData, p Params) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	commission := p.commission()

	start, startPrice, err := m.Anchor(p.StartYear)
	if err != nil {
		return nil, err
	}
	end, endPrice, err := m.Anchor(p.EndYear)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("event", "start").Str("symbol", m.Symbol).
		Stringer("from", start).Stringer("to", end).
		Msg("calculate total returns")

	var pos position
	pos.shares = Buy(p.Investment, startPrice, commission)
	if pos.shares == 0 {
		return nil, fmt.Errorf("%w: investment %s cannot buy a single share at %s", ErrInvalidParameter, p.Investment, startPrice)
	}
	initialCommission := commission(pos.shares, startPrice)
	pos.buffer = p.Investment.Sub(pos.value(startPrice))
	// The initial commission is paid out of the first month's fee only.
	monthlyFee := p.MonthlyFee.Sub(decimal.Max(initialCommission, decimal.Zero))

	r := &Report{
		Symbol:        m.Symbol,
		Currency:      m.Currency,
		From:          start,
		To:            end,
		Investment:    p.Investment,
		InitialShares: pos.shares,
		InitialPrice:  startPrice,
		Commissions:   initialCommission,
	}
	s.log.Info().Str("event", "buy").Stringer("date", start).
		Int64("shares", pos.shares).Stringer("price", startPrice).
		Stringer("total", pos.value(startPrice)).Stringer("buffer", pos.buffer).
		Msg("bought securities")

	curPrice := startPrice
	curYear, curMonth := start.Year(), start.Month()
	yearStart := pos.value(startPrice)

	for d := start; !d.After(end); {
		price, trading := m.Prices.Get(d)
		if !trading {
			d = d.Add(1)
			continue
		}

		if d.Year() != curYear {
			a := AnnualReturn{Year: curYear, Start: yearStart, End: pos.value(curPrice)}
			r.Annual = append(r.Annual, a)
			s.log.Info().Str("event", "annual_return").Int("year", a.Year).
				Stringer("start", a.Start).Stringer("end", a.End).
				Float64("return", float64(a.Return())).
				Msg("annual return")
			curYear = d.Year()
			yearStart = pos.value(price)
		}
		curPrice = price

		if amount, ok := m.Dividends.Get(d); ok {
			cash := amount.Mul(decimal.NewFromInt(pos.shares))
			tax := Tax(p.TaxRate, cash)
			pos.buffer = pos.buffer.Add(cash.Sub(tax))
			r.Dividends = r.Dividends.Add(cash.Sub(tax))
			r.Taxes = r.Taxes.Add(tax)
			s.log.Info().Str("event", "dividend").Stringer("date", d).
				Stringer("amount", amount).Int64("shares", pos.shares).
				Stringer("price", curPrice).Stringer("tax", tax).
				Stringer("buffer", pos.buffer).
				Msg("dividend payout")

			if n := Buy(pos.buffer, curPrice, commission); n > 0 {
				c := commission(n, curPrice)
				pos.shares += n
				pos.buffer = pos.buffer.Sub(curPrice.Mul(decimal.NewFromInt(n)).Add(c))
				monthlyFee = monthlyFee.Sub(c)
				r.Commissions = r.Commissions.Add(c)
				s.log.Info().Str("event", "buy").Stringer("date", d).
					Int64("shares", n).Stringer("price", curPrice).
					Stringer("commission", c).Stringer("buffer", pos.buffer).
					Msg("bought securities")
			}
		}

		d = d.Add(1)
		if d.Month() != curMonth {
			// Commissions can exceed the fee, but they only waive it.
			fee := decimal.Max(monthlyFee, decimal.Zero)
			pos.buffer = pos.buffer.Sub(fee)
			r.Fees = r.Fees.Add(fee)
			s.log.Info().Str("event", "monthly_fee").Stringer("date", d.Add(-1)).
				Stringer("fee", fee).Stringer("buffer", pos.buffer).
				Msg("monthly fee")
			monthlyFee = p.MonthlyFee
			curMonth = d.Month()
		}
	}

	r.FinalShares = pos.shares
	r.FinalPrice = endPrice
	r.Buffer = pos.buffer
	s.log.Info().Str("event", "end").Int64("shares", r.FinalShares).
		Stringer("total", r.FinalTotal()).Stringer("buffer", r.Buffer).
		Msg("simulation done")
	return r, nil
}
