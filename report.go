package drip

import (
	"math"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// AnnualReturn is the change of the position value over a calendar year.
//
// Start is valued at the first trading date of the year, End at the last
// trading date of the year (or the simulation start and end dates).
type AnnualReturn struct {
	Year       int
	Start, End decimal.Decimal
}

// Factor returns End/Start.
func (a AnnualReturn) Factor() decimal.Decimal { return a.End.Div(a.Start) }

// Return returns the annual return as a percentage.
func (a AnnualReturn) Return() Percent {
	return Percent(a.Factor().Sub(decimal.NewFromInt(1)).Shift(2).InexactFloat64())
}

// Report holds the outcome of a simulation.
type Report struct {
	Symbol   string
	Currency string
	From, To date.Date // start and end anchor dates

	Investment    decimal.Decimal
	InitialShares int64
	InitialPrice  decimal.Decimal
	FinalShares   int64
	FinalPrice    decimal.Decimal
	Buffer        decimal.Decimal // uninvested cash at the end

	Dividends   decimal.Decimal // dividends received, net of taxes
	Taxes       decimal.Decimal // withholding taxes paid on dividends
	Commissions decimal.Decimal // all commissions, including the initial buy
	Fees        decimal.Decimal // monthly fees actually deducted

	Annual []AnnualReturn // in chronological order
}

// M returns v as Money in the report currency.
func (r *Report) M(v decimal.Decimal) Money { return M(v, r.Currency) }

// InitialTotal returns the value of the initial position.
func (r *Report) InitialTotal() decimal.Decimal {
	return r.InitialPrice.Mul(decimal.NewFromInt(r.InitialShares))
}

// FinalTotal returns the value of the final position.
func (r *Report) FinalTotal() decimal.Decimal {
	return r.FinalPrice.Mul(decimal.NewFromInt(r.FinalShares))
}

// CapitalAppreciation returns the change in value of the position.
func (r *Report) CapitalAppreciation() decimal.Decimal {
	return r.FinalTotal().Sub(r.InitialTotal())
}

// CapitalGains returns the capital appreciation plus the remaining buffer.
func (r *Report) CapitalGains() decimal.Decimal {
	return r.CapitalAppreciation().Add(r.Buffer)
}

// CapitalGainsPercent returns the capital gains relative to the initial total.
func (r *Report) CapitalGainsPercent() Percent {
	initial := r.InitialTotal()
	if initial.IsZero() {
		return 0
	}
	return Percent(r.CapitalGains().Div(initial).Shift(2).InexactFloat64())
}

// Factors returns the annual return factors in chronological order.
func (r *Report) Factors() []decimal.Decimal {
	factors := make([]decimal.Decimal, 0, len(r.Annual))
	for _, a := range r.Annual {
		factors = append(factors, a.Factor())
	}
	return factors
}

// AverageAnnualReturn returns the annualized return over the simulated years.
// A year without any trading date records no factor but still counts.
// It returns false if no full year was simulated.
func (r *Report) AverageAnnualReturn() (Percent, bool) {
	return AnnualizedReturn(r.Factors(), r.To.Year()-r.From.Year())
}

// AnnualizedReturn returns the product of yearly return factors raised to
// 1/years, minus one, as a percentage. It returns false if there are no
// factors or no years.
func AnnualizedReturn(factors []decimal.Decimal, years int) (Percent, bool) {
	if len(factors) == 0 || years <= 0 {
		return 0, false
	}
	x := make([]float64, len(factors))
	for i, f := range factors {
		x[i] = f.InexactFloat64()
	}
	return Percent((math.Pow(floats.Prod(x), 1/float64(years)) - 1) * 100), true
}

// MarshalJSON encodes the report with a stable field order, amounts rounded
// to the currency fraction.
func (r *Report) MarshalJSON() ([]byte, error) {
	money := func(v decimal.Decimal) Money { return r.M(v) }

	var w jsonObjectWriter
	w.Append("symbol", r.Symbol)
	w.Optional("currency", r.Currency)
	w.Append("from", r.From)
	w.Append("to", r.To)
	w.Append("investment", money(r.Investment))
	w.Append("initialShares", r.InitialShares)
	w.Append("initialTotal", money(r.InitialTotal()))
	w.Append("finalShares", r.FinalShares)
	w.Append("finalTotal", money(r.FinalTotal()))
	w.Append("capitalAppreciation", money(r.CapitalAppreciation()))
	w.Append("buffer", money(r.Buffer))
	w.Append("capitalGains", money(r.CapitalGains()))
	w.Append("capitalGainsPercent", r.CapitalGainsPercent().Decimal())
	if avg, ok := r.AverageAnnualReturn(); ok {
		w.Append("averageAnnualReturn", avg.Decimal())
	}
	w.Append("dividends", money(r.Dividends))
	w.Append("taxes", money(r.Taxes))
	w.Append("commissions", money(r.Commissions))
	w.Append("fees", money(r.Fees))

	annual := make([]jsonAnnualReturn, 0, len(r.Annual))
	for _, a := range r.Annual {
		annual = append(annual, jsonAnnualReturn{
			Year:   a.Year,
			Start:  money(a.Start),
			End:    money(a.End),
			Return: a.Return().Decimal(),
		})
	}
	w.Append("annual", annual)
	return w.MarshalJSON()
}

type jsonAnnualReturn struct {
	Year   int             `json:"year"`
	Start  Money           `json:"start"`
	End    Money           `json:"end"`
	Return decimal.Decimal `json:"return"`
}
