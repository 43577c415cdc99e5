package drip

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/etnz/drip/date"
	"github.com/rs/zerolog"
)

// TestSimulateFlat invests $10,000 in a security flat at $100 for a year.
func TestSimulateFlat(t *testing.T) {
	m := flat(2020, "100")
	p := DefaultParams()
	p.StartYear, p.EndYear = 2020, 2021

	r, err := Simulate(m, p)
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	if r.InitialShares != 99 {
		t.Errorf("InitialShares = %d want 99", r.InitialShares)
	}
	if want := D("9900"); !r.InitialTotal().Equal(want) {
		t.Errorf("InitialTotal() = %s want %s", r.InitialTotal(), want)
	}
	if !r.CapitalAppreciation().IsZero() {
		t.Errorf("CapitalAppreciation() = %s want 0", r.CapitalAppreciation())
	}
	// January fee is reduced by the $1 initial commission, 11 other months cost $10.
	if want := D("119"); !r.Fees.Equal(want) {
		t.Errorf("Fees = %s want %s", r.Fees, want)
	}
	// $100 left after the initial buy.
	if want := D("-19"); !r.Buffer.Equal(want) {
		t.Errorf("Buffer = %s want %s", r.Buffer, want)
	}
	if r.From != date.New(2020, 1, 1) || r.To != date.New(2021, 1, 1) {
		t.Errorf("From, To = %v, %v want 2020-01-01, 2021-01-01", r.From, r.To)
	}
	if len(r.Annual) != 1 || !r.Annual[0].Factor().Equal(D("1")) {
		t.Errorf("Annual = %v want a single factor of 1", r.Annual)
	}
	if avg, ok := r.AverageAnnualReturn(); !ok || !near(avg, 0) {
		t.Errorf("AverageAnnualReturn() = %v, %v want 0, true", avg, ok)
	}
}

// TestSimulateDividend holds 100 shares that pay $1 per share mid-year.
func TestSimulateDividend(t *testing.T) {
	m := flat(2020, "50")
	m.AddDividend(date.New(2020, 6, 15), D("1"))

	r, err := Simulate(m, noFee("5001", 2020, 2021))
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	if r.InitialShares != 100 {
		t.Fatalf("InitialShares = %d want 100", r.InitialShares)
	}
	// $100 dividend, $10 tax: $1 + $90 in the buffer buys one share for $51.
	if want := D("90"); !r.Dividends.Equal(want) {
		t.Errorf("Dividends = %s want %s", r.Dividends, want)
	}
	if want := D("10"); !r.Taxes.Equal(want) {
		t.Errorf("Taxes = %s want %s", r.Taxes, want)
	}
	if r.FinalShares != 101 {
		t.Errorf("FinalShares = %d want 101", r.FinalShares)
	}
	if want := D("40"); !r.Buffer.Equal(want) {
		t.Errorf("Buffer = %s want %s", r.Buffer, want)
	}
	if want := D("2"); !r.Commissions.Equal(want) {
		t.Errorf("Commissions = %s want %s", r.Commissions, want)
	}
	if !r.Fees.IsZero() {
		t.Errorf("Fees = %s want 0", r.Fees)
	}
}

func TestSimulateDividendOnNonTradingDay(t *testing.T) {
	m := flat(2020, "50")
	m.AddDividend(date.New(2020, 6, 13), D("1")) // a Saturday

	r, err := Simulate(m, noFee("5001", 2020, 2021))
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	if !r.Dividends.IsZero() || r.FinalShares != 100 {
		t.Errorf("Dividends, FinalShares = %s, %d want 0, 100", r.Dividends, r.FinalShares)
	}
}

// TestCommissionWaivesMonthlyFee checks that commissions reduce the fee of
// the month they are paid in, and nothing more.
func TestCommissionWaivesMonthlyFee(t *testing.T) {
	m := flat(2020, "50")
	m.AddDividend(date.New(2020, 6, 15), D("1"))
	p := noFee("5001", 2020, 2021)
	p.MonthlyFee = D("10")

	r, err := Simulate(m, p)
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	// January and June have a $1 commission each.
	if want := D("118"); !r.Fees.Equal(want) {
		t.Errorf("Fees = %s want %s", r.Fees, want)
	}
}

// TestLargeCommissionDoesNotCarryForward buys 9995 shares for a $49.975
// commission: January's fee is waived, February's is not.
func TestLargeCommissionDoesNotCarryForward(t *testing.T) {
	m := flat(2020, "10")
	p := noFee("100000", 2020, 2021)
	p.MonthlyFee = D("10")

	r, err := Simulate(m, p)
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	if r.InitialShares != 9995 {
		t.Fatalf("InitialShares = %d want 9995", r.InitialShares)
	}
	if want := D("110"); !r.Fees.Equal(want) {
		t.Errorf("Fees = %s want %s", r.Fees, want)
	}
}

func TestSimulateAnnualReturns(t *testing.T) {
	m := NewMarketData("UP", "USD")
	weekdays(m, date.New(2020, 1, 1), date.New(2020, 6, 30), "100")
	weekdays(m, date.New(2020, 7, 1), date.New(2021, 6, 30), "110")
	weekdays(m, date.New(2021, 7, 1), date.New(2022, 1, 7), "115.5")

	r, err := Simulate(m, noFee("10000", 2020, 2022))
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	if r.To != date.New(2022, 1, 3) {
		t.Errorf("To = %v want 2022-01-03", r.To)
	}
	want := []string{"1.1", "1.05"}
	if len(r.Annual) != len(want) {
		t.Fatalf("len(Annual) = %d want %d", len(r.Annual), len(want))
	}
	for i, a := range r.Annual {
		if !a.Factor().Equal(D(want[i])) {
			t.Errorf("Annual[%d].Factor() = %s want %s", i, a.Factor(), want[i])
		}
		if a.Year != 2020+i {
			t.Errorf("Annual[%d].Year = %d want %d", i, a.Year, 2020+i)
		}
	}
	if want := D("1534.5"); !r.CapitalAppreciation().Equal(want) {
		t.Errorf("CapitalAppreciation() = %s want %s", r.CapitalAppreciation(), want)
	}
	wantAvg := Percent((math.Sqrt(1.10*1.05) - 1) * 100)
	if avg, ok := r.AverageAnnualReturn(); !ok || !near(avg, wantAvg) {
		t.Errorf("AverageAnnualReturn() = %v, %v want %v, true", avg, ok, wantAvg)
	}
}

// TestSimulateMissingYear has no trading date in 2021: 2020 and 2021 are
// recorded as a single factor, yet the return is annualized over both years.
func TestSimulateMissingYear(t *testing.T) {
	m := NewMarketData("HOLE", "USD")
	weekdays(m, date.New(2020, 1, 1), date.New(2020, 6, 30), "100")
	weekdays(m, date.New(2020, 7, 1), date.New(2020, 12, 31), "121")
	m.AddPrice(date.New(2022, 1, 3), D("121"))

	r, err := Simulate(m, noFee("10000", 2020, 2022))
	if err != nil {
		t.Fatalf("Simulate() unexpected error: %v", err)
	}
	if len(r.Annual) != 1 || !r.Annual[0].Factor().Equal(D("1.21")) {
		t.Fatalf("Annual = %v want a single 1.21 factor", r.Annual)
	}
	if avg, ok := r.AverageAnnualReturn(); !ok || !near(avg, 10) {
		t.Errorf("AverageAnnualReturn() = %v, %v want 10.00%%, true", avg, ok)
	}
}

func TestSimulateInvalidMarketData(t *testing.T) {
	m := flat(2020, "100")
	m.AddPrice(date.New(2020, 3, 2), D("0"))
	if _, err := Simulate(m, noFee("10000", 2020, 2021)); !errors.Is(err, ErrInvalidMarketData) {
		t.Errorf("Simulate() error = %v want %v", err, ErrInvalidMarketData)
	}
}

func TestSimulateDataGap(t *testing.T) {
	m := NewMarketData("GAP", "USD")
	weekdays(m, date.New(2020, 1, 1), date.New(2020, 12, 31), "100")
	weekdays(m, date.New(2022, 1, 1), date.New(2022, 12, 31), "100")

	testCases := []struct {
		from, to int
		year     int
	}{
		{2021, 2022, 2021},
		{2020, 2021, 2021},
		{2019, 2022, 2019},
	}
	for _, tc := range testCases {
		r, err := Simulate(m, noFee("10000", tc.from, tc.to))
		var gap *DataGapError
		if !errors.As(err, &gap) {
			t.Errorf("Simulate(%d, %d) error = %v want a DataGapError", tc.from, tc.to, err)
			continue
		}
		if gap.Year != tc.year {
			t.Errorf("Simulate(%d, %d) missing year = %d want %d", tc.from, tc.to, gap.Year, tc.year)
		}
		if r != nil {
			t.Errorf("Simulate(%d, %d) returned a report with an error", tc.from, tc.to)
		}
	}
}

func TestSimulateInvalidParameters(t *testing.T) {
	m := flat(2020, "100")
	testCases := []struct {
		name string
		edit func(*Params)
	}{
		{"zero investment", func(p *Params) { p.Investment = D("0") }},
		{"end before start", func(p *Params) { p.StartYear, p.EndYear = 2021, 2020 }},
		{"negative fee", func(p *Params) { p.MonthlyFee = D("-1") }},
		{"tax rate above 1", func(p *Params) { p.TaxRate = D("1.5") }},
		{"cannot buy one share", func(p *Params) { p.Investment = D("100") }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := noFee("10000", 2020, 2021)
			tc.edit(&p)
			if _, err := Simulate(m, p); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Simulate() error = %v want %v", err, ErrInvalidParameter)
			}
		})
	}
}

func TestSimulateIsIdempotent(t *testing.T) {
	m := flat(2020, "37.21")
	m.AddDividend(date.New(2020, 3, 16), D("0.41"))
	m.AddDividend(date.New(2020, 9, 15), D("0.43"))
	p := DefaultParams()
	p.StartYear, p.EndYear = 2020, 2021

	var buf bytes.Buffer
	s := NewSimulator(zerolog.New(&buf))
	r1, err := s.Run(m, p)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	r2, err := s.Run(m, p)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	j1, _ := json.Marshal(r1)
	j2, _ := json.Marshal(r2)
	if !bytes.Equal(j1, j2) {
		t.Errorf("two runs differ:\n%s\n%s", j1, j2)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"event":"dividend"`)) {
		t.Errorf("no dividend event logged")
	}
}
