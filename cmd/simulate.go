package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/drip"
	"github.com/etnz/drip/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	investment string
	start, end int
	fee        string
	tax        string
	provider   string
	data       string
	json       bool

	out io.Writer
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulates after-tax dividend reinvestment on a security" }
func (*simulateCmd) Usage() string {
	return `dripsim simulate [-investment <amount>] [-start <year>] [-end <year>] [-fee <amount>] [-tax <rate>] [-provider <name>] [-data <file.jsonl>] [-json] <symbol>

  Invests an amount on the first trading date of the start year, then replays
  the security history until the first trading date of the end year: dividends
  are taxed, then reinvested in whole shares whenever the cash allows it,
  commissions included. A monthly fee is deducted, waived by the commissions
  paid during the month.

Usage Examples:
$ dripsim simulate -investment 20000 -start 2015 -end 2018 VTI.US
$ dripsim simulate -data vti.jsonl -json

`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	defaults := drip.DefaultParams()
	f.StringVar(&c.investment, "investment", defaults.Investment.String(), "Amount invested on the start date")
	f.IntVar(&c.start, "start", 0, "Start year. Defaults to the year after the security inception.")
	f.IntVar(&c.end, "end", 0, "End year. Defaults to the last year of the security history.")
	f.StringVar(&c.fee, "fee", defaults.MonthlyFee.String(), "Monthly account fee")
	f.StringVar(&c.tax, "tax", defaults.TaxRate.String(), "Withholding tax rate on dividends")
	f.StringVar(&c.provider, "provider", providerEodhd, "Market data provider (eodhd, dividendcom)")
	f.StringVar(&c.data, "data", "", "Market data JSONL file (see 'fetch'), instead of a provider")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON")
}

// params returns the simulation parameters from flags.
func (c *simulateCmd) params() (drip.Params, error) {
	p := drip.DefaultParams()
	p.StartYear, p.EndYear = c.start, c.end
	var err error
	if p.Investment, err = decimal.NewFromString(c.investment); err != nil {
		return p, fmt.Errorf("invalid investment %q: %w", c.investment, err)
	}
	if p.MonthlyFee, err = decimal.NewFromString(c.fee); err != nil {
		return p, fmt.Errorf("invalid fee %q: %w", c.fee, err)
	}
	if p.TaxRate, err = decimal.NewFromString(c.tax); err != nil {
		return p, fmt.Errorf("invalid tax rate %q: %w", c.tax, err)
	}
	return p, nil
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 || (f.NArg() == 0 && c.data == "") {
		fmt.Fprintln(os.Stderr, "Error: expected a single security symbol, or -data")
		return subcommands.ExitUsageError
	}
	p, err := c.params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	m, err := loadMarketData(ctx, log, c.provider, c.data, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load market data: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if p, err = p.Resolve(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, drip.ErrInvalidParameter) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	report, err := drip.NewSimulator(log).Run(m, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, drip.ErrInvalidParameter) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	out := stdout(c.out)
	if c.json {
		data, err := report.MarshalJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(out, "%s\n", data)
		return subcommands.ExitSuccess
	}
	printMarkdown(out, renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
