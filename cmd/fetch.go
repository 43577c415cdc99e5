package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/drip"
	"github.com/google/subcommands"
)

// fetchCmd implements the "fetch" command.
type fetchCmd struct {
	provider string
	output   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches a security history into a market data file" }
func (*fetchCmd) Usage() string {
	return `dripsim fetch [-provider <name>] [-o <file.jsonl>] <symbol>

  Fetches the full price and dividend history of a security and stores it in
  a JSONL file, to run simulations offline with 'simulate -data'.

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.provider, "provider", providerEodhd, "Market data provider (eodhd, dividendcom)")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to <symbol>.jsonl")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a single security symbol")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	output := c.output
	if output == "" {
		output = symbol + ".jsonl"
	}

	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	m, err := loadMarketData(ctx, log, c.provider, "", symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not fetch %q: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	if err := m.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening market data file %q for writing: %v\n", output, err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := drip.EncodeMarketData(file, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing market data file %q: %v\n", output, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Successfully fetched %d prices and %d dividends from %s to %s into %s\n",
		m.Prices.Len(), m.Dividends.Len(), m.Inception(), m.Last(), output)
	return subcommands.ExitSuccess
}
