package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/etnz/drip"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// commissionCmd prints the commission of a trade.
type commissionCmd struct {
	out io.Writer
}

func (*commissionCmd) Name() string     { return "commission" }
func (*commissionCmd) Synopsis() string { return "computes the brokerage commission of a trade" }
func (*commissionCmd) Usage() string {
	return `dripsim commission <quantity> <price>

  Prints the commission of buying quantity shares at price:
  $0.005 per share, at least $1, at most 1% of the trade value.

`
}

func (c *commissionCmd) SetFlags(f *flag.FlagSet) {}

func (c *commissionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected a quantity and a price")
		return subcommands.ExitUsageError
	}
	quantity, err := strconv.ParseInt(f.Arg(0), 10, 64)
	if err != nil || quantity < 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid quantity %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(f.Arg(1))
	if err != nil || !price.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}
	fmt.Fprintln(stdout(c.out), drip.Commission(quantity, price))
	return subcommands.ExitSuccess
}
