// Package drip simulates the long-run, after-tax total return of holding a
// single security while reinvesting its dividends.
//
// The simulation replays a price and dividend history day by day:
//   - Dividends are credited to a cash buffer, net of withholding tax.
//   - Whole shares are bought from the buffer whenever it can afford them,
//     commissions included.
//   - A monthly account fee is deducted from the buffer, waived up to the
//     commissions already paid that month.
//   - Year over year position values are recorded to compute an average
//     annual return.
//
// Market data is supplied by the caller as a MarketData value, typically
// fetched by one of the provider packages (eodhd, dividendcom) or decoded from
// a JSONL file. Nothing is shared between two simulations.
package drip
