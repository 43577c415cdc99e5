package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/dividendcom"
	"github.com/etnz/drip/eodhd"
	"github.com/rs/zerolog"
)

const (
	providerEodhd       = "eodhd"
	providerDividendCom = "dividendcom"
)

// Providers are the names of the supported market data providers.
var Providers = []string{providerEodhd, providerDividendCom}

// loadMarketData returns the market data of symbol from a JSONL file if set,
// or from a provider.
func loadMarketData(ctx context.Context, log zerolog.Logger, provider, file, symbol string) (*drip.MarketData, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return drip.DecodeMarketData(file, f)
	}

	if symbol == "" {
		return nil, fmt.Errorf("missing security symbol")
	}
	log.Info().Str("provider", provider).Str("symbol", symbol).Msg("getting data")
	switch strings.ToLower(provider) {
	case providerEodhd:
		key := eodhdAPIKey()
		if key == "" {
			return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or %s environment variable", EnvEodhdAPIKey)
		}
		return eodhd.New(key, log).Fetch(ctx, symbol, date.Date{}, date.Date{})
	case providerDividendCom:
		return dividendcom.New(log).Fetch(ctx, symbol)
	default:
		return nil, fmt.Errorf("unknown provider %q, want one of %s", provider, strings.Join(Providers, ", "))
	}
}
