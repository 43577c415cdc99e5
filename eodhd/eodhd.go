// Package eodhd fetches security market data from eodhd.com.
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/httpcache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// Client fetches end of day prices and dividends from the EODHD API.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a daily disk cache.
func New(apiKey string, log zerolog.Logger) *Client {
	return &Client{APIKey: apiKey, BaseURL: DefaultBaseURL, HTTP: httpcache.Daily(log)}
}

// addr returns the url of an endpoint for a ticker over [from, to].
func (c *Client) addr(endpoint, ticker string, from, to date.Date) string {
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.APIKey)
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	if !to.IsZero() {
		q.Set("to", to.String())
	}
	return fmt.Sprintf("%s/%s/%s?%s", c.BaseURL, endpoint, url.PathEscape(ticker), q.Encode())
}

// Fetch returns the daily close prices and the dividends of an EODHD ticker
// (typically "SYMBOL.EXCHANGECODE", e.g. "VTI.US") between from and to, both
// included. Zero dates mean the full history.
func (c *Client) Fetch(ctx context.Context, ticker string, from, to date.Date) (*drip.MarketData, error) {
	m := drip.NewMarketData(ticker, "")
	if strings.HasSuffix(ticker, ".US") {
		m.Currency = "USD"
	}
	if err := c.fetchPrices(ctx, ticker, from, to, m); err != nil {
		return nil, fmt.Errorf("cannot fetch %q prices from eodhd: %w", ticker, err)
	}
	if err := c.fetchDividends(ctx, ticker, from, to, m); err != nil {
		return nil, fmt.Errorf("cannot fetch %q dividends from eodhd: %w", ticker, err)
	}
	return m, nil
}

// fetchPrices fills the daily close prices.
func (c *Client) fetchPrices(ctx context.Context, ticker string, from, to date.Date, m *drip.MarketData) error {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]Info, 0)
	if err := httpcache.GetJSON(ctx, c.HTTP, c.addr("eod", ticker, from, to), &content); err != nil {
		return err
	}
	for _, info := range content {
		m.AddPrice(info.Date, info.Close)
	}
	return nil
}

// fetchDividends fills the dividends, on their payment date.
func (c *Client) fetchDividends(ctx context.Context, ticker string, from, to date.Date, m *drip.MarketData) error {
	// https://eodhd.com/api/div/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-29",
	//		"declarationDate": "2024-01-31",
	//		"recordDate": "2024-03-01",
	//		"paymentDate": "2024-03-15",
	//		"period": "Quarterly",
	//		"value": 1.67,
	//		"unadjustedValue": 1.67,
	//		"currency": "USD"
	//	},
	type apiDividend struct {
		Date            date.Date        `json:"date"` // ex-dividend date
		PaymentDate     string           `json:"paymentDate"`
		Value           decimal.Decimal  `json:"value"`
		UnadjustedValue *decimal.Decimal `json:"unadjustedValue"`
		Currency        string           `json:"currency"`
	}

	content := make([]apiDividend, 0)
	if err := httpcache.GetJSON(ctx, c.HTTP, c.addr("div", ticker, from, to), &content); err != nil {
		return err
	}
	for _, d := range content {
		on := d.Date
		// older entries have no payment date, or "0000-00-00".
		if paid, err := date.Parse(d.PaymentDate); err == nil && paid.Year() > 1 {
			on = paid
		}
		// close prices are not adjusted for splits, dividends must not be either.
		amount := d.Value
		if d.UnadjustedValue != nil && d.UnadjustedValue.IsPositive() {
			amount = *d.UnadjustedValue
		}
		if m.Currency == "" {
			m.Currency = d.Currency
		}
		m.AddDividend(on, amount)
	}
	return nil
}
