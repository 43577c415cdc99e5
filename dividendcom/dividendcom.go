// Package dividendcom fetches price and dividend payout histories from
// dividend.com.
//
// dividend.com has no documented API: the security page is found through the
// search redirect, then its charts data are read as JSON.
package dividendcom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/httpcache"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is dividend.com's home.
const DefaultBaseURL = "https://www.dividend.com"

// seriesPath selects the data points of the first chart series.
const seriesPath = "$.series[0].data"

// Client fetches histories from dividend.com.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a daily disk cache.
func New(log zerolog.Logger) *Client {
	return &Client{BaseURL: DefaultBaseURL, HTTP: httpcache.Daily(log)}
}

// Fetch returns the price history and the dividend payouts of a symbol.
// Dividends are recorded on their pay date.
func (c *Client) Fetch(ctx context.Context, symbol string) (*drip.MarketData, error) {
	base, err := c.search(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("cannot find %q on dividend.com: %w", symbol, err)
	}
	m := drip.NewMarketData(symbol, "USD")
	if err := c.fetchPayouts(ctx, base, m); err != nil {
		return nil, fmt.Errorf("cannot fetch %q payout history: %w", symbol, err)
	}
	if err := c.fetchPrices(ctx, base, m); err != nil {
		return nil, fmt.Errorf("cannot fetch %q price history: %w", symbol, err)
	}
	return m, nil
}

// search returns the security page url, where the search redirects to.
func (c *Client) search(ctx context.Context, symbol string) (*url.URL, error) {
	addr := c.BaseURL + "/search?q=" + url.QueryEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	client := *c.HTTP
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	loc, err := resp.Location()
	if err != nil {
		return nil, fmt.Errorf("search did not redirect (%s): %w", resp.Status, err)
	}
	return loc, nil
}

// series fetches a chart data file and returns its first series' data points.
func (c *Client) series(ctx context.Context, base *url.URL, file string) ([]any, error) {
	addr := base.JoinPath(file).String()
	body, err := httpcache.Get(ctx, c.HTTP, addr)
	if err != nil {
		return nil, err
	}
	// numbers are kept as json.Number, to be read as exact decimals.
	var jobj any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid json in %s: %w", file, err)
	}
	jval, err := jsonpath.Get(seriesPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("error reading %q in %s: %w", seriesPath, file, err)
	}
	points, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q in %s is not a list: %v", seriesPath, file, jval)
	}
	return points, nil
}

// fetchPayouts reads payouthistory.json:
//
//	{"series":[{"data":[{"y":0.6062,"parts":{"Pay Date":"2019-03-26", ...}}, ...]}]}
func (c *Client) fetchPayouts(ctx context.Context, base *url.URL, m *drip.MarketData) error {
	points, err := c.series(ctx, base, "payouthistory.json")
	if err != nil {
		return err
	}
	for _, p := range points {
		payDate, err := jsonpath.Get(`$.parts["Pay Date"]`, p)
		if err != nil {
			return fmt.Errorf("payout without pay date: %v", p)
		}
		s, _ := payDate.(string)
		on, err := date.Parse(s)
		if err != nil {
			return err
		}
		amount, err := number(p, "$.y")
		if err != nil {
			return err
		}
		m.AddDividend(on, amount)
	}
	return nil
}

// fetchPrices reads yieldhistory.json, where x is a timestamp in milliseconds:
//
//	{"series":[{"data":[{"x":1546387200000,"y":126.7}, ...]}]}
func (c *Client) fetchPrices(ctx context.Context, base *url.URL, m *drip.MarketData) error {
	points, err := c.series(ctx, base, "yieldhistory.json")
	if err != nil {
		return err
	}
	for _, p := range points {
		ms, err := number(p, "$.x")
		if err != nil {
			return err
		}
		price, err := number(p, "$.y")
		if err != nil {
			return err
		}
		on := date.FromTime(time.UnixMilli(ms.IntPart()).UTC())
		m.AddPrice(on, price)
	}
	return nil
}

var errNotANumber = errors.New("not a number")

// number reads a json number at path in v.
func number(v any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cannot read %q in %v: %w", path, v, err)
	}
	switch n := jval.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case string:
		if _, err := strconv.ParseFloat(n, 64); err == nil {
			return decimal.NewFromString(n)
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%q in %v: %w", path, v, errNotANumber)
}
