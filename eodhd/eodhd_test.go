package eodhd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/eod/VTI.US", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_token") != "key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[
			{"date":"2019-01-02","open":124.1,"close":126.7,"adjusted_close":115.2},
			{"date":"2019-03-26","open":143.0,"close":143.5,"adjusted_close":131.5}
		]`))
	})
	mux.HandleFunc("/div/VTI.US", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date":"2019-03-22","paymentDate":"2019-03-26","value":0.3031,"unadjustedValue":0.6062,"currency":"USD"},
			{"date":"1990-06-01","paymentDate":"0000-00-00","value":0.1,"currency":"USD"}
		]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newTestServer(t)
	c := &Client{APIKey: "key", BaseURL: srv.URL, HTTP: srv.Client()}

	m, err := c.Fetch(context.Background(), "VTI.US", date.Date{}, date.Date{})
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if m.Symbol != "VTI.US" || m.Currency != "USD" {
		t.Errorf("Fetch() = %q in %q want VTI.US in USD", m.Symbol, m.Currency)
	}
	if m.Prices.Len() != 2 {
		t.Errorf("Fetch() returned %d prices want 2", m.Prices.Len())
	}
	if p, ok := m.Prices.Get(date.New(2019, 3, 26)); !ok || !p.Equal(decimal.RequireFromString("143.5")) {
		t.Errorf("price on 2019-03-26 = %v, %v want 143.5 (close)", p, ok)
	}
	if d, ok := m.Dividends.Get(date.New(2019, 3, 26)); !ok || !d.Equal(decimal.RequireFromString("0.6062")) {
		t.Errorf("dividend on 2019-03-26 = %v, %v want 0.6062 (unadjusted, on payment date)", d, ok)
	}
	if _, ok := m.Dividends.Get(date.New(1990, 6, 1)); !ok {
		t.Errorf("dividend without payment date not kept on its ex-date")
	}
}

func TestFetchUnauthorized(t *testing.T) {
	srv := newTestServer(t)
	c := &Client{APIKey: "wrong", BaseURL: srv.URL, HTTP: srv.Client()}
	if _, err := c.Fetch(context.Background(), "VTI.US", date.Date{}, date.Date{}); err == nil {
		t.Errorf("Fetch() with a wrong api key expected an error")
	}
}

func TestAddr(t *testing.T) {
	c := &Client{APIKey: "demo", BaseURL: DefaultBaseURL}
	got := c.addr("eod", "MCD.US", date.New(2024, 1, 1), date.New(2024, 2, 1))
	want := "https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json&from=2024-01-01&to=2024-02-01"
	if got != want {
		t.Errorf("addr() = %q want %q", got, want)
	}
}
