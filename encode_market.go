package drip

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Market data is persisted as JSONL so that a fetched history stays
// human-readable and git-friendly:
//
//	{"symbol":"VTI","currency":"USD"}
//	{"on":"2019-01-02","price":"126.7"}
//	{"on":"2019-03-26","price":"143.5","dividend":"0.6062"}
//
// The first line describes the security, every other line is a day.

const attrOn = "on"

// EncodeMarketData writes m in JSONL format.
func EncodeMarketData(w io.Writer, m *MarketData) error {
	var header jsonObjectWriter
	header.Append("symbol", m.Symbol)
	header.Optional("currency", m.Currency)
	if err := writeLine(w, &header); err != nil {
		return err
	}

	for on := range date.Days(&m.Prices, &m.Dividends) {
		var line jsonObjectWriter
		line.Append(attrOn, on)
		if price, ok := m.Prices.Get(on); ok {
			line.Append("price", price)
		}
		if amount, ok := m.Dividends.Get(on); ok {
			line.Append("dividend", amount)
		}
		if err := writeLine(w, &line); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, o *jsonObjectWriter) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// DecodeMarketData reads market data in JSONL format.
// filename is for error message only.
func DecodeMarketData(filename string, r io.Reader) (*MarketData, error) {
	type jheader struct {
		Symbol   string `json:"symbol"`
		Currency string `json:"currency"`
	}
	type jday struct {
		On       *date.Date       `json:"on"`
		Price    *decimal.Decimal `json:"price"`
		Dividend *decimal.Decimal `json:"dividend"`
	}

	var m *MarketData
	scanner := bufio.NewScanner(r)
	for i := 1; scanner.Scan(); i++ {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if m == nil {
			var h jheader
			if err := json.Unmarshal(line, &h); err != nil {
				return nil, fmt.Errorf("format error in %q on line %d: %w", filename, i, err)
			}
			if h.Symbol == "" {
				return nil, fmt.Errorf("format error in %q on line %d: missing symbol", filename, i)
			}
			m = NewMarketData(h.Symbol, h.Currency)
			continue
		}
		var d jday
		if err := json.Unmarshal(line, &d); err != nil {
			return nil, fmt.Errorf("format error in %q on line %d: %w", filename, i, err)
		}
		if d.On == nil {
			return nil, fmt.Errorf("format error in %q on line %d: missing %q", filename, i, attrOn)
		}
		if d.Price != nil {
			m.AddPrice(*d.On, *d.Price)
		}
		if d.Dividend != nil {
			m.AddDividend(*d.On, *d.Dividend)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", filename, err)
	}
	if m == nil {
		return nil, fmt.Errorf("format error in %q: empty file", filename)
	}
	return m, nil
}
