package drip

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every error caused by simulation parameters.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrInvalidMarketData is wrapped by every error caused by inconsistent market data.
var ErrInvalidMarketData = errors.New("invalid market data")

// DataGapError reports a year that has no trading date in the price history.
//
// The simulation needs the first trading date of its start and end years as
// anchors, and cannot proceed without them.
type DataGapError struct {
	Year int
}

func (e *DataGapError) Error() string {
	return fmt.Sprintf("security price history doesn't have year %d", e.Year)
}
