package drip

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 1.5 means 1.5%.
type Percent float64

// percentPlaces is the number of decimal places a Percent is significant to.
const percentPlaces = 4

// Decimal returns the percentage rounded to percentPlaces, 1.5% is 1.5.
func (p Percent) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Round(percentPlaces)
}

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString is like String with an explicit sign; it returns "-" for zero.
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
