package domain

import (
	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits a price is stored with.
const PriceScale = 2

// Price is a monetary amount held at cent precision. It is stored as a
// decimal column and transmitted as a fixed two-decimal string.
type Price struct {
	decimal.Decimal
}

// NewPrice rounds d to cents.
func NewPrice(d decimal.Decimal) Price {
	return Price{d.Round(PriceScale)}
}

// MustPrice parses s and panics on malformed input. Meant for fixtures and tests.
func MustPrice(s string) Price {
	return NewPrice(decimal.RequireFromString(s))
}

// String returns the price with exactly two fractional digits.
func (p Price) String() string {
	return p.StringFixed(PriceScale)
}

// MarshalJSON encodes the price as a quoted fixed-point string, e.g. "100.50".
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}
