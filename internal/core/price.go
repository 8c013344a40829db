package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a decimal quote carried with five fractional digits, the
// precision used by the upstream feeds for FX pairs. It marshals as a
// string ("1.08532") and unmarshals from either a JSON string or a
// JSON number, since the historical feed drafts emitted both.
type Price float64

// NewPrice rounds a raw float to five fractional digits.
func NewPrice(v float64) Price {
	return Price(math.Round(v*1e5) / 1e5)
}

// Float returns the price as a plain float64.
func (p Price) Float() float64 { return float64(p) }

// String formats the price with exactly five fractional digits.
func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', 5, 64)
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler, accepting both quoted and
// bare numeric forms.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing price %s: %w", string(data), err)
	}
	*p = Price(v)
	return nil
}
