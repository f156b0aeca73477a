// internal/domain/amount.go
package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Amount is a monetary quantity as reported by the server. Backends have
// historically sent amounts as numbers, numeric strings, or garbage; an
// Amount therefore coerces whatever arrives into a decimal and falls back
// to zero when the value is not numeric, so downstream aggregation never
// sees a NaN-equivalent.
type Amount struct {
	decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// NewAmount wraps a decimal as an Amount.
func NewAmount(d decimal.Decimal) Amount { return Amount{d} }

// AmountFromFloat builds an Amount from a float64.
func AmountFromFloat(f float64) Amount { return Amount{decimal.NewFromFloat(f)} }

// UnmarshalJSON coerces numbers, numeric strings, null and malformed
// values. Anything unparsable becomes zero rather than an error.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = d
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// MarshalJSON emits the plain decimal representation.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}
