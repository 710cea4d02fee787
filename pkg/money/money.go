// Package money provides fixed-point currency arithmetic for order pricing.
// Every Amount renders with exactly two decimal places; intermediate values
// keep full precision until a RoundCents call.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Amount struct {
	dec decimal.Decimal
}

func Zero() Amount {
	return Amount{}
}

func FromFloat(value float64) Amount {
	return Amount{dec: decimal.NewFromFloat(value)}
}

func FromString(value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	return Amount{dec: d}, nil
}

// MustFromString is for fixed literals in tests and configuration defaults.
func MustFromString(value string) Amount {
	a, err := FromString(value)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Add(b Amount) Amount {
	return Amount{dec: a.dec.Add(b.dec)}
}

func (a Amount) Sub(b Amount) Amount {
	return Amount{dec: a.dec.Sub(b.dec)}
}

func (a Amount) MulInt(n int) Amount {
	return Amount{dec: a.dec.Mul(decimal.NewFromInt(int64(n)))}
}

// MulRate applies a fractional rate (e.g. a promo discount) without rounding.
func (a Amount) MulRate(rate decimal.Decimal) Amount {
	return Amount{dec: a.dec.Mul(rate)}
}

// RoundCents rounds half away from zero to two decimal places.
func (a Amount) RoundCents() Amount {
	return Amount{dec: a.dec.Round(2)}
}

func (a Amount) IsZero() bool {
	return a.dec.IsZero()
}

func (a Amount) IsNegative() bool {
	return a.dec.IsNegative()
}

func (a Amount) Equal(b Amount) bool {
	return a.dec.Equal(b.dec)
}

// String renders the amount with exactly two decimal places.
func (a Amount) String() string {
	return a.dec.StringFixed(2)
}

// MarshalJSON emits the amount as a 2-decimal string, never a float.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	parsed, err := FromString(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
