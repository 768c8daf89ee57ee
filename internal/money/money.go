// Package money represents currency values as integer minor units
// (paise, cents) so settlement arithmetic never accumulates float error.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places of the modeled currency.
const Places = 2

// Epsilon is one minor unit. Balances and transfers at or below it are
// treated as settled.
const Epsilon Amount = 1

var (
	ErrInvalidAmount = errors.New("invalid money amount")
)

// maxMajor keeps FromFloat inside int64 range once scaled to minor units.
const maxMajor = 9e16

// Amount is a signed quantity of minor currency units.
type Amount int64

// FromFloat converts a major-unit value such as 12.345 into minor units,
// rounding half away from zero. Negative values are rejected.
func FromFloat(major float64) (Amount, error) {
	if math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, ErrInvalidAmount
	}
	if major < 0 {
		return 0, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	if major > maxMajor {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return FromDecimal(decimal.NewFromFloat(major)), nil
}

// FromDecimal rounds d half away from zero to minor-unit precision.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Round(Places).Shift(Places).IntPart())
}

// Add returns a+b, or ErrInvalidAmount if the sum leaves int64 range.
func Add(a, b Amount) (Amount, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %s + %s overflows", ErrInvalidAmount, a, b)
	}
	return sum, nil
}

// Decimal returns the exact major-unit value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Places)
}

// Float64 returns the major-unit value for display and wire formats.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// Abs returns the magnitude of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// IsZero reports whether a is within Epsilon of zero.
func (a Amount) IsZero() bool {
	return a.Abs() <= Epsilon
}

// String formats a as "-123.45" without a currency symbol.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Places)
}
