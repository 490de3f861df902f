package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrAmountPrecision = errors.New("amount must have at most two decimal places")
	ErrAmountTooLarge  = errors.New("amount is too large")
)

// maxMoney bounds amounts so that sums of many expenses and the
// percentage cross-multiplication stay far away from int64 overflow.
var maxMoney = decimal.New(1, 12)

// Exponent bounds for nonzero amounts, checked before any rescaling. Above
// maxExponent the value is at least 10 * maxMoney.
const (
	minExponent = -20
	maxExponent = 12
)

// Money is a monetary amount in minor units (cents).
//
// All arithmetic happens on the integer; decimal.Decimal is only used at the
// JSON boundary and for percentage rendering. Money can be negative when it
// represents a derived figure such as a budget's remaining amount.
type Money int64

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// Decimal returns the amount in major units as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with exactly two decimals, e.g. "12.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
// The digits come from the integer, never from a float64.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string in major units.
// Negative amounts are rejected like in MoneyFromDecimal.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	v, err := MoneyFromDecimal(d)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MoneyFromDecimal converts a major-unit decimal to Money.
// It rejects negative values and anything finer than a cent instead of
// rounding it away. The exponent is bounded before any comparison, since
// comparing or truncating a decimal like 1e-100000000 rescales it to a
// coefficient with that many digits.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if d.IsZero() {
		return 0, nil
	}
	switch exp := d.Exponent(); {
	case exp < minExponent:
		return 0, ErrAmountPrecision
	case exp > maxExponent:
		return 0, ErrAmountTooLarge
	}
	if !d.Equal(d.Truncate(2)) {
		return 0, ErrAmountPrecision
	}
	if d.GreaterThanOrEqual(maxMoney) {
		return 0, ErrAmountTooLarge
	}
	return Money(d.Shift(2).IntPart()), nil
}

// ParseMoney parses a major-unit string such as "12.34" into Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

// Add returns m + o, saturating at the int64 bounds instead of wrapping.
func (m Money) Add(o Money) Money {
	sum := m + o
	switch {
	case o > 0 && sum < m:
		return math.MaxInt64
	case o < 0 && sum > m:
		return math.MinInt64
	}
	return sum
}
