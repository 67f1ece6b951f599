package domain

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money represents a monetary value with precise decimal arithmetic.
// It uses decimal.Decimal internally to avoid floating-point precision issues.
// Money is immutable - all operations return new values.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates Money from an integer amount of minor units and an exponent.
// For example: NewMoney(1999, -2) represents 19.99.
func NewMoney(value int64, exp int32) Money {
	return Money{amount: decimal.New(value, exp)}
}

// NewMoneyFromDecimal creates Money from a decimal string.
// For example: "19.99", "100.0", "0.01".
func NewMoneyFromDecimal(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, errors.Wrapf(ErrFormat, "invalid decimal %q", s)
	}
	return Money{amount: d}, nil
}

// Zero returns Money representing zero.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns the difference of m and other.
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Percent returns pct percent of m. pct is on a 0-100 scale.
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(pct).Div(hundred)}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Cmp compares m and other and returns -1, 0 or +1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equals reports numeric equality, so 10 and 10.0 are equal.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with at least one fractional digit ("10.0", "19.99"),
// the notation existing catalog files were written with. Amounts are always in
// plain decimal form: 1e7 renders as "10000000.0", not "1.0E7". Readers accept
// both notations.
func (m Money) String() string {
	s := m.amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
