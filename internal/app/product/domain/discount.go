package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	perishableRate    = decimal.NewFromInt(15)
	nonPerishableRate = decimal.NewFromInt(5)
)

// Discountable is implemented by variants that grant a special discount.
// Variants without the capability simply do not implement it.
type Discountable interface {
	SpecialDiscount() Money
}

// SpecialDiscount is 15% of the price for perishable food and 5% otherwise.
func (f *Food) SpecialDiscount() Money {
	if f.IsPerishable() {
		return f.price.Percent(perishableRate)
	}
	return f.price.Percent(nonPerishableRate)
}

// ApplyDiscount lowers the price by pct percent (0-100 scale).
// A result below zero is clamped to zero instead of being rejected, so any
// percentage of 100 or more leaves the record with a zero price.
// +Inf behaves like any percentage above 100; NaN and -Inf leave the price as is.
func (b *base) ApplyDiscount(pct float64) {
	switch {
	case math.IsNaN(pct), math.IsInf(pct, -1):
		return
	case math.IsInf(pct, 1):
		b.price = Zero()
		return
	}
	discounted := b.price.Subtract(b.price.Percent(decimal.NewFromFloat(pct)))
	if discounted.IsNegative() {
		discounted = Zero()
	}
	b.price = discounted
}

// SpecialDiscountOf returns the special discount of p, or zero when p is not Discountable.
func SpecialDiscountOf(p Product) (Money, bool) {
	d, ok := p.(Discountable)
	if !ok {
		return Zero(), false
	}
	return d.SpecialDiscount(), true
}
