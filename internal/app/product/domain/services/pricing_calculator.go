package services

import (
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// PricingCalculator is a domain service for price figures that span variants.
// Domain services are used when business logic doesn't naturally fit within a single record.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// SpecialDiscount returns the special discount granted by a Discountable product,
// and zero for variants without the capability.
func (pc *PricingCalculator) SpecialDiscount(p domain.Product) domain.Money {
	d, _ := domain.SpecialDiscountOf(p)
	return d
}

// EffectivePrice is the price after the special discount.
func (pc *PricingCalculator) EffectivePrice(p domain.Product) domain.Money {
	return p.Price().Subtract(pc.SpecialDiscount(p))
}

// Totals summarizes a collection of products.
type Totals struct {
	Count          int
	ListPrice      domain.Money
	SpecialSavings domain.Money
	EffectivePrice domain.Money
}

// CalculateTotals sums list prices and special discounts over items.
func (pc *PricingCalculator) CalculateTotals(items []domain.Product) Totals {
	t := Totals{
		ListPrice:      domain.Zero(),
		SpecialSavings: domain.Zero(),
	}
	for _, p := range items {
		t.Count++
		t.ListPrice = t.ListPrice.Add(p.Price())
		t.SpecialSavings = t.SpecialSavings.Add(pc.SpecialDiscount(p))
	}
	t.EffectivePrice = t.ListPrice.Subtract(t.SpecialSavings)
	return t
}
