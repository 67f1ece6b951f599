package domain

import (
	"cmp"
	"strings"
)

// Comparator is a total order over products: negative when a sorts before b.
type Comparator func(a, b Product) int

// Predicate selects products.
type Predicate func(p Product) bool

// ByID is the natural order.
func ByID(a, b Product) int {
	return cmp.Compare(a.ID(), b.ID())
}

// ByName orders by name, case-sensitive and lexicographic.
func ByName(a, b Product) int {
	return strings.Compare(a.Name(), b.Name())
}

// ByPrice orders by ascending price.
func ByPrice(a, b Product) int {
	return a.Price().Cmp(b.Price())
}

// PriceBelow selects products strictly cheaper than limit.
func PriceBelow(limit Money) Predicate {
	return func(p Product) bool {
		return p.Price().LessThan(limit)
	}
}

// OfKind selects products carrying the given variant tag.
func OfKind(kind Kind) Predicate {
	return func(p Product) bool {
		return p.Kind() == kind
	}
}

// And selects products matching every predicate. With no predicates it selects everything.
func And(preds ...Predicate) Predicate {
	return func(p Product) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}
