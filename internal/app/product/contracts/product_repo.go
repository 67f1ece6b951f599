package contracts

import (
	domain "github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// ProductRepo is the write side of the catalog as the use cases see it.
// repo.Catalog satisfies it.
type ProductRepo interface {
	Add(p domain.Product) int
	GetByID(id int) (domain.Product, error)
	GetAll() []domain.Product
	Update(p domain.Product) error
	Delete(id int) error
	SortBy(cmp domain.Comparator)
	Filter(pred domain.Predicate) []domain.Product
	ApplyDiscountToFood(items []domain.Product, pct float64) int

	// Replace installs a decoded collection as the whole catalog.
	Replace(items []domain.Product) error

	DomainEvents() []domain.DomainEvent
	ClearEvents()
}
