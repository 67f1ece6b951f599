package repo

import (
	"slices"

	"github.com/pkg/errors"

	domain "github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
)

// Catalog is the authoritative in-memory collection of products.
//
// Records live in an arena keyed by id; order holds the storage order that
// GetAll, Filter, ForEach and Iterate observe. Ids are assigned sequentially
// from 1 and never reused, even after deletion or replacement.
//
// Catalog is not safe for concurrent use. Persistence runs to completion
// before any other method is called.
type Catalog struct {
	items  map[int]domain.Product
	order  []int
	nextID int
	clock  clock.Clock
	events []domain.DomainEvent
}

func NewCatalog(clk clock.Clock) *Catalog {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Catalog{
		items:  make(map[int]domain.Product),
		nextID: 1,
		clock:  clk,
	}
}

// Add assigns the next id to p, appends it and returns the id.
func (c *Catalog) Add(p domain.Product) int {
	id := c.nextID
	c.nextID++
	domain.AssignID(p, id)
	c.items[id] = p
	c.order = append(c.order, id)

	c.record(&domain.ProductAddedEvent{
		ProductID: id,
		Kind:      p.Kind(),
		Name:      p.Name(),
		Price:     p.Price(),
		AddedAt:   c.clock.Now(),
	})
	return id
}

// GetByID returns the stored product or ErrProductNotFound.
func (c *Catalog) GetByID(id int) (domain.Product, error) {
	p, ok := c.items[id]
	if !ok {
		return nil, errors.Wrapf(domain.ErrProductNotFound, "id %d", id)
	}
	return p, nil
}

// GetAll returns the products in storage order. The slice is a copy:
// changing it does not change the catalog.
func (c *Catalog) GetAll() []domain.Product {
	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Update replaces the stored product that shares p's id. The previous value is
// discarded entirely, including its variant. Storage order is kept.
func (c *Catalog) Update(p domain.Product) error {
	old, ok := c.items[p.ID()]
	if !ok {
		return errors.Wrapf(domain.ErrProductNotFound, "update id %d", p.ID())
	}
	c.items[p.ID()] = p

	c.record(&domain.ProductUpdatedEvent{
		ProductID: p.ID(),
		OldKind:   old.Kind(),
		NewKind:   p.Kind(),
		OldPrice:  old.Price(),
		NewPrice:  p.Price(),
		UpdatedAt: c.clock.Now(),
	})
	return nil
}

// Delete removes the product with the given id.
func (c *Catalog) Delete(id int) error {
	if _, ok := c.items[id]; !ok {
		return errors.Wrapf(domain.ErrProductNotFound, "delete id %d", id)
	}
	delete(c.items, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}

	c.record(&domain.ProductDeletedEvent{ProductID: id, DeletedAt: c.clock.Now()})
	return nil
}

// SortBy reorders the catalog in place. Equal elements keep their relative order.
func (c *Catalog) SortBy(cmp domain.Comparator) {
	all := c.GetAll()
	slices.SortStableFunc(all, cmp)
	for i, p := range all {
		c.order[i] = p.ID()
	}
	c.record(&domain.CatalogSortedEvent{SortedAt: c.clock.Now()})
}

// Filter returns the matching products in storage order without touching the catalog.
func (c *Catalog) Filter(pred domain.Predicate) []domain.Product {
	var out []domain.Product
	for _, id := range c.order {
		if p := c.items[id]; pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// ForEach calls action on every product in storage order.
func (c *Catalog) ForEach(action func(p domain.Product)) {
	for _, id := range c.order {
		action(c.items[id])
	}
}

// ApplyDiscountToFood applies the percentage discount to the Food items of
// items and leaves every other variant untouched. It returns how many items changed.
func (c *Catalog) ApplyDiscountToFood(items []domain.Product, pct float64) int {
	foods := FilterByVariant[*domain.Food](items)
	ids := make([]int, 0, len(foods))
	for _, f := range foods {
		f.ApplyDiscount(pct)
		ids = append(ids, f.ID())
	}

	c.record(&domain.FoodDiscountAppliedEvent{
		Percentage: pct,
		ProductIDs: ids,
		AppliedAt:  c.clock.Now(),
	})
	return len(foods)
}

// Replace installs items as the entire contents of the catalog, in order.
// Duplicate ids fail with ErrDuplicateProduct and leave the catalog unchanged.
// The id counter moves past the largest installed id so ids are never reused.
func (c *Catalog) Replace(items []domain.Product) error {
	next := make(map[int]domain.Product, len(items))
	order := make([]int, 0, len(items))
	maxID := 0
	for _, p := range items {
		if _, dup := next[p.ID()]; dup {
			return errors.Wrapf(domain.ErrDuplicateProduct, "id %d", p.ID())
		}
		next[p.ID()] = p
		order = append(order, p.ID())
		maxID = max(maxID, p.ID())
	}

	c.items = next
	c.order = order
	c.nextID = max(c.nextID, maxID+1)

	c.record(&domain.CatalogReplacedEvent{
		Count:      len(order),
		NextID:     c.nextID,
		ReplacedAt: c.clock.Now(),
	})
	return nil
}

// Len returns the number of stored products.
func (c *Catalog) Len() int {
	return len(c.order)
}

// NextID returns the id the next Add will assign.
func (c *Catalog) NextID() int {
	return c.nextID
}

// Iterate returns a cursor over a snapshot of the current storage order.
func (c *Catalog) Iterate() *Iterator {
	return newIterator(c.GetAll())
}

func (c *Catalog) DomainEvents() []domain.DomainEvent {
	return c.events
}

// ClearEvents clears the accumulated domain events.
// Should be called after events have been journaled.
func (c *Catalog) ClearEvents() {
	c.events = nil
}

func (c *Catalog) record(ev domain.DomainEvent) {
	c.events = append(c.events, ev)
}

// FilterByVariant returns the items of variant T, in order. Other variants are skipped.
func FilterByVariant[T domain.Product](items []domain.Product) []T {
	var out []T
	for _, p := range items {
		if v, ok := p.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// FilterByKind is FilterByVariant driven by a runtime variant tag.
func FilterByKind(items []domain.Product, kind domain.Kind) []domain.Product {
	var out []domain.Product
	for _, p := range items {
		if p.Kind() == kind {
			out = append(out, p)
		}
	}
	return out
}
