package repo

import (
	"iter"

	"github.com/pkg/errors"

	domain "github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// Iterator is a restartable, finite, read-only cursor over a snapshot of the
// catalog taken when the iterator was created. Later Add, Delete or SortBy calls
// are not reflected; the products themselves are shared with the catalog.
type Iterator struct {
	items []domain.Product
	pos   int
}

func newIterator(items []domain.Product) *Iterator {
	return &Iterator{items: items}
}

// HasNext reports whether Next would return a product.
func (it *Iterator) HasNext() bool {
	return it.pos < len(it.items)
}

// Next returns the next product, or ErrExhausted once the snapshot is consumed.
func (it *Iterator) Next() (domain.Product, error) {
	if !it.HasNext() {
		return nil, errors.Wrapf(domain.ErrExhausted, "after %d items", len(it.items))
	}
	p := it.items[it.pos]
	it.pos++
	return p, nil
}

// Reset moves the cursor back to the first product.
func (it *Iterator) Reset() {
	it.pos = 0
}

// Len returns the snapshot size.
func (it *Iterator) Len() int {
	return len(it.items)
}

// All yields the whole snapshot from the start, independent of the cursor.
func (it *Iterator) All() iter.Seq[domain.Product] {
	return func(yield func(domain.Product) bool) {
		for _, p := range it.items {
			if !yield(p) {
				return
			}
		}
	}
}
