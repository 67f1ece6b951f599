package domain

import "github.com/pkg/errors"

// Product is the closed set of catalog records: *Food, *Electronics and *Apparel.
// Variants share the common field block and differ in their payload and capabilities.
type Product interface {
	ID() int
	Name() string
	Price() Money
	Kind() Kind
	Description() string

	SetName(name string)
	SetPrice(price Money) error
	ApplyDiscount(pct float64)

	// Clone returns a deep copy of the record.
	Clone() Product

	common() *base
}

// base is the field block every variant embeds.
type base struct {
	id    int
	name  string
	price Money
}

func newBase(id int, name string, price Money) (base, error) {
	if err := validatePrice(price); err != nil {
		return base{}, err
	}
	return base{id: id, name: name, price: price}, nil
}

// Getters

func (b *base) ID() int {
	return b.id
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Price() Money {
	return b.price
}

func (b *base) common() *base {
	return b
}

// Mutators

func (b *base) SetName(name string) {
	b.name = name
}

// SetPrice replaces the price. A negative price fails with ErrInvalidPrice
// and the record keeps its previous price.
func (b *base) SetPrice(price Money) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	b.price = price
	return nil
}

// AssignID sets the identity of p. Ids belong to the catalog: it calls this
// once when a product is added, and nothing else should.
func AssignID(p Product, id int) {
	p.common().id = id
}

// NewDefault builds a variant of the given kind with the default payload:
// non-perishable food with 100 calories, Samsung electronics with 12 months of
// warranty, cotton apparel in size M.
func NewDefault(kind Kind, id int, name string, price Money) (Product, error) {
	switch kind {
	case KindFood:
		f, err := NewFood(id, name, price, DefaultFoodClass, DefaultCalories)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindElectronics:
		e, err := NewElectronics(id, name, price, DefaultBrand, DefaultWarrantyMonths)
		if err != nil {
			return nil, err
		}
		return e, nil
	case KindApparel:
		a, err := NewApparel(id, name, price, DefaultSize, DefaultMaterial)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, errors.Wrapf(ErrUnknownType, "%q", kind)
}

// Equal reports whether a and b are the same variant with identical fields.
func Equal(a, b Product) bool {
	if a == nil || b == nil {
		return a == b
	}
	ca, cb := a.common(), b.common()
	if ca.id != cb.id || ca.name != cb.name || !ca.price.Equals(cb.price) {
		return false
	}
	switch x := a.(type) {
	case *Food:
		y, ok := b.(*Food)
		return ok && x.class == y.class && x.calories == y.calories
	case *Electronics:
		y, ok := b.(*Electronics)
		return ok && x.brand == y.brand && x.warrantyMonths == y.warrantyMonths
	case *Apparel:
		y, ok := b.(*Apparel)
		return ok && x.size == y.size && x.material == y.material
	}
	return false
}

// Validation helpers

func validatePrice(price Money) error {
	if price.IsNegative() {
		return errors.Wrapf(ErrInvalidPrice, "got %s", price)
	}
	return nil
}
