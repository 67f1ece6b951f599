package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Default payload values, used when a format does not carry variant fields.
const (
	DefaultFoodClass      = NonPerishable
	DefaultCalories       = 100
	DefaultBrand          = BrandSamsung
	DefaultWarrantyMonths = 12
	DefaultSize           = SizeM
	DefaultMaterial       = "Algodón"
)

var (
	_ Product      = (*Food)(nil)
	_ Product      = (*Electronics)(nil)
	_ Product      = (*Apparel)(nil)
	_ Discountable = (*Food)(nil)
)

// Food is a grocery item. It is the only Discountable variant.
type Food struct {
	base
	class    FoodClass
	calories int
}

// NewFood creates a Food record, failing with ErrInvalidPrice on a negative price.
func NewFood(id int, name string, price Money, class FoodClass, calories int) (*Food, error) {
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	if !class.valid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "food class %q", class)
	}
	return &Food{base: b, class: class, calories: calories}, nil
}

func (f *Food) Kind() Kind { return KindFood }
func (f *Food) Class() FoodClass { return f.class }
func (f *Food) Calories() int { return f.calories }
func (f *Food) SetCalories(c int) { f.calories = c }
func (f *Food) IsPerishable() bool { return f.class == Perishable }

func (f *Food) SetClass(class FoodClass) error {
	if !class.valid() {
		return errors.Wrapf(ErrInvalidEnum, "food class %q", class)
	}
	f.class = class
	return nil
}

func (f *Food) Description() string {
	return fmt.Sprintf("Alimento %s (%s), %d calorías.", f.name, f.class, f.calories)
}

func (f *Food) Clone() Product {
	c := *f
	return &c
}

// Electronics is a device sold with a manufacturer warranty.
type Electronics struct {
	base
	brand          Brand
	warrantyMonths int
}

// NewElectronics creates an Electronics record, failing with ErrInvalidPrice on a negative price.
func NewElectronics(id int, name string, price Money, brand Brand, warrantyMonths int) (*Electronics, error) {
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	if !brand.valid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "brand %q", brand)
	}
	return &Electronics{base: b, brand: brand, warrantyMonths: warrantyMonths}, nil
}

func (e *Electronics) Kind() Kind { return KindElectronics }
func (e *Electronics) Brand() Brand { return e.brand }
func (e *Electronics) WarrantyMonths() int { return e.warrantyMonths }
func (e *Electronics) SetWarrantyMonths(m int) { e.warrantyMonths = m }

func (e *Electronics) SetBrand(brand Brand) error {
	if !brand.valid() {
		return errors.Wrapf(ErrInvalidEnum, "brand %q", brand)
	}
	e.brand = brand
	return nil
}

func (e *Electronics) Description() string {
	return fmt.Sprintf("Electrónico %s de marca %s, garantía: %d meses", e.name, e.brand, e.warrantyMonths)
}

func (e *Electronics) Clone() Product {
	c := *e
	return &c
}

// Apparel is a garment with a size and a material.
type Apparel struct {
	base
	size     Size
	material string
}

// NewApparel creates an Apparel record, failing with ErrInvalidPrice on a negative price.
func NewApparel(id int, name string, price Money, size Size, material string) (*Apparel, error) {
	b, err := newBase(id, name, price)
	if err != nil {
		return nil, err
	}
	if !size.valid() {
		return nil, errors.Wrapf(ErrInvalidEnum, "size %q", size)
	}
	return &Apparel{base: b, size: size, material: material}, nil
}

func (a *Apparel) Kind() Kind { return KindApparel }
func (a *Apparel) Size() Size { return a.size }
func (a *Apparel) Material() string { return a.material }
func (a *Apparel) SetMaterial(m string) { a.material = m }

func (a *Apparel) SetSize(size Size) error {
	if !size.valid() {
		return errors.Wrapf(ErrInvalidEnum, "size %q", size)
	}
	a.size = size
	return nil
}

func (a *Apparel) Description() string {
	return fmt.Sprintf("Ropa: %s - Talla: %s - Material: %s", a.name, a.size, a.material)
}

func (a *Apparel) Clone() Product {
	c := *a
	return &c
}
