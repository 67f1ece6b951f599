package shared

import (
	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// Attributes carries optional variant fields. Nil fields keep the current
// value, or the variant default when a product is built from scratch.
// Setting a field that does not belong to the target variant is an error.
type Attributes struct {
	FoodClass      *string
	Calories       *int
	Brand          *string
	WarrantyMonths *int
	Size           *string
	Material       *string
}

// ErrForeignAttribute indicates a variant field given for another variant.
var ErrForeignAttribute = errors.New("attribute does not apply to this product kind")

// Build creates a product of kind with the default payload and then applies attrs.
func (a Attributes) Build(kind domain.Kind, id int, name string, price domain.Money) (domain.Product, error) {
	p, err := domain.NewDefault(kind, id, name, price)
	if err != nil {
		return nil, err
	}
	if err := a.ApplyTo(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyTo sets every non-nil attribute on p.
func (a Attributes) ApplyTo(p domain.Product) error {
	if err := a.foreign(p.Kind()); err != nil {
		return err
	}

	switch v := p.(type) {
	case *domain.Food:
		if a.FoodClass != nil {
			if err := v.SetClass(domain.FoodClass(*a.FoodClass)); err != nil {
				return err
			}
		}
		if a.Calories != nil {
			v.SetCalories(*a.Calories)
		}
	case *domain.Electronics:
		if a.Brand != nil {
			if err := v.SetBrand(domain.Brand(*a.Brand)); err != nil {
				return err
			}
		}
		if a.WarrantyMonths != nil {
			v.SetWarrantyMonths(*a.WarrantyMonths)
		}
	case *domain.Apparel:
		if a.Size != nil {
			if err := v.SetSize(domain.Size(*a.Size)); err != nil {
				return err
			}
		}
		if a.Material != nil {
			v.SetMaterial(*a.Material)
		}
	}
	return nil
}

// foreign fails when an attribute of another variant is set.
func (a Attributes) foreign(kind domain.Kind) error {
	owners := map[domain.Kind]bool{
		domain.KindFood:        a.FoodClass != nil || a.Calories != nil,
		domain.KindElectronics: a.Brand != nil || a.WarrantyMonths != nil,
		domain.KindApparel:     a.Size != nil || a.Material != nil,
	}
	for _, k := range domain.Kinds() {
		if owners[k] && k != kind {
			return errors.Wrapf(ErrForeignAttribute, "%s attribute on %s", k, kind)
		}
	}
	return nil
}
