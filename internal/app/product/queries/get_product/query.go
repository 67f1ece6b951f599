package get_product

import (
	"context"
	"strconv"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain/services"
	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
)

// Source is the part of the catalog the query reads.
type Source interface {
	GetByID(id int) (domain.Product, error)
}

// CatalogGetProductQuery reads one product from the in-memory catalog.
type CatalogGetProductQuery struct {
	Catalog Source
	pricing *services.PricingCalculator
}

func NewCatalogGetProductQuery(catalog Source) *CatalogGetProductQuery {
	return &CatalogGetProductQuery{Catalog: catalog, pricing: services.NewPricingCalculator()}
}

// GetProduct returns the full view of a product, or domain.ErrProductNotFound.
func (q *CatalogGetProductQuery) GetProduct(ctx context.Context, productID int) (*dto.ProductDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := q.Catalog.GetByID(productID)
	if err != nil {
		return nil, err
	}
	return ToProductDTO(q.pricing, p), nil
}

// ToProductDTO flattens p, filling only the attributes of its variant.
func ToProductDTO(pc *services.PricingCalculator, p domain.Product) *dto.ProductDTO {
	out := &dto.ProductDTO{
		ProductID:      p.ID(),
		Kind:           p.Kind().String(),
		Name:           p.Name(),
		Description:    p.Description(),
		Price:          p.Price().String(),
		EffectivePrice: pc.EffectivePrice(p).String(),
	}
	if d, ok := domain.SpecialDiscountOf(p); ok {
		s := d.String()
		out.SpecialDiscount = &s
	}

	switch v := p.(type) {
	case *domain.Food:
		class, calories := string(v.Class()), v.Calories()
		out.FoodClass, out.Calories = &class, &calories
	case *domain.Electronics:
		brand, months := string(v.Brand()), v.WarrantyMonths()
		out.Brand, out.WarrantyMonths = &brand, &months
	case *domain.Apparel:
		size, material := string(v.Size()), v.Material()
		out.Size, out.Material = &size, &material
	}
	return out
}

// Attributes renders the variant attributes of a DTO as "key=value" pairs.
func Attributes(d *dto.ProductDTO) []string {
	var out []string
	add := func(key string, s *string) {
		if s != nil {
			out = append(out, key+"="+*s)
		}
	}
	addInt := func(key string, n *int) {
		if n != nil {
			out = append(out, key+"="+strconv.Itoa(*n))
		}
	}
	add("class", d.FoodClass)
	addInt("calories", d.Calories)
	add("brand", d.Brand)
	addInt("warranty", d.WarrantyMonths)
	add("size", d.Size)
	add("material", d.Material)
	return out
}
