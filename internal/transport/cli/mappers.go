package cli

import (
	"github.com/spf13/cobra"

	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/shared"
	"github.com/murkotick/product-catalog-manager/internal/app/product/usecases/update_product"
)

// variantFlags binds the optional per-variant flags shared by add and update.
type variantFlags struct {
	foodClass string
	calories  int
	brand     string
	warranty  int
	size      string
	material  string
}

func (v *variantFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&v.foodClass, "food-class", "", "food class (PERECEDERO, NO_PERECEDERO)")
	fs.IntVar(&v.calories, "calories", 0, "food calories")
	fs.StringVar(&v.brand, "brand", "", "electronics brand (SAMSUNG, APPLE, SONY)")
	fs.IntVar(&v.warranty, "warranty", 0, "electronics warranty in months")
	fs.StringVar(&v.size, "size", "", "apparel size (XS, S, M, L, XL)")
	fs.StringVar(&v.material, "material", "", "apparel material")
}

// attributes keeps only the flags given on the command line, so an explicit
// zero or empty value still overrides the default.
func (v *variantFlags) attributes(cmd *cobra.Command) shared.Attributes {
	fs := cmd.Flags()
	var a shared.Attributes
	if fs.Changed("food-class") {
		a.FoodClass = &v.foodClass
	}
	if fs.Changed("calories") {
		a.Calories = &v.calories
	}
	if fs.Changed("brand") {
		a.Brand = &v.brand
	}
	if fs.Changed("warranty") {
		a.WarrantyMonths = &v.warranty
	}
	if fs.Changed("size") {
		a.Size = &v.size
	}
	if fs.Changed("material") {
		a.Material = &v.material
	}
	return a
}

type productFlags struct {
	id      int
	kind    string
	name    string
	price   string
	variant variantFlags
}

func mapCreateRequest(cmd *cobra.Command, f *productFlags) create_product.Request {
	return create_product.Request{
		Kind:       f.kind,
		Name:       f.name,
		Price:      f.price,
		Attributes: f.variant.attributes(cmd),
	}
}

func mapUpdateRequest(cmd *cobra.Command, f *productFlags) update_product.Request {
	req := update_product.Request{
		ProductID:  f.id,
		Attributes: f.variant.attributes(cmd),
	}
	fs := cmd.Flags()
	if fs.Changed("kind") {
		req.Kind = &f.kind
	}
	if fs.Changed("name") {
		req.Name = &f.name
	}
	if fs.Changed("price") {
		req.Price = &f.price
	}
	return req
}

type filterFlags struct {
	kind     string
	maxPrice string
	sortBy   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.kind, "kind", "", "only products of this type (Alimento, Electronico, Ropa)")
	fs.StringVar(&f.maxPrice, "max-price", "", "only products cheaper than this amount")
	fs.StringVar(&f.sortBy, "sort", "", "order by id, name or price")
}

func (f *filterFlags) toDTO() dto.ListFilter {
	return dto.ListFilter{Kind: f.kind, MaxPrice: f.maxPrice, SortBy: f.sortBy}
}
