package domain

import "github.com/pkg/errors"

// Kind is the variant tag of a product. Its string value is written verbatim
// into every persisted format.
type Kind string

const (
	KindFood        Kind = "Alimento"
	KindElectronics Kind = "Electronico"
	KindApparel     Kind = "Ropa"
)

// Kinds returns the closed set of variant tags in declaration order.
func Kinds() []Kind {
	return []Kind{KindFood, KindElectronics, KindApparel}
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a variant tag, failing with ErrUnknownType.
func ParseKind(tag string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == tag {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownType, "%q", tag)
}

// FoodClass tells perishable food from non-perishable food.
type FoodClass string

const (
	Perishable    FoodClass = "PERECEDERO"
	NonPerishable FoodClass = "NO_PERECEDERO"
)

// Brand is the closed set of electronics manufacturers.
type Brand string

const (
	BrandSamsung Brand = "SAMSUNG"
	BrandApple   Brand = "APPLE"
	BrandSony    Brand = "SONY"
)

// Size is the closed set of apparel sizes.
type Size string

const (
	SizeXS Size = "XS"
	SizeS  Size = "S"
	SizeM  Size = "M"
	SizeL  Size = "L"
	SizeXL Size = "XL"
)

var (
	foodClasses = []FoodClass{Perishable, NonPerishable}
	brands      = []Brand{BrandSamsung, BrandApple, BrandSony}
	sizes       = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL}
)

// FoodClasses, Brands and Sizes list enum members in ordinal order.
// The binary format stores ordinals, so the order is part of the wire contract.
func FoodClasses() []FoodClass { return append([]FoodClass(nil), foodClasses...) }
func Brands() []Brand { return append([]Brand(nil), brands...) }
func Sizes() []Size { return append([]Size(nil), sizes...) }

func ParseFoodClass(s string) (FoodClass, error) {
	return parseEnum(foodClasses, s, "food class")
}

func ParseBrand(s string) (Brand, error) {
	return parseEnum(brands, s, "brand")
}

func ParseSize(s string) (Size, error) {
	return parseEnum(sizes, s, "size")
}

// Ordinal returns the position of v in members, or -1.
func Ordinal[T ~string](members []T, v T) int {
	for i, m := range members {
		if m == v {
			return i
		}
	}
	return -1
}

func parseEnum[T ~string](members []T, s, what string) (T, error) {
	if i := Ordinal(members, T(s)); i >= 0 {
		return members[i], nil
	}
	var zero T
	return zero, errors.Wrapf(ErrInvalidEnum, "%s %q", what, s)
}

func (c FoodClass) valid() bool { return Ordinal(foodClasses, c) >= 0 }
func (b Brand) valid() bool { return Ordinal(brands, b) >= 0 }
func (s Size) valid() bool { return Ordinal(sizes, s) >= 0 }
