package dto

// ProductDTO contains full product fields returned by read queries.
// Variant attributes that do not apply to the product's kind are nil.
// Prices are decimal strings as rendered by domain.Money.
type ProductDTO struct {
	ProductID   int
	Kind        string
	Name        string
	Description string
	Price       string

	// SpecialDiscount is set only for variants that grant one.
	SpecialDiscount *string

	// EffectivePrice is the price after the special discount.
	EffectivePrice string

	FoodClass      *string
	Calories       *int
	Brand          *string
	WarrantyMonths *int
	Size           *string
	Material       *string
}

// ProductSummaryDTO is a compact DTO for list queries.
type ProductSummaryDTO struct {
	ProductID      int
	Kind           string
	Name           string
	Description    string
	Price          string
	EffectivePrice string
}

// TotalsDTO sums a product listing.
type TotalsDTO struct {
	Count          int
	ListPrice      string
	SpecialSavings string
	EffectivePrice string
}

// ListFilter narrows and orders a product listing. Zero values select everything
// in storage order.
type ListFilter struct {
	// Kind restricts the listing to one variant tag.
	Kind string
	// MaxPrice keeps products strictly cheaper than this decimal amount.
	MaxPrice string
	// SortBy is one of "", "id", "name" or "price".
	SortBy string
}

// HistoryEntryDTO is one journaled change. RecordedAt is RFC 3339 in UTC.
type HistoryEntryDTO struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	RecordedAt  string
}
