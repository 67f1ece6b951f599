package list_products

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/domain/services"
	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
)

// ErrUnknownSortKey indicates a sort key other than id, name or price.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Source is the part of the catalog the query reads.
type Source interface {
	GetAll() []domain.Product
}

// CatalogListProductsQuery lists catalog products with optional kind and price filters.
type CatalogListProductsQuery struct {
	Catalog Source
	pricing *services.PricingCalculator
}

func NewCatalogListProductsQuery(catalog Source) *CatalogListProductsQuery {
	return &CatalogListProductsQuery{Catalog: catalog, pricing: services.NewPricingCalculator()}
}

// ListProducts filters and orders a copy of the catalog; the catalog itself is not reordered.
func (q *CatalogListProductsQuery) ListProducts(ctx context.Context, filter dto.ListFilter) ([]*dto.ProductSummaryDTO, error) {
	items, err := q.selectItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ProductSummaryDTO, 0, len(items))
	for _, p := range items {
		out = append(out, &dto.ProductSummaryDTO{
			ProductID:      p.ID(),
			Kind:           p.Kind().String(),
			Name:           p.Name(),
			Description:    p.Description(),
			Price:          p.Price().String(),
			EffectivePrice: q.pricing.EffectivePrice(p).String(),
		})
	}
	return out, nil
}

// ProductTotals sums the products the filter selects.
func (q *CatalogListProductsQuery) ProductTotals(ctx context.Context, filter dto.ListFilter) (*dto.TotalsDTO, error) {
	items, err := q.selectItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	t := q.pricing.CalculateTotals(items)
	return &dto.TotalsDTO{
		Count:          t.Count,
		ListPrice:      t.ListPrice.String(),
		SpecialSavings: t.SpecialSavings.String(),
		EffectivePrice: t.EffectivePrice.String(),
	}, nil
}

func (q *CatalogListProductsQuery) selectItems(ctx context.Context, filter dto.ListFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := PredicateFor(filter)
	if err != nil {
		return nil, err
	}
	cmp, err := ComparatorFor(filter.SortBy)
	if err != nil {
		return nil, err
	}

	var items []domain.Product
	for _, p := range q.Catalog.GetAll() {
		if pred(p) {
			items = append(items, p)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(items, cmp)
	}
	return items, nil
}

// PredicateFor turns the kind and price bounds of a filter into a predicate.
func PredicateFor(filter dto.ListFilter) (domain.Predicate, error) {
	var preds []domain.Predicate
	if filter.Kind != "" {
		kind, err := domain.ParseKind(filter.Kind)
		if err != nil {
			return nil, err
		}
		preds = append(preds, domain.OfKind(kind))
	}
	if filter.MaxPrice != "" {
		limit, err := domain.NewMoneyFromDecimal(filter.MaxPrice)
		if err != nil {
			return nil, err
		}
		preds = append(preds, domain.PriceBelow(limit))
	}
	return domain.And(preds...), nil
}

// ComparatorFor resolves a sort key. The empty key keeps storage order and yields nil.
func ComparatorFor(key string) (domain.Comparator, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "":
		return nil, nil
	case "id":
		return domain.ByID, nil
	case "name":
		return domain.ByName, nil
	case "price":
		return domain.ByPrice, nil
	}
	return nil, errors.Wrapf(ErrUnknownSortKey, "%q", key)
}
