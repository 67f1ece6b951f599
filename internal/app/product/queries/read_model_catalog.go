package queries

import (
	"context"

	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/get_product"
	"github.com/murkotick/product-catalog-manager/internal/app/product/queries/list_products"
	"github.com/murkotick/product-catalog-manager/internal/app/product/repo"
)

// CatalogReadModel satisfies contracts.ReadModel over the in-memory catalog.
// It composes the individual query implementations.
type CatalogReadModel struct {
	getQ  *get_product.CatalogGetProductQuery
	listQ *list_products.CatalogListProductsQuery
}

func NewCatalogReadModel(catalog *repo.Catalog) *CatalogReadModel {
	return &CatalogReadModel{
		getQ:  get_product.NewCatalogGetProductQuery(catalog),
		listQ: list_products.NewCatalogListProductsQuery(catalog),
	}
}

func (rm *CatalogReadModel) GetProduct(ctx context.Context, productID int) (*dto.ProductDTO, error) {
	return rm.getQ.GetProduct(ctx, productID)
}

func (rm *CatalogReadModel) ListProducts(ctx context.Context, filter dto.ListFilter) ([]*dto.ProductSummaryDTO, error) {
	return rm.listQ.ListProducts(ctx, filter)
}

func (rm *CatalogReadModel) ProductTotals(ctx context.Context, filter dto.ListFilter) (*dto.TotalsDTO, error) {
	return rm.listQ.ProductTotals(ctx, filter)
}
