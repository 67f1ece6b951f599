package contracts

import (
	"context"

	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
)

type ReadModel interface {
	GetProduct(ctx context.Context, productID int) (*dto.ProductDTO, error)
	ListProducts(ctx context.Context, filter dto.ListFilter) ([]*dto.ProductSummaryDTO, error)
	ProductTotals(ctx context.Context, filter dto.ListFilter) (*dto.TotalsDTO, error)
}
