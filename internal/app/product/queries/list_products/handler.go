package list_products

import (
	"context"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context, filter dto.ListFilter) ([]*dto.ProductSummaryDTO, error) {
	return h.readModel.ListProducts(ctx, filter)
}

// Totals sums the listing the filter selects.
func (h *Handler) Totals(ctx context.Context, filter dto.ListFilter) (*dto.TotalsDTO, error) {
	return h.readModel.ProductTotals(ctx, filter)
}
