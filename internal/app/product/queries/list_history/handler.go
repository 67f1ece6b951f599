package list_history

import (
	"context"

	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
)

type Handler struct {
	query *JournalHistoryQuery
}

func NewHandler(q *JournalHistoryQuery) *Handler {
	return &Handler{query: q}
}

func (h *Handler) Execute(ctx context.Context, limit int) ([]*dto.HistoryEntryDTO, error) {
	return h.query.ListHistory(ctx, limit)
}
