package list_history

import (
	"context"
	"time"

	"github.com/murkotick/product-catalog-manager/internal/app/product/dto"
	"github.com/murkotick/product-catalog-manager/internal/app/product/journal"
)

// Source is the part of the journal the query reads.
type Source interface {
	History() ([]journal.Entry, error)
}

// JournalHistoryQuery reads journaled changes, oldest first.
type JournalHistoryQuery struct {
	Journal Source
}

func NewJournalHistoryQuery(j Source) *JournalHistoryQuery {
	return &JournalHistoryQuery{Journal: j}
}

// ListHistory returns the last limit entries, or all of them when limit <= 0.
func (q *JournalHistoryQuery) ListHistory(ctx context.Context, limit int) ([]*dto.HistoryEntryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := q.Journal.History()
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	out := make([]*dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.HistoryEntryDTO{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Payload:     e.PayloadJSON,
			RecordedAt:  e.RecordedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
