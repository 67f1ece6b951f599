package shared

import (
	"context"

	"go.uber.org/zap"

	contracts "github.com/murkotick/product-catalog-manager/internal/app/product/contracts"
	"github.com/murkotick/product-catalog-manager/internal/pkg/clock"
)

// JournalStep returns a plan step that moves the catalog's pending domain
// events into the journal. Events are cleared only once they are recorded.
func JournalStep(catalog contracts.ProductRepo, j contracts.EventJournal, clk clock.Clock, logger *zap.Logger) func(context.Context) error {
	return func(context.Context) error {
		events := catalog.DomainEvents()
		if len(events) == 0 {
			return nil
		}
		entries, err := j.Record(events, clk.Now())
		if err != nil {
			return err
		}
		catalog.ClearEvents()

		for _, e := range entries {
			logger.Debug("journaled catalog event",
				zap.String("event_id", e.EventID),
				zap.String("event_type", e.EventType),
				zap.String("aggregate_id", e.AggregateID),
			)
		}
		return nil
	}
}

