package journal

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalEventPayload converts a domain event into a JSON payload for the journal.
//
// The domain layer intentionally avoids serialization concerns; this adapter extracts primitives
// (e.g., Money as a decimal string) to keep payloads useful.
func MarshalEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ProductAddedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"kind":       e.Kind,
			"name":       e.Name,
			"price":      e.Price.String(),
			"added_at":   e.AddedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"old_kind":   e.OldKind,
			"new_kind":   e.NewKind,
			"old_price":  e.OldPrice.String(),
			"new_price":  e.NewPrice.String(),
			"updated_at": e.UpdatedAt,
		}

	case *domain.ProductDeletedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"deleted_at": e.DeletedAt,
		}

	case *domain.CatalogReplacedEvent:
		payload = map[string]interface{}{
			"count":       e.Count,
			"next_id":     e.NextID,
			"replaced_at": e.ReplacedAt,
		}

	case *domain.CatalogSortedEvent:
		payload = map[string]interface{}{
			"sorted_at": e.SortedAt,
		}

	case *domain.FoodDiscountAppliedEvent:
		payload = map[string]interface{}{
			"percentage":  e.Percentage,
			"product_ids": e.ProductIDs,
			"applied_at":  e.AppliedAt,
		}
	}

	if payload == nil {
		// Fallback: try to marshal the event directly.
		b, err := json.Marshal(ev)
		if err != nil {
			return "", errors.Wrapf(err, "marshal journal payload for %T", ev)
		}
		return string(b), nil
	}

	payload["occurred_at"] = ev.OccurredAt()
	b, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrapf(err, "marshal journal payload for %s", ev.EventType())
	}
	return string(b), nil
}
