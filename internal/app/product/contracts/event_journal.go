package contracts

import (
	"time"

	domain "github.com/murkotick/product-catalog-manager/internal/app/product/domain"
	"github.com/murkotick/product-catalog-manager/internal/app/product/journal"
)

// EventJournal records the domain events a use case produced.
type EventJournal interface {
	Record(events []domain.DomainEvent, now time.Time) ([]journal.Entry, error)
}
