package domain

import (
	"strconv"
	"time"
)

// CatalogAggregateID identifies events that concern the whole catalog rather than one product.
const CatalogAggregateID = "catalog"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the catalog.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ProductAddedEvent is raised when the catalog assigns an id to a new product.
type ProductAddedEvent struct {
	ProductID int
	Kind      Kind
	Name      string
	Price     Money
	AddedAt   time.Time
}

func (e *ProductAddedEvent) EventType() string {
	return "product.added"
}

func (e *ProductAddedEvent) AggregateID() string {
	return strconv.Itoa(e.ProductID)
}

func (e *ProductAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}

// ProductUpdatedEvent is raised when a stored product is replaced.
type ProductUpdatedEvent struct {
	ProductID int
	OldKind   Kind
	NewKind   Kind
	OldPrice  Money
	NewPrice  Money
	UpdatedAt time.Time
}

func (e *ProductUpdatedEvent) EventType() string {
	return "product.updated"
}

func (e *ProductUpdatedEvent) AggregateID() string {
	return strconv.Itoa(e.ProductID)
}

func (e *ProductUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// ProductDeletedEvent is raised when a product is removed from the catalog.
type ProductDeletedEvent struct {
	ProductID int
	DeletedAt time.Time
}

func (e *ProductDeletedEvent) EventType() string {
	return "product.deleted"
}

func (e *ProductDeletedEvent) AggregateID() string {
	return strconv.Itoa(e.ProductID)
}

func (e *ProductDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}

// CatalogReplacedEvent is raised when decoded contents replace the whole catalog.
type CatalogReplacedEvent struct {
	Count      int
	NextID     int
	ReplacedAt time.Time
}

func (e *CatalogReplacedEvent) EventType() string {
	return "catalog.replaced"
}

func (e *CatalogReplacedEvent) AggregateID() string {
	return CatalogAggregateID
}

func (e *CatalogReplacedEvent) OccurredAt() time.Time {
	return e.ReplacedAt
}

// CatalogSortedEvent is raised when the storage order changes.
type CatalogSortedEvent struct {
	SortedAt time.Time
}

func (e *CatalogSortedEvent) EventType() string {
	return "catalog.sorted"
}

func (e *CatalogSortedEvent) AggregateID() string {
	return CatalogAggregateID
}

func (e *CatalogSortedEvent) OccurredAt() time.Time {
	return e.SortedAt
}

// FoodDiscountAppliedEvent is raised when a percentage discount is applied to food items.
type FoodDiscountAppliedEvent struct {
	Percentage float64
	ProductIDs []int
	AppliedAt  time.Time
}

func (e *FoodDiscountAppliedEvent) EventType() string {
	return "food.discount_applied"
}

func (e *FoodDiscountAppliedEvent) AggregateID() string {
	return CatalogAggregateID
}

func (e *FoodDiscountAppliedEvent) OccurredAt() time.Time {
	return e.AppliedAt
}
