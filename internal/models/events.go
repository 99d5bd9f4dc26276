package models

import "time"

// Event types published to the catalog_events queue.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent notifies downstream consumers of a catalog change.
type ProductEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	ProductID  uint      `json:"product_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
