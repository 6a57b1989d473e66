// Package events announces placed orders to the kitchen side.
package events

import (
	"context"
	"time"

	"southern-spoon-api/models"
)

const (
	TypeOrderPlaced     = "order.placed"
	TypeOrderOverridden = "order.overridden"
)

// OrderEvent is published after an order has been persisted
type OrderEvent struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"order_id"`
	Phone      string          `json:"phone"`
	Meal       models.MealSlot `json:"meal"`
	ItemCount  int             `json:"item_count"`
	Total      int64           `json:"total"`
	PlacedAt   string          `json:"placed_at"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewOrderEvent describes rec; overridden marks a replacement of an earlier order
func NewOrderEvent(rec *models.OrderRecord, overridden bool, now time.Time) OrderEvent {
	typ := TypeOrderPlaced
	if overridden {
		typ = TypeOrderOverridden
	}
	return OrderEvent{
		Type:       typ,
		OrderID:    rec.ID,
		Phone:      rec.Phone,
		Meal:       rec.Meal,
		ItemCount:  rec.ItemCount(),
		Total:      rec.Total,
		PlacedAt:   rec.PlacedAt,
		OccurredAt: now.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt OrderEvent) error
	Close() error
}

// Noop drops every event; used when no broker is configured
type Noop struct{}

func (Noop) Publish(context.Context, OrderEvent) error { return nil }
func (Noop) Close() error                              { return nil }
