// Package events publishes domain events emitted after a write commits.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const OrderCreatedType = "order_created"

type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

type OrderCreated struct {
	Type       string          `json:"type"`
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	UserID     uint            `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	CreatedAt  time.Time       `json:"created_at"`
}
