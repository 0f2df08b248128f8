package kafka

import "time"

// OrderPlacedEvent represents a checked-out cart handed off for fulfillment
type OrderPlacedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	OrderID   string           `json:"order_id"`
	SessionID string           `json:"session_id"`
	Subtotal  float64          `json:"subtotal"`
	Discount  float64          `json:"discount"`
	Total     float64          `json:"total"`
	Items     []OrderItemEvent `json:"items"`
	Timestamp time.Time        `json:"timestamp"`
}

// OrderItemEvent is a single line of a placed order
type OrderItemEvent struct {
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	Complimentary bool    `json:"complimentary"`
}

// Event types
const (
	EventTypeOrderPlaced = "order.placed"
)

// Kafka topics
const (
	TopicOrderPlaced = "order-placed"
)
