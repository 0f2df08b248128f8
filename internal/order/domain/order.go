package domain

import (
	"context"
	"time"
)

// Order is a checkout snapshot of a cart at its promotion fixed point.
// Amounts are copied, not recomputed: the totals the shopper saw are the
// totals the order keeps.
type Order struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   string      `json:"order_id" gorm:"not null;uniqueIndex"`
	SessionID string      `json:"-" gorm:"not null;index"`
	Subtotal  float64     `json:"subtotal" gorm:"not null"`
	Discount  float64     `json:"discount" gorm:"not null"`
	Total     float64     `json:"total" gorm:"not null"`
	Status    string      `json:"status" gorm:"default:'pending'"`
	Lines     []OrderLine `json:"lines" gorm:"foreignKey:OrderRef;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one snapshotted cart line, complimentary lines included so
// the receipt shows what the promotions granted.
type OrderLine struct {
	ID            uint    `json:"-" gorm:"primaryKey"`
	OrderRef      uint    `json:"-" gorm:"index"`
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	Complimentary bool    `json:"complimentary"`
}

// TableName specifies the table name
func (OrderLine) TableName() string {
	return "order_lines"
}

// Order statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(order *Order) error
	FindByOrderID(orderID string) (*Order, error)
	FindBySession(sessionID string, limit, offset int) ([]Order, error)
}

// EventPublisher publishes order lifecycle events to the message bus.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *Order) error
}
