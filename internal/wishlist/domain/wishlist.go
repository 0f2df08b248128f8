package domain

import (
	"time"
)

// Item represents a wishlisted product for a session. The wishlist is a
// set: one row per (session, product code).
type Item struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SessionID   string    `json:"-" gorm:"not null;uniqueIndex:idx_wishlist_session_product"`
	ProductCode string    `json:"product_code" gorm:"not null;uniqueIndex:idx_wishlist_session_product"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "wishlist_items"
}

// WishlistRepository defines the contract for wishlist data access
type WishlistRepository interface {
	Add(item *Item) error
	Remove(sessionID, productCode string) error
	ListBySession(sessionID string) ([]Item, error)
	Contains(sessionID, productCode string) (bool, error)
}
