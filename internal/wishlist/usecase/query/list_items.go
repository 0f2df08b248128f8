package query

import (
	"fmt"

	"github.com/freshcart/storefront/internal/wishlist/domain"
)

// ListItemsQuery represents the query to list a session's wishlist
type ListItemsQuery struct {
	SessionID string
}

// ListItemsHandler handles list wishlist items query
type ListItemsHandler struct {
	wishlist domain.WishlistRepository
}

// NewListItemsHandler creates a new list wishlist items handler
func NewListItemsHandler(wishlist domain.WishlistRepository) *ListItemsHandler {
	return &ListItemsHandler{wishlist: wishlist}
}

// Handle executes the list wishlist items query
func (h *ListItemsHandler) Handle(query ListItemsQuery) ([]domain.Item, error) {
	if query.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	items, err := h.wishlist.ListBySession(query.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}

	return items, nil
}
