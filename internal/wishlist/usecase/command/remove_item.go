package command

import (
	"fmt"

	"github.com/freshcart/storefront/internal/wishlist/domain"
)

// RemoveItemCommand represents the command to remove a wishlisted product
type RemoveItemCommand struct {
	SessionID   string
	ProductCode string
}

// RemoveItemHandler handles remove wishlist item command
type RemoveItemHandler struct {
	wishlist domain.WishlistRepository
}

// NewRemoveItemHandler creates a new remove wishlist item handler
func NewRemoveItemHandler(wishlist domain.WishlistRepository) *RemoveItemHandler {
	return &RemoveItemHandler{wishlist: wishlist}
}

// Handle executes the remove wishlist item command
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if cmd.ProductCode == "" {
		return fmt.Errorf("product code is required")
	}

	if err := h.wishlist.Remove(cmd.SessionID, cmd.ProductCode); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	return nil
}
