package command

import (
	"fmt"

	"github.com/freshcart/storefront/internal/cart/domain"
)

// RemoveItemCommand represents the command to remove a product from the cart
type RemoveItemCommand struct {
	SessionID   string
	ProductCode string
}

// RemoveItemHandler handles remove item command
type RemoveItemHandler struct {
	carts domain.CartRepository
}

// NewRemoveItemHandler creates a new remove item handler
func NewRemoveItemHandler(carts domain.CartRepository) *RemoveItemHandler {
	return &RemoveItemHandler{carts: carts}
}

// Handle executes the remove item command. Removing a product that is not
// in the cart is a no-op, not an error.
func (h *RemoveItemHandler) Handle(cmd RemoveItemCommand) ([]domain.Event, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductCode == "" {
		return nil, fmt.Errorf("product code is required")
	}

	cart := h.carts.Cart(cmd.SessionID)
	return cart.RemoveItem(cmd.ProductCode), nil
}
