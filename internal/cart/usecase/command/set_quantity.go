package command

import (
	"fmt"

	"github.com/freshcart/storefront/internal/cart/domain"
)

// SetQuantityCommand represents the command to set a regular line's quantity
type SetQuantityCommand struct {
	SessionID   string
	ProductCode string
	Quantity    int
}

// SetQuantityHandler handles set quantity command
type SetQuantityHandler struct {
	carts domain.CartRepository
}

// NewSetQuantityHandler creates a new set quantity handler
func NewSetQuantityHandler(carts domain.CartRepository) *SetQuantityHandler {
	return &SetQuantityHandler{carts: carts}
}

// Handle executes the set quantity command. Quantities at or below zero
// remove the line; stock is not enforced here.
func (h *SetQuantityHandler) Handle(cmd SetQuantityCommand) ([]domain.Event, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductCode == "" {
		return nil, fmt.Errorf("product code is required")
	}

	cart := h.carts.Cart(cmd.SessionID)
	return cart.SetQuantity(cmd.ProductCode, cmd.Quantity), nil
}
