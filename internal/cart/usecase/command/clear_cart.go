package command

import (
	"fmt"

	"github.com/freshcart/storefront/internal/cart/domain"
)

// ClearCartCommand represents the command to empty a session's cart
type ClearCartCommand struct {
	SessionID string
}

// ClearCartHandler handles clear cart command
type ClearCartHandler struct {
	carts domain.CartRepository
}

// NewClearCartHandler creates a new clear cart handler
func NewClearCartHandler(carts domain.CartRepository) *ClearCartHandler {
	return &ClearCartHandler{carts: carts}
}

// Handle executes the clear cart command
func (h *ClearCartHandler) Handle(cmd ClearCartCommand) error {
	if cmd.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	h.carts.Cart(cmd.SessionID).Clear()
	return nil
}
