package command

import (
	"fmt"

	"github.com/freshcart/storefront/internal/cart/domain"
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

// AddItemCommand represents the command to add one unit of a product
type AddItemCommand struct {
	SessionID   string
	ProductCode string
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	carts    domain.CartRepository
	products catalog.ProductRepository
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(carts domain.CartRepository, products catalog.ProductRepository) *AddItemHandler {
	return &AddItemHandler{carts: carts, products: products}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(cmd AddItemCommand) ([]domain.Event, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if cmd.ProductCode == "" {
		return nil, fmt.Errorf("product code is required")
	}

	product, err := h.products.FindByCode(cmd.ProductCode)
	if err != nil {
		return nil, fmt.Errorf("product not found")
	}

	cart := h.carts.Cart(cmd.SessionID)
	return cart.AddItem(*product), nil
}
