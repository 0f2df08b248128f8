package command

import (
	"fmt"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/wishlist/domain"
)

// AddItemCommand represents the command to wishlist a product
type AddItemCommand struct {
	SessionID   string
	ProductCode string
}

// AddItemHandler handles add wishlist item command
type AddItemHandler struct {
	wishlist domain.WishlistRepository
	products catalog.ProductRepository
}

// NewAddItemHandler creates a new add wishlist item handler
func NewAddItemHandler(wishlist domain.WishlistRepository, products catalog.ProductRepository) *AddItemHandler {
	return &AddItemHandler{wishlist: wishlist, products: products}
}

// Handle executes the add wishlist item command
func (h *AddItemHandler) Handle(cmd AddItemCommand) (*domain.Item, error) {
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

	item := &domain.Item{
		SessionID:   cmd.SessionID,
		ProductCode: product.Code,
		ProductName: product.Name,
		UnitPrice:   product.UnitPrice,
		ImageRef:    product.ImageRef,
	}

	if err := h.wishlist.Add(item); err != nil {
		return nil, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return item, nil
}
