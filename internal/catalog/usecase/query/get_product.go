package query

import (
	"fmt"

	"github.com/freshcart/storefront/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by code
type GetProductQuery struct {
	Code string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	if query.Code == "" {
		return nil, fmt.Errorf("product code is required")
	}

	product, err := h.repo.FindByCode(query.Code)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	return product, nil
}
