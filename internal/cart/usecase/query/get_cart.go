package query

import (
	"fmt"

	"github.com/freshcart/storefront/internal/cart/domain"
)

// GetCartQuery represents the query to read a session's cart
type GetCartQuery struct {
	SessionID string
}

// CartView is the read model for a cart at its current fixed point.
type CartView struct {
	Lines    []domain.Line `json:"lines"`
	Subtotal float64       `json:"subtotal"`
	Discount float64       `json:"discount"`
	Total    float64       `json:"total"`
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	carts domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler(carts domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{carts: carts}
}

// Handle executes the get cart query
func (h *GetCartHandler) Handle(query GetCartQuery) (*CartView, error) {
	if query.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	lines, totals := h.carts.Cart(query.SessionID).Snapshot()
	if lines == nil {
		lines = []domain.Line{}
	}

	return &CartView{
		Lines:    lines,
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Total:    totals.Total,
	}, nil
}
