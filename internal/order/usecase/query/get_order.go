package query

import (
	"fmt"

	"github.com/freshcart/storefront/internal/order/domain"
)

// GetOrderQuery represents the query to get an order by its order id
type GetOrderQuery struct {
	SessionID string
	OrderID   string
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	orders domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle executes the get order query. Orders belong to the session that
// placed them; other sessions see not-found.
func (h *GetOrderHandler) Handle(query GetOrderQuery) (*domain.Order, error) {
	if query.OrderID == "" {
		return nil, fmt.Errorf("order id is required")
	}

	order, err := h.orders.FindByOrderID(query.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	if order.SessionID != query.SessionID {
		return nil, fmt.Errorf("order not found")
	}

	return order, nil
}
