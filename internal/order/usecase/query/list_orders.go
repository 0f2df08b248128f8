package query

import (
	"fmt"

	"github.com/freshcart/storefront/internal/order/domain"
)

// ListOrdersQuery represents the query to list a session's orders
type ListOrdersQuery struct {
	SessionID string
	Limit     int
	Offset    int
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	orders domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(orders domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{orders: orders}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(query ListOrdersQuery) ([]domain.Order, error) {
	if query.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	if query.Limit <= 0 {
		query.Limit = 20
	}

	orders, err := h.orders.FindBySession(query.SessionID, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
