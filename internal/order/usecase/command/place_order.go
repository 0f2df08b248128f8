package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	cart "github.com/freshcart/storefront/internal/cart/domain"
	"github.com/freshcart/storefront/internal/order/domain"
	"github.com/freshcart/storefront/pkg/logger"
)

// PlaceOrderCommand represents the command to check out a session's cart
type PlaceOrderCommand struct {
	SessionID string
}

// PlaceOrderHandler snapshots the cart into an order, publishes the
// order-placed event, and clears the cart.
type PlaceOrderHandler struct {
	carts     cart.CartRepository
	orders    domain.OrderRepository
	publisher domain.EventPublisher
}

// NewPlaceOrderHandler creates a new place order handler. publisher may be
// nil when no message bus is configured; publication is then skipped.
func NewPlaceOrderHandler(carts cart.CartRepository, orders domain.OrderRepository, publisher domain.EventPublisher) *PlaceOrderHandler {
	return &PlaceOrderHandler{carts: carts, orders: orders, publisher: publisher}
}

// Handle executes the place order command
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if cmd.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	shoppingCart := h.carts.Cart(cmd.SessionID)
	lines, totals := shoppingCart.Snapshot()
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	order := &domain.Order{
		OrderID:   fmt.Sprintf("ORD-%s", uuid.New().String()[:8]),
		SessionID: cmd.SessionID,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		Total:     totals.Total,
		Status:    domain.StatusPending,
		Lines:     make([]domain.OrderLine, 0, len(lines)),
	}

	for _, line := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductCode:   line.Product.Code,
			ProductName:   line.Product.Name,
			UnitPrice:     line.Product.UnitPrice,
			Quantity:      line.Quantity,
			Complimentary: line.Complimentary,
		})
	}

	if err := h.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if h.publisher != nil {
		if err := h.publisher.PublishOrderPlaced(ctx, order); err != nil {
			// The order is already committed; publication failure must not
			// fail the checkout.
			logger.Error(ctx).Err(err).Str("order_id", order.OrderID).Msg("Failed to publish order placed event")
		}
	}

	shoppingCart.Clear()

	return order, nil
}
