package command

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/freshcart/storefront/internal/cart/domain"
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/cart/repository"
	"github.com/freshcart/storefront/internal/order/domain"
)

type fakeOrderRepository struct {
	orders []domain.Order
	err    error
}

func (f *fakeOrderRepository) Create(order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepository) FindByOrderID(orderID string) (*domain.Order, error) {
	for i := range f.orders {
		if f.orders[i].OrderID == orderID {
			return &f.orders[i], nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeOrderRepository) FindBySession(sessionID string, limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.SessionID == sessionID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakePublisher struct {
	published []domain.Order
	err       error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, *order)
	return nil
}

func colaProduct() catalog.Product {
	return catalog.Product{Code: "1", Name: "Coca-Cola", UnitPrice: 0.94, Stock: 10, Category: "drinks"}
}

func newCarts() cart.CartRepository {
	return repository.NewMemoryCartRepository(cart.NewEngine(cart.DefaultPromotions()))
}

func TestPlaceOrder_SnapshotsCartAndClearsIt(t *testing.T) {
	carts := newCarts()
	orders := &fakeOrderRepository{}
	publisher := &fakePublisher{}
	handler := NewPlaceOrderHandler(carts, orders, publisher)

	shoppingCart := carts.Cart("sess-1")
	for i := 0; i < 6; i++ {
		shoppingCart.AddItem(colaProduct())
	}

	order, err := handler.Handle(context.Background(), PlaceOrderCommand{SessionID: "sess-1"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, "sess-1", order.SessionID)
	assert.Equal(t, domain.StatusPending, order.Status)

	// The free cola is part of the receipt.
	require.Len(t, order.Lines, 2)
	assert.False(t, order.Lines[0].Complimentary)
	assert.Equal(t, 6, order.Lines[0].Quantity)
	assert.True(t, order.Lines[1].Complimentary)
	assert.Equal(t, 1, order.Lines[1].Quantity)

	assert.InDelta(t, 6*0.94, order.Subtotal, 1e-9)
	assert.InDelta(t, 0.94, order.Discount, 1e-9)
	assert.InDelta(t, 5*0.94, order.Total, 1e-9)

	require.Len(t, orders.orders, 1)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, order.OrderID, publisher.published[0].OrderID)

	assert.Empty(t, shoppingCart.Lines(), "cart must be cleared after checkout")
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	handler := NewPlaceOrderHandler(newCarts(), &fakeOrderRepository{}, nil)

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{SessionID: "sess-2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestPlaceOrder_MissingSessionRejected(t *testing.T) {
	handler := NewPlaceOrderHandler(newCarts(), &fakeOrderRepository{}, nil)

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{})
	require.Error(t, err)
}

func TestPlaceOrder_RepositoryFailureKeepsCart(t *testing.T) {
	carts := newCarts()
	orders := &fakeOrderRepository{err: fmt.Errorf("db down")}
	handler := NewPlaceOrderHandler(carts, orders, nil)

	shoppingCart := carts.Cart("sess-3")
	shoppingCart.AddItem(colaProduct())

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{SessionID: "sess-3"})
	require.Error(t, err)

	assert.Len(t, shoppingCart.Lines(), 1, "cart must survive a failed checkout")
}

func TestPlaceOrder_PublishFailureDoesNotFailCheckout(t *testing.T) {
	carts := newCarts()
	orders := &fakeOrderRepository{}
	publisher := &fakePublisher{err: fmt.Errorf("broker down")}
	handler := NewPlaceOrderHandler(carts, orders, publisher)

	shoppingCart := carts.Cart("sess-4")
	shoppingCart.AddItem(colaProduct())

	order, err := handler.Handle(context.Background(), PlaceOrderCommand{SessionID: "sess-4"})
	require.NoError(t, err)
	assert.NotNil(t, order)

	require.Len(t, orders.orders, 1)
	assert.Empty(t, shoppingCart.Lines())
}

func TestPlaceOrder_NilPublisherSkipped(t *testing.T) {
	carts := newCarts()
	handler := NewPlaceOrderHandler(carts, &fakeOrderRepository{}, nil)

	carts.Cart("sess-5").AddItem(colaProduct())

	order, err := handler.Handle(context.Background(), PlaceOrderCommand{SessionID: "sess-5"})
	require.NoError(t, err)
	assert.NotNil(t, order)
}
