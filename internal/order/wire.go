//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	cart "github.com/freshcart/storefront/internal/cart/domain"
	"github.com/freshcart/storefront/internal/order/delivery/http"
	"github.com/freshcart/storefront/internal/order/domain"
	"github.com/freshcart/storefront/internal/order/repository"
	"github.com/freshcart/storefront/internal/order/usecase/command"
	"github.com/freshcart/storefront/internal/order/usecase/query"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// Command Handlers Providers
func ProvidePlaceOrderHandler(carts cart.CartRepository, orders domain.OrderRepository, publisher domain.EventPublisher) *command.PlaceOrderHandler {
	return command.NewPlaceOrderHandler(carts, orders, publisher)
}

// Query Handlers Providers
func ProvideGetOrderHandler(orders domain.OrderRepository) *query.GetOrderHandler {
	return query.NewGetOrderHandler(orders)
}

func ProvideListOrdersHandler(orders domain.OrderRepository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(orders)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvidePlaceOrderHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetOrderHandler,
	ProvideListOrdersHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes order handler with all dependencies
func InitializeHandler(db *gorm.DB, carts cart.CartRepository, publisher domain.EventPublisher) (*http.OrderHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewOrderHandlerWithDI,
	)
	return nil, nil
}
