//go:build wireinject
// +build wireinject

package cart

import (
	"github.com/google/wire"

	"github.com/freshcart/storefront/internal/cart/delivery/http"
	"github.com/freshcart/storefront/internal/cart/domain"
	"github.com/freshcart/storefront/internal/cart/repository"
	"github.com/freshcart/storefront/internal/cart/usecase/command"
	"github.com/freshcart/storefront/internal/cart/usecase/query"
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

// ProvideCartRepository provides the session cart repository
func ProvideCartRepository(engine *domain.Engine) domain.CartRepository {
	return repository.NewMemoryCartRepository(engine)
}

// ProvidePromotionEngine provides the engine with the standing promotions
func ProvidePromotionEngine() *domain.Engine {
	return domain.NewEngine(domain.DefaultPromotions())
}

// Command Handlers Providers
func ProvideAddItemHandler(carts domain.CartRepository, products catalog.ProductRepository) *command.AddItemHandler {
	return command.NewAddItemHandler(carts, products)
}

func ProvideRemoveItemHandler(carts domain.CartRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(carts)
}

func ProvideSetQuantityHandler(carts domain.CartRepository) *command.SetQuantityHandler {
	return command.NewSetQuantityHandler(carts)
}

func ProvideClearCartHandler(carts domain.CartRepository) *command.ClearCartHandler {
	return command.NewClearCartHandler(carts)
}

// Query Handlers Providers
func ProvideGetCartHandler(carts domain.CartRepository) *query.GetCartHandler {
	return query.NewGetCartHandler(carts)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePromotionEngine,
	ProvideCartRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideRemoveItemHandler,
	ProvideSetQuantityHandler,
	ProvideClearCartHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetCartHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes cart handler with all dependencies
func InitializeHandler(products catalog.ProductRepository) (*http.CartHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCartHandlerWithDI,
	)
	return nil, nil
}
