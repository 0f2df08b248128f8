//go:build wireinject
// +build wireinject

package wishlist

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/wishlist/delivery/http"
	"github.com/freshcart/storefront/internal/wishlist/domain"
	"github.com/freshcart/storefront/internal/wishlist/repository"
	"github.com/freshcart/storefront/internal/wishlist/usecase/command"
	"github.com/freshcart/storefront/internal/wishlist/usecase/query"
)

// ProvideWishlistRepository provides the wishlist repository
func ProvideWishlistRepository(db *gorm.DB) domain.WishlistRepository {
	return repository.NewGormWishlistRepository(db)
}

// Command Handlers Providers
func ProvideAddItemHandler(wishlist domain.WishlistRepository, products catalog.ProductRepository) *command.AddItemHandler {
	return command.NewAddItemHandler(wishlist, products)
}

func ProvideRemoveItemHandler(wishlist domain.WishlistRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(wishlist)
}

// Query Handlers Providers
func ProvideListItemsHandler(wishlist domain.WishlistRepository) *query.ListItemsHandler {
	return query.NewListItemsHandler(wishlist)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideWishlistRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideRemoveItemHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListItemsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes wishlist handler with all dependencies
func InitializeHandler(db *gorm.DB, products catalog.ProductRepository) (*http.WishlistHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewWishlistHandlerWithDI,
	)
	return nil, nil
}
