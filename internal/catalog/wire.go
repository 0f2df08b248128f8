//go:build wireinject
// +build wireinject

package catalog

import (
	"database/sql"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freshcart/storefront/internal/catalog/client"
	"github.com/freshcart/storefront/internal/catalog/delivery/http"
	"github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/catalog/repository"
	"github.com/freshcart/storefront/internal/catalog/usecase/command"
	"github.com/freshcart/storefront/internal/catalog/usecase/query"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideCatalogClient provides the upstream catalog client
func ProvideCatalogClient(baseURL string, redisClient *redis.Client) *client.Client {
	return client.NewClient(baseURL, redisClient)
}

// Command Handlers Providers
func ProvideSyncCatalogHandler(c *client.Client, repo domain.ProductRepository) *command.SyncCatalogHandler {
	return command.NewSyncCatalogHandler(c, repo)
}

// Query Handlers Providers
func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

func ProvideSearchProductsHandler(repo domain.ProductRepository) *query.SearchProductsHandler {
	return query.NewSearchProductsHandler(repo)
}

func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCatalogClient,
	ProvideSyncCatalogHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListProductsHandler,
	ProvideSearchProductsHandler,
	ProvideGetProductHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHandler initializes catalog handler with all dependencies
func InitializeHandler(db *gorm.DB, sqlDB *sql.DB, baseURL string, redisClient *redis.Client) (*http.ProductHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewProductHandlerWithDI,
	)
	return nil, nil
}
