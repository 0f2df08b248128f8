package command

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/freshcart/storefront/internal/catalog/client"
	"github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/pkg/logger"
)

// ErrStaleFetch reports that a newer sync started while this one was in
// flight; the stale result was discarded and never persisted.
var ErrStaleFetch = fmt.Errorf("catalog sync superseded by a newer request")

// SyncCatalogCommand represents the command to refresh products for a category
type SyncCatalogCommand struct {
	Category string
}

// SyncCatalogHandler fetches a category from the upstream catalog and
// refreshes the local cache. Concurrent category switches resolve
// last-started-wins: a fetch that finishes after a newer one started is
// dropped so an older, slower response can never overwrite fresher data.
type SyncCatalogHandler struct {
	client *client.Client
	repo   domain.ProductRepository
	seq    atomic.Uint64
}

// NewSyncCatalogHandler creates a new sync catalog handler
func NewSyncCatalogHandler(client *client.Client, repo domain.ProductRepository) *SyncCatalogHandler {
	return &SyncCatalogHandler{client: client, repo: repo}
}

// Handle executes the sync catalog command
func (h *SyncCatalogHandler) Handle(ctx context.Context, cmd SyncCatalogCommand) ([]domain.Product, error) {
	category := cmd.Category
	if category == "" {
		category = "all"
	}

	token := h.seq.Add(1)
	products := h.client.FetchProducts(ctx, category)

	if h.seq.Load() != token {
		logger.Warn(ctx).
			Str("category", category).
			Msg("Dropping stale catalog fetch result")
		return nil, ErrStaleFetch
	}

	for i := range products {
		if err := h.upsert(ctx, &products[i]); err != nil {
			return nil, fmt.Errorf("failed to cache product %s: %w", products[i].Code, err)
		}
	}

	logger.Info(ctx).
		Str("category", category).
		Int("products", len(products)).
		Msg("Catalog synced")

	return products, nil
}

// contextUpserter is implemented by repositories that record a span per
// upsert (the tracing-decorated gorm repository).
type contextUpserter interface {
	UpsertWithContext(ctx context.Context, product *domain.Product) error
}

func (h *SyncCatalogHandler) upsert(ctx context.Context, product *domain.Product) error {
	if repo, ok := h.repo.(contextUpserter); ok {
		return repo.UpsertWithContext(ctx, product)
	}
	return h.repo.Upsert(product)
}
