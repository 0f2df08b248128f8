package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/freshcart/storefront/internal/catalog/domain"
)

// SearchProductsQuery represents the query to search products by name
type SearchProductsQuery struct {
	Query  string
	Limit  int
	Offset int
}

// SearchProductsHandler handles product search query
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search products query
func (h *SearchProductsHandler) Handle(ctx context.Context, query SearchProductsQuery) ([]domain.Product, error) {
	term := strings.TrimSpace(query.Query)
	if term == "" {
		return nil, fmt.Errorf("search query is required")
	}

	if query.Limit <= 0 {
		query.Limit = 50
	}

	products, err := h.search(ctx, term, query.Limit, query.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// contextSearcher is implemented by repositories that record a span per
// search (the tracing-decorated gorm repository).
type contextSearcher interface {
	SearchWithContext(ctx context.Context, query string, limit, offset int) ([]domain.Product, error)
}

func (h *SearchProductsHandler) search(ctx context.Context, term string, limit, offset int) ([]domain.Product, error) {
	if repo, ok := h.repo.(contextSearcher); ok {
		return repo.SearchWithContext(ctx, term, limit, offset)
	}
	return h.repo.Search(term, limit, offset)
}
