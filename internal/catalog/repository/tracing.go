package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/freshcart/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// GormProductRepositoryWithTracing wraps GormProductRepository with tracing
type GormProductRepositoryWithTracing struct {
	*GormProductRepository
}

// NewGormProductRepositoryWithTracing creates a new repository with tracing
func NewGormProductRepositoryWithTracing(db *gorm.DB) *GormProductRepositoryWithTracing {
	return &GormProductRepositoryWithTracing{
		GormProductRepository: NewGormProductRepository(db),
	}
}

// UpsertWithContext records an upsert span around the cache refresh.
func (r *GormProductRepositoryWithTracing) UpsertWithContext(ctx context.Context, product *domain.Product) error {
	_, span := tracer.Start(ctx, "repository.Upsert",
		trace.WithAttributes(
			attribute.String("product.code", product.Code),
			attribute.String("product.name", product.Name),
			attribute.String("product.category", product.Category),
			attribute.Float64("product.unit_price", product.UnitPrice),
			attribute.Int("product.stock", product.Stock),
		),
	)
	defer span.End()

	if err := r.GormProductRepository.Upsert(product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// SearchWithContext records a search span.
func (r *GormProductRepositoryWithTracing) SearchWithContext(ctx context.Context, query string, limit, offset int) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.Search",
		trace.WithAttributes(attribute.String("search.query", query)),
	)
	defer span.End()

	products, err := r.GormProductRepository.Search(query, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(products)))
	return products, nil
}
