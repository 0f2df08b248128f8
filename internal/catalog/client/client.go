package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/pkg/logger"
)

var tracer = otel.Tracer("catalog-client")

// cacheTTL bounds how stale a cached category listing may get.
const cacheTTL = 5 * time.Minute

// upstreamProduct is the row shape served by the catalog API.
type upstreamProduct struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"` // "£1.99"
	Available   int      `json:"available"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// Client fetches products from the upstream catalog API, optionally
// read-through cached in Redis per category.
type Client struct {
	baseURL    string
	httpClient *http.Client
	redis      *redis.Client
}

// NewClient creates a catalog client. redisClient may be nil, in which
// case every call goes straight to the upstream API.
func NewClient(baseURL string, redisClient *redis.Client) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		redis: redisClient,
	}
}

// FetchProducts returns the products for a category ("all" for everything).
// Transport, HTTP and decode failures are logged and surfaced as an empty
// list; callers cannot distinguish "no products" from "fetch failed".
func (c *Client) FetchProducts(ctx context.Context, category string) []domain.Product {
	if category == "" {
		category = "all"
	}

	ctx, span := tracer.Start(ctx, "catalog.fetch_products",
		trace.WithAttributes(attribute.String("catalog.category", category)),
	)
	defer span.End()

	if cached, ok := c.cachedProducts(ctx, category); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached
	}

	reqURL := fmt.Sprintf("%s?category=%s", c.baseURL, url.QueryEscape(category))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to build request")
		logger.Error(ctx).Err(err).Str("category", category).Msg("Failed to build catalog request")
		return []domain.Product{}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		logger.Error(ctx).Err(err).Str("category", category).Msg("Catalog fetch failed")
		return []domain.Product{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected status")
		logger.Error(ctx).
			Int("status", resp.StatusCode).
			Str("category", category).
			Msg("Catalog API returned non-OK status")
		return []domain.Product{}
	}

	var rows []upstreamProduct
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		logger.Error(ctx).Err(err).Str("category", category).Msg("Failed to decode catalog response")
		return []domain.Product{}
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, mapProduct(row))
	}

	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	c.storeCache(ctx, category, products)

	return products
}

// mapProduct normalizes an upstream row into a catalog product.
func mapProduct(row upstreamProduct) domain.Product {
	id := row.ID
	return domain.Product{
		Code:        strconv.Itoa(row.ID),
		Name:        row.Name,
		UnitPrice:   parsePrice(row.Price),
		Stock:       row.Available,
		Category:    row.Type,
		ImageRef:    imageFor(row.Name, row.Type),
		CatalogID:   &id,
		Description: row.Description,
		Rating:      row.Rating,
	}
}

// parsePrice strips the currency symbol ("£1.99") and parses the amount.
func parsePrice(price string) float64 {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(price), "£"))
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func (c *Client) cachedProducts(ctx context.Context, category string) ([]domain.Product, bool) {
	if c.redis == nil {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, cacheKey(category)).Bytes()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}

	logger.Debug(ctx).Str("category", category).Msg("Catalog cache hit")
	return products, true
}

func (c *Client) storeCache(ctx context.Context, category string, products []domain.Product) {
	if c.redis == nil {
		return
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return
	}

	if err := c.redis.Set(ctx, cacheKey(category), raw, cacheTTL).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("category", category).Msg("Failed to cache catalog response")
	}
}

func cacheKey(category string) string {
	return "catalog:" + category
}
