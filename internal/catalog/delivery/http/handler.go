package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/catalog/usecase/command"
	"github.com/freshcart/storefront/internal/catalog/usecase/query"
	"github.com/freshcart/storefront/pkg/logger"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	syncHandler   *command.SyncCatalogHandler
	listHandler   *query.ListProductsHandler
	searchHandler *query.SearchProductsHandler
	getHandler    *query.GetProductHandler
	db            *sql.DB

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	syncFailures   prometheus.Counter
}

// NewProductHandlerWithDI creates a new product handler using dependency injection
func NewProductHandlerWithDI(
	syncHandler *command.SyncCatalogHandler,
	listHandler *query.ListProductsHandler,
	searchHandler *query.SearchProductsHandler,
	getHandler *query.GetProductHandler,
	db *sql.DB,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	syncFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_service_sync_failures_total",
			Help: "Total number of catalog sync attempts dropped or failed",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(syncFailures)

	return &ProductHandler{
		syncHandler:    syncHandler,
		listHandler:    listHandler,
		searchHandler:  searchHandler,
		getHandler:     getHandler,
		db:             db,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		syncFailures:   syncFailures,
	}
}

// Response is the JSON envelope shared by the catalog endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the catalog routes. They are session-free: the
// catalog is shared by every visitor.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/search", h.metricsMiddleware("/api/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/api/products/{code}", h.metricsMiddleware("/api/products/{code}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}

// ListProducts handles GET /api/products
//
// A category switch triggers a fresh sync from the upstream catalog; the
// cached rows are served when the sync is superseded or the upstream is
// unreachable, so browsing degrades instead of breaking.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "all"
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.syncHandler.Handle(r.Context(), command.SyncCatalogCommand{Category: category})
	if err != nil {
		if !errors.Is(err, command.ErrStaleFetch) {
			logger.Error(r.Context()).Err(err).Str("category", category).Msg("Catalog sync failed, serving cached products")
		}
		h.syncFailures.Inc()

		products, err = h.listHandler.Handle(query.ListProductsQuery{
			Limit:    limit,
			Offset:   offset,
			Category: category,
		})
		if err != nil {
			respondJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Failed to list products",
			})
			return
		}
	}

	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// SearchProducts handles GET /api/products/search?q=
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	products, err := h.searchHandler.Handle(r.Context(), query.SearchProductsQuery{
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    products,
	})
}

// GetProduct handles GET /api/products/{code}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.getHandler.Handle(query.GetProductQuery{Code: mux.Vars(r)["code"]})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// HealthCheck handles GET /health
func (h *ProductHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "database unreachable",
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "healthy",
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}
