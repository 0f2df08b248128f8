package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/wishlist/domain"
	"github.com/freshcart/storefront/internal/wishlist/usecase/command"
	"github.com/freshcart/storefront/internal/wishlist/usecase/query"
	"github.com/freshcart/storefront/pkg/logger"
	"github.com/freshcart/storefront/pkg/session"
)

// WishlistHandler handles HTTP requests for wishlists
type WishlistHandler struct {
	addHandler    *command.AddItemHandler
	removeHandler *command.RemoveItemHandler
	listHandler   *query.ListItemsHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewWishlistHandler creates a new wishlist handler (manual DI)
func NewWishlistHandler(wishlist domain.WishlistRepository, products catalog.ProductRepository) *WishlistHandler {
	return NewWishlistHandlerWithDI(
		command.NewAddItemHandler(wishlist, products),
		command.NewRemoveItemHandler(wishlist),
		query.NewListItemsHandler(wishlist),
	)
}

// NewWishlistHandlerWithDI creates a new wishlist handler using dependency injection
func NewWishlistHandlerWithDI(
	addHandler *command.AddItemHandler,
	removeHandler *command.RemoveItemHandler,
	listHandler *query.ListItemsHandler,
) *WishlistHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_service_requests_total",
			Help: "Total number of requests to the wishlist endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wishlist_service_request_duration_seconds",
			Help:    "Duration of wishlist requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &WishlistHandler{
		addHandler:     addHandler,
		removeHandler:  removeHandler,
		listHandler:    listHandler,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// Response is the JSON envelope shared by the wishlist endpoints.
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

func (h *WishlistHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the session-scoped wishlist routes.
func (h *WishlistHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/wishlist", h.metricsMiddleware("/api/wishlist", h.ListItems)).Methods("GET")
	router.HandleFunc("/api/wishlist", h.metricsMiddleware("/api/wishlist", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/wishlist/{code}", h.metricsMiddleware("/api/wishlist/{code}", h.RemoveItem)).Methods("DELETE")
}

// ListItems handles GET /api/wishlist
func (h *WishlistHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	items, err := h.listHandler.Handle(query.ListItemsQuery{SessionID: sessionID})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list wishlist items")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list wishlist items",
		})
		return
	}

	if items == nil {
		items = []domain.Item{}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    items,
	})
}

// AddItem handles POST /api/wishlist
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductCode string `json:"product_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	item, err := h.addHandler.Handle(command.AddItemCommand{
		SessionID:   sessionID,
		ProductCode: req.ProductCode,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product added to wishlist",
		Data:    item,
	})
}

// RemoveItem handles DELETE /api/wishlist/{code}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.removeHandler.Handle(command.RemoveItemCommand{
		SessionID:   sessionID,
		ProductCode: mux.Vars(r)["code"],
	}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product removed from wishlist",
	})
}

func (h *WishlistHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID, ok := session.FromContext(r.Context())
	if !ok {
		logger.Logger.Error().Str("path", r.URL.Path).Msg("Session middleware not installed for wishlist route")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Session middleware not installed",
		})
		return "", false
	}
	return sessionID, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}
