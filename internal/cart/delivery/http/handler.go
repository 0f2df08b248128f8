package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/freshcart/storefront/internal/cart/domain"
	"github.com/freshcart/storefront/internal/cart/usecase/command"
	"github.com/freshcart/storefront/internal/cart/usecase/query"
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/pkg/logger"
	"github.com/freshcart/storefront/pkg/session"
)

// CartHandler handles HTTP requests for carts using CQRS pattern
type CartHandler struct {
	// Command handlers
	addHandler         *command.AddItemHandler
	removeHandler      *command.RemoveItemHandler
	setQuantityHandler *command.SetQuantityHandler
	clearHandler       *command.ClearCartHandler

	// Query handlers
	getCartHandler *query.GetCartHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	offerCounter   *prometheus.CounterVec
}

// NewCartHandler creates a new cart handler with CQRS pattern (manual DI)
func NewCartHandler(carts domain.CartRepository, products catalog.ProductRepository) *CartHandler {
	return NewCartHandlerWithDI(
		command.NewAddItemHandler(carts, products),
		command.NewRemoveItemHandler(carts),
		command.NewSetQuantityHandler(carts),
		command.NewClearCartHandler(carts),
		query.NewGetCartHandler(carts),
	)
}

// NewCartHandlerWithDI creates a new cart handler using dependency injection
func NewCartHandlerWithDI(
	addHandler *command.AddItemHandler,
	removeHandler *command.RemoveItemHandler,
	setQuantityHandler *command.SetQuantityHandler,
	clearHandler *command.ClearCartHandler,
	getCartHandler *query.GetCartHandler,
) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_service_requests_total",
			Help: "Total number of requests to the cart endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_service_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	offerCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_service_offer_events_total",
			Help: "Promotion offer events emitted by cart recomputation",
		},
		[]string{"event"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(offerCounter)

	return &CartHandler{
		addHandler:         addHandler,
		removeHandler:      removeHandler,
		setQuantityHandler: setQuantityHandler,
		clearHandler:       clearHandler,
		getCartHandler:     getCartHandler,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		offerCounter:       offerCounter,
	}
}

// Response is the JSON envelope shared by the cart endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Notification carries a domain event to the presentation layer, which
// decides how to surface it (toast, badge, nothing).
type Notification struct {
	Type  string       `json:"type"`
	Event domain.Event `json:"event"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the session-scoped cart routes.
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/api/cart", h.metricsMiddleware("/api/cart", h.ClearCart)).Methods("DELETE")
	router.HandleFunc("/api/cart/items", h.metricsMiddleware("/api/cart/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/api/cart/items/{code}", h.metricsMiddleware("/api/cart/items/{code}", h.SetQuantity)).Methods("PATCH")
	router.HandleFunc("/api/cart/items/{code}", h.metricsMiddleware("/api/cart/items/{code}", h.RemoveItem)).Methods("DELETE")
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.getCartHandler.Handle(query.GetCartQuery{SessionID: sessionID})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read cart",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    view,
	})
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
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

	events, err := h.addHandler.Handle(command.AddItemCommand{
		SessionID:   sessionID,
		ProductCode: req.ProductCode,
	})
	if err != nil {
		logger.Logger.Warn().Err(err).Str("product_code", req.ProductCode).Msg("Failed to add cart item")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respondWithCart(w, sessionID, events)
}

// RemoveItem handles DELETE /api/cart/items/{code}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	events, err := h.removeHandler.Handle(command.RemoveItemCommand{
		SessionID:   sessionID,
		ProductCode: mux.Vars(r)["code"],
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respondWithCart(w, sessionID, events)
}

// SetQuantity handles PATCH /api/cart/items/{code}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	events, err := h.setQuantityHandler.Handle(command.SetQuantityCommand{
		SessionID:   sessionID,
		ProductCode: mux.Vars(r)["code"],
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respondWithCart(w, sessionID, events)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.clearHandler.Handle(command.ClearCartCommand{SessionID: sessionID}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respondWithCart(w, sessionID, nil)
}

// sessionID pulls the session from the request context. Its absence means
// the session middleware is not installed, which is a wiring bug and fails
// loudly.
func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID, ok := session.FromContext(r.Context())
	if !ok {
		logger.Logger.Error().Str("path", r.URL.Path).Msg("Session middleware not installed for cart route")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Session middleware not installed",
		})
		return "", false
	}
	return sessionID, true
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, sessionID string, events []domain.Event) {
	notifications := make([]Notification, 0, len(events))
	for _, event := range events {
		h.offerCounter.WithLabelValues(event.EventName()).Inc()
		notifications = append(notifications, Notification{Type: event.EventName(), Event: event})
	}

	view, err := h.getCartHandler.Handle(query.GetCartQuery{SessionID: sessionID})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read cart",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"cart":          view,
			"notifications": notifications,
		},
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}
