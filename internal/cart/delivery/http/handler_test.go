package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/storefront/internal/cart/domain"
	"github.com/freshcart/storefront/internal/cart/repository"
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/pkg/session"
)

type fakeProductRepository struct {
	products map[string]catalog.Product
}

func (f *fakeProductRepository) Upsert(product *catalog.Product) error { return nil }

func (f *fakeProductRepository) FindByCode(code string) (*catalog.Product, error) {
	if p, ok := f.products[code]; ok {
		return &p, nil
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeProductRepository) FindAll(limit, offset int) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProductRepository) FindByCategory(category string, limit, offset int) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProductRepository) Search(query string, limit, offset int) ([]catalog.Product, error) {
	return nil, nil
}

func (f *fakeProductRepository) Count() (int64, error) { return 0, nil }

func (f *fakeProductRepository) DecrementStock(code string, quantity int) error { return nil }

// Prometheus collectors register globally, so the handler is built once
// for the whole package.
var (
	buildOnce  sync.Once
	testRouter *mux.Router
)

func testServer() *mux.Router {
	buildOnce.Do(func() {
		products := &fakeProductRepository{products: map[string]catalog.Product{
			"1": {Code: "1", Name: "Coca-Cola", UnitPrice: 0.94, Stock: 10, Category: "drinks"},
			"4": {Code: "4", Name: "Croissant", UnitPrice: 1.25, Stock: 5, Category: "bakery"},
		}}
		carts := repository.NewMemoryCartRepository(domain.NewEngine(domain.DefaultPromotions()))
		handler := NewCartHandler(carts, products)

		testRouter = mux.NewRouter()
		sub := testRouter.NewRoute().Subrouter()
		sub.Use(session.Middleware)
		handler.RegisterRoutes(sub)
	})
	return testRouter
}

type cartEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Data    struct {
		Cart struct {
			Lines []struct {
				Product       catalog.Product `json:"product"`
				Quantity      int             `json:"quantity"`
				Complimentary bool            `json:"complimentary"`
			} `json:"lines"`
			Subtotal float64 `json:"subtotal"`
			Discount float64 `json:"discount"`
			Total    float64 `json:"total"`
		} `json:"cart"`
		Notifications []struct {
			Type string `json:"type"`
		} `json:"notifications"`
	} `json:"data"`
}

func doRequest(t *testing.T, router *mux.Router, token, method, path, body string) (*httptest.ResponseRecorder, cartEnvelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope cartEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func sessionToken(t *testing.T) string {
	t.Helper()
	token, err := session.GenerateToken(session.NewSessionID())
	require.NoError(t, err)
	return token
}

func TestCartHTTP_EmptyCart(t *testing.T) {
	router := testServer()
	token := sessionToken(t)

	rec, envelope := doRequest(t, router, token, http.MethodGet, "/api/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Data.Cart.Lines)
	assert.Zero(t, envelope.Data.Cart.Total)
}

func TestCartHTTP_AddToPromotionThreshold(t *testing.T) {
	router := testServer()
	token := sessionToken(t)

	var envelope cartEnvelope
	for i := 0; i < 6; i++ {
		var rec *httptest.ResponseRecorder
		rec, envelope = doRequest(t, router, token, http.MethodPost, "/api/cart/items", `{"product_code": "1"}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Len(t, envelope.Data.Cart.Lines, 2)
	assert.True(t, envelope.Data.Cart.Lines[1].Complimentary)
	assert.InDelta(t, 0.94, envelope.Data.Cart.Discount, 1e-9)

	types := make([]string, 0, len(envelope.Data.Notifications))
	for _, n := range envelope.Data.Notifications {
		types = append(types, n.Type)
	}
	assert.Contains(t, types, "item_added")
	assert.Contains(t, types, "offer_applied")
}

func TestCartHTTP_UnknownProductRejected(t *testing.T) {
	router := testServer()
	token := sessionToken(t)

	rec, envelope := doRequest(t, router, token, http.MethodPost, "/api/cart/items", `{"product_code": "999"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Error, "product not found")
}

func TestCartHTTP_SetQuantityAndRemove(t *testing.T) {
	router := testServer()
	token := sessionToken(t)

	doRequest(t, router, token, http.MethodPost, "/api/cart/items", `{"product_code": "4"}`)
	_, envelope := doRequest(t, router, token, http.MethodPatch, "/api/cart/items/4", `{"quantity": 3}`)

	require.Len(t, envelope.Data.Cart.Lines, 2, "three croissants earn a free coffee")
	assert.Equal(t, 3, envelope.Data.Cart.Lines[0].Quantity)

	rec, envelope := doRequest(t, router, token, http.MethodDelete, "/api/cart/items/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, envelope.Data.Cart.Lines)
}

func TestCartHTTP_SessionsAreIsolated(t *testing.T) {
	router := testServer()
	alice := sessionToken(t)
	bob := sessionToken(t)

	doRequest(t, router, alice, http.MethodPost, "/api/cart/items", `{"product_code": "1"}`)

	_, envelope := doRequest(t, router, bob, http.MethodGet, "/api/cart", "")
	assert.Empty(t, envelope.Data.Cart.Lines)
}

func TestCartHTTP_ClearCart(t *testing.T) {
	router := testServer()
	token := sessionToken(t)

	doRequest(t, router, token, http.MethodPost, "/api/cart/items", `{"product_code": "1"}`)

	rec, envelope := doRequest(t, router, token, http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, envelope.Data.Cart.Lines)
	assert.Zero(t, envelope.Data.Cart.Total)
}

func TestCartHTTP_AnonymousRequestGetsSession(t *testing.T) {
	router := testServer()

	rec, envelope := doRequest(t, router, "", http.MethodGet, "/api/cart", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, rec.Header().Get(session.TokenHeader))
}
