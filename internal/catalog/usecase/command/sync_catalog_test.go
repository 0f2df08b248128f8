package command

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/storefront/internal/catalog/client"
	"github.com/freshcart/storefront/internal/catalog/domain"
)

type fakeProductRepository struct {
	mu       sync.Mutex
	upserted []domain.Product
}

func (f *fakeProductRepository) Upsert(product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, *product)
	return nil
}

func (f *fakeProductRepository) FindByCode(code string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.upserted {
		if f.upserted[i].Code == code {
			return &f.upserted[i], nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (f *fakeProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Product(nil), f.upserted...), nil
}

func (f *fakeProductRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepository) Search(query string, limit, offset int) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepository) Count() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.upserted)), nil
}

func (f *fakeProductRepository) DecrementStock(code string, quantity int) error {
	return nil
}

func (f *fakeProductRepository) codes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.upserted {
		out = append(out, p.Code)
	}
	return out
}

func TestSyncCatalog_PersistsFetchedProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id": 1, "name": "Apple", "price": "£0.50", "available": 20, "type": "fruit"},
			{"id": 2, "name": "Banana", "price": "£0.30", "available": 15, "type": "fruit"}
		]`))
	}))
	defer server.Close()

	repo := &fakeProductRepository{}
	handler := NewSyncCatalogHandler(client.NewClient(server.URL, nil), repo)

	products, err := handler.Handle(context.Background(), SyncCatalogCommand{Category: "fruit"})
	require.NoError(t, err)

	assert.Len(t, products, 2)
	assert.Equal(t, []string{"1", "2"}, repo.codes())
}

func TestSyncCatalog_EmptyCategoryDefaultsToAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("category"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	handler := NewSyncCatalogHandler(client.NewClient(server.URL, nil), &fakeProductRepository{})

	products, err := handler.Handle(context.Background(), SyncCatalogCommand{})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSyncCatalog_LastStartedWins(t *testing.T) {
	// The first request stalls until the second has been served, so the
	// older fetch resolves after the newer one started.
	release := make(chan struct{})
	var requests int
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		first := requests == 1
		mu.Unlock()

		if first {
			<-release
			w.Write([]byte(`[{"id": 99, "name": "Stale Apple", "price": "£0.10", "available": 1, "type": "fruit"}]`))
			return
		}
		close(release)
		w.Write([]byte(`[{"id": 1, "name": "Fresh Apple", "price": "£0.50", "available": 20, "type": "fruit"}]`))
	}))
	defer server.Close()

	repo := &fakeProductRepository{}
	handler := NewSyncCatalogHandler(client.NewClient(server.URL, nil), repo)

	var wg sync.WaitGroup
	wg.Add(1)
	staleErr := make(chan error, 1)
	go func() {
		defer wg.Done()
		_, err := handler.Handle(context.Background(), SyncCatalogCommand{Category: "fruit"})
		staleErr <- err
	}()

	// Give the first fetch time to claim its sequence token.
	time.Sleep(50 * time.Millisecond)

	products, err := handler.Handle(context.Background(), SyncCatalogCommand{Category: "fruit"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Fresh Apple", products[0].Name)

	wg.Wait()
	assert.ErrorIs(t, <-staleErr, ErrStaleFetch)

	// Only the fresh result was persisted.
	assert.Equal(t, []string{"1"}, repo.codes())
}
