package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freshcart/storefront/internal/cart/domain"
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

func TestCartRepository_SameSessionSameCart(t *testing.T) {
	repo := NewMemoryCartRepository(domain.NewEngine(nil))

	first := repo.Cart("sess-1")
	second := repo.Cart("sess-1")

	assert.Same(t, first, second)
}

func TestCartRepository_SessionsIsolated(t *testing.T) {
	repo := NewMemoryCartRepository(domain.NewEngine(nil))

	repo.Cart("sess-1").AddItem(catalog.Product{Code: "1", Name: "Apple", UnitPrice: 0.50, Stock: 5})

	assert.Len(t, repo.Cart("sess-1").Lines(), 1)
	assert.Empty(t, repo.Cart("sess-2").Lines())
}

func TestCartRepository_ConcurrentFirstAccess(t *testing.T) {
	repo := NewMemoryCartRepository(domain.NewEngine(nil))

	const goroutines = 32
	carts := make([]*domain.Cart, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			carts[i] = repo.Cart("sess-1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, carts[0], carts[i])
	}
}
