package repository

import (
	"sync"

	"github.com/freshcart/storefront/internal/cart/domain"
)

// MemoryCartRepository keeps one cart per session in process memory.
// Cart state is deliberately not persisted (session-scoped by design);
// the carts themselves serialize their own mutations.
type MemoryCartRepository struct {
	mu     sync.RWMutex
	engine *domain.Engine
	carts  map[string]*domain.Cart
}

// NewMemoryCartRepository creates an empty cart repository whose carts are
// evaluated by the given promotion engine.
func NewMemoryCartRepository(engine *domain.Engine) *MemoryCartRepository {
	return &MemoryCartRepository{
		engine: engine,
		carts:  make(map[string]*domain.Cart),
	}
}

// Cart returns the session's cart, creating it on first access.
func (r *MemoryCartRepository) Cart(sessionID string) *domain.Cart {
	r.mu.RLock()
	cart, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return cart
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cart, ok := r.carts[sessionID]; ok {
		return cart
	}
	cart = domain.NewCart(r.engine)
	r.carts[sessionID] = cart
	return cart
}
