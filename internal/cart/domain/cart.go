package domain

import (
	"sync"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

// Cart holds the ordered line collection for one shopping session. Every
// structural change runs the promotion engine so the lines and totals a
// reader observes are always at the engine's fixed point. Cart state is
// process-lifetime only; nothing is persisted across restarts.
type Cart struct {
	mu     sync.Mutex
	engine *Engine
	lines  []Line
	totals Totals
}

// NewCart creates an empty cart evaluated by the given promotion engine.
func NewCart(engine *Engine) *Cart {
	return &Cart{engine: engine}
}

// AddItem adds one unit of the product. An existing regular line is
// incremented while below the product's stock level; at the stock level
// the add is silently refused and only a StockLimitReached event fires.
func (c *Cart) AddItem(product catalog.Product) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.findRegular(&product)
	if idx >= 0 {
		if c.lines[idx].Quantity >= product.Stock {
			return []Event{StockLimitReached{Product: product, Stock: product.Stock}}
		}
		c.lines[idx].Quantity++
	} else {
		if product.Stock < 1 {
			return []Event{StockLimitReached{Product: product, Stock: product.Stock}}
		}
		c.lines = append(c.lines, Line{Product: product, Quantity: 1})
	}

	events := []Event{ItemAdded{Product: product}}
	return append(events, c.recompute()...)
}

// RemoveItem removes the regular line for the product code, plus any other
// regular line sharing its product identity (duplicate catalog-id entries).
// Complimentary lines are left to the engine to clean up. Removing a code
// that is not in the cart is a no-op.
func (c *Cart) RemoveItem(code string) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var target *catalog.Product
	for i := range c.lines {
		if !c.lines[i].Complimentary && c.lines[i].Product.Code == code {
			target = &c.lines[i].Product
			break
		}
	}
	if target == nil {
		return nil
	}

	removed := *target
	kept := c.lines[:0]
	for i := range c.lines {
		if !c.lines[i].Complimentary && c.lines[i].SameProduct(&removed) {
			continue
		}
		kept = append(kept, c.lines[i])
	}
	c.lines = kept

	events := []Event{ItemRemoved{Product: removed}}
	return append(events, c.recompute()...)
}

// SetQuantity sets the regular line's quantity. Zero or below removes the
// line entirely; it is never left at quantity zero. Stock is not enforced
// here, that is the caller's contract. Unknown codes are a no-op.
func (c *Cart) SetQuantity(code string, quantity int) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.lines {
		if !c.lines[i].Complimentary && c.lines[i].Product.Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	var events []Event
	if quantity <= 0 {
		removed := c.lines[idx].Product
		c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
		events = append(events, ItemRemoved{Product: removed})
	} else {
		c.lines[idx].Quantity = quantity
	}

	return append(events, c.recompute()...)
}

// Clear empties the cart, regular and complimentary lines alike, and
// zeroes the derived totals.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.totals = Totals{}
}

// Lines returns a copy of the current line collection.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLines(c.lines)
}

// Totals returns the derived amounts at the latest fixed point.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals
}

// Snapshot returns lines and totals consistently, under one lock hold.
func (c *Cart) Snapshot() ([]Line, Totals) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneLines(c.lines), c.totals
}

func (c *Cart) findRegular(p *catalog.Product) int {
	for i := range c.lines {
		if !c.lines[i].Complimentary && c.lines[i].SameProduct(p) {
			return i
		}
	}
	return -1
}

// recompute must be called with the lock held.
func (c *Cart) recompute() []Event {
	lines, totals, events := c.engine.Recompute(c.lines)
	c.lines = lines
	c.totals = totals
	return events
}

// CartRepository hands out the cart for a session, creating it on first
// use. Carts live in process memory for the lifetime of the service.
type CartRepository interface {
	Cart(sessionID string) *Cart
}
