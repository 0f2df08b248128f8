package domain

import (
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

// Event is a domain notification emitted by cart mutations and promotion
// reconciliation. Events are in-process only; the delivery layer decides
// how (and whether) to surface them to the shopper.
type Event interface {
	EventName() string
}

// ItemAdded fires when a regular line is created or incremented.
type ItemAdded struct {
	Product catalog.Product `json:"product"`
}

func (ItemAdded) EventName() string { return "item_added" }

// ItemRemoved fires when a regular line leaves the cart.
type ItemRemoved struct {
	Product catalog.Product `json:"product"`
}

func (ItemRemoved) EventName() string { return "item_removed" }

// StockLimitReached fires when an add is refused because the line already
// sits at the product's stock level. The add itself is a silent no-op.
type StockLimitReached struct {
	Product catalog.Product `json:"product"`
	Stock   int             `json:"stock"`
}

func (StockLimitReached) EventName() string { return "stock_limit_reached" }

// OfferApplied fires when a promotion synthesizes a new complimentary line.
type OfferApplied struct {
	Promotion string `json:"promotion"`
	FreeCount int    `json:"free_count"`
}

func (OfferApplied) EventName() string { return "offer_applied" }

// OfferUpdated fires when an existing complimentary line changes quantity.
type OfferUpdated struct {
	Promotion string `json:"promotion"`
	FreeCount int    `json:"free_count"`
}

func (OfferUpdated) EventName() string { return "offer_updated" }

// OfferRemoved fires when a promotion's eligibility drops to zero and its
// complimentary line is withdrawn.
type OfferRemoved struct {
	Promotion string `json:"promotion"`
}

func (OfferRemoved) EventName() string { return "offer_removed" }
