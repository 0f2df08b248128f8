package domain

import (
	"strings"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

// Matcher identifies the product group a promotion applies to. A product
// matches when its catalog id is one of CatalogIDs, or when its lowercased
// name contains Keyword. Products without a catalog id simply never match
// the id signal; the keyword check is the degraded-data fallback for them.
type Matcher struct {
	Keyword    string `json:"keyword,omitempty"`
	CatalogIDs []int  `json:"catalog_ids,omitempty"`
}

// Match reports whether the product belongs to the matcher's group.
func (m Matcher) Match(p *catalog.Product) bool {
	if p.CatalogID != nil {
		for _, id := range m.CatalogIDs {
			if *p.CatalogID == id {
				return true
			}
		}
	}
	if m.Keyword != "" && strings.Contains(strings.ToLower(p.Name), m.Keyword) {
		return true
	}
	return false
}

// Promotion maps a quantity of a trigger product to free units of a reward
// product. Every Ratio regular units of the trigger earn one reward unit.
type Promotion struct {
	// Name labels the promotion in offer events.
	Name string

	// Ratio is the buy-N-get-1 threshold; one free unit per full Ratio
	// regular units of the trigger product.
	Ratio int

	// Trigger selects the lines that count toward eligibility.
	Trigger Matcher

	// Reward selects the granted product. Nil means the trigger product
	// itself is the reward (volume promotion).
	Reward *Matcher

	// FallbackReward is synthesized when a cross-product promotion fires
	// but no instance of the reward product is in the cart. Without it
	// the promotion could never grant a product the shopper hasn't added.
	FallbackReward *catalog.Product
}

func (p *Promotion) rewardMatcher() Matcher {
	if p.Reward != nil {
		return *p.Reward
	}
	return p.Trigger
}

// DefaultPromotions returns the standing storefront offers: buy 6 cans of
// Coca-Cola get one free, and buy 3 croissants get a free coffee.
func DefaultPromotions() []Promotion {
	return []Promotion{
		{
			Name:    "Buy 6 Coca-Cola, get 1 free",
			Ratio:   6,
			Trigger: Matcher{Keyword: "coca-cola"},
		},
		{
			Name:    "Buy 3 croissants, get a free coffee",
			Ratio:   3,
			Trigger: Matcher{Keyword: "croissant"},
			Reward:  &Matcher{Keyword: "coffee"},
			FallbackReward: &catalog.Product{
				Code:      "coffee-free",
				Name:      "Coffee",
				UnitPrice: 2.99,
				Stock:     100,
				Category:  "drinks",
				ImageRef:  "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?auto=format&fit=crop&q=80&w=300",
			},
		},
	}
}

// Engine derives the promotionally-corrected line collection and totals
// from a cart's lines. Recompute is a pure function: it never mutates its
// input and recomputing its own output reproduces it exactly, so it can
// run after every mutation without oscillating.
type Engine struct {
	promotions []Promotion
}

// NewEngine creates a promotion engine evaluating the given promotions in
// order. Promotions are independent: no promotion's eligibility counts
// another's synthesized lines, so a single pass per promotion suffices.
func NewEngine(promotions []Promotion) *Engine {
	return &Engine{promotions: promotions}
}

// Recompute applies every promotion to the line collection and returns the
// corrected lines, the derived totals, and the offer events describing
// what changed. An empty cart short-circuits to all-zero totals.
func (e *Engine) Recompute(lines []Line) ([]Line, Totals, []Event) {
	if len(lines) == 0 {
		return nil, Totals{}, nil
	}

	out := cloneLines(lines)
	var events []Event
	var discount float64

	for i := range e.promotions {
		var d float64
		out, d, events = e.apply(&e.promotions[i], out, events)
		discount += d
	}

	var subtotal float64
	for _, line := range out {
		if !line.Complimentary {
			subtotal += line.Product.UnitPrice * float64(line.Quantity)
		}
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	return out, Totals{Subtotal: subtotal, Discount: discount, Total: total}, events
}

// apply reconciles one promotion against the lines: it updates, creates,
// or removes the promotion's complimentary line so that its quantity
// always equals the currently earned free count.
func (e *Engine) apply(promo *Promotion, lines []Line, events []Event) ([]Line, float64, []Event) {
	regularQty := 0
	for i := range lines {
		if !lines[i].Complimentary && promo.Trigger.Match(&lines[i].Product) {
			regularQty += lines[i].Quantity
		}
	}

	eligible := 0
	if promo.Ratio > 0 {
		eligible = regularQty / promo.Ratio
	}

	reward := promo.rewardMatcher()
	freeIdx := -1
	for i := range lines {
		if lines[i].Complimentary && reward.Match(&lines[i].Product) {
			freeIdx = i
			break
		}
	}

	if eligible == 0 {
		// A complimentary line with zero earned count must not exist.
		if freeIdx >= 0 {
			lines = append(lines[:freeIdx], lines[freeIdx+1:]...)
			events = append(events, OfferRemoved{Promotion: promo.Name})
		}
		return lines, 0, events
	}

	if freeIdx >= 0 {
		if lines[freeIdx].Quantity != eligible {
			lines[freeIdx].Quantity = eligible
			events = append(events, OfferUpdated{Promotion: promo.Name, FreeCount: eligible})
		}
		return lines, lines[freeIdx].Product.UnitPrice * float64(eligible), events
	}

	rewardProduct, ok := e.rewardProduct(promo, lines)
	if !ok {
		return lines, 0, events
	}

	lines = append(lines, Line{Product: rewardProduct, Quantity: eligible, Complimentary: true})
	events = append(events, OfferApplied{Promotion: promo.Name, FreeCount: eligible})
	return lines, rewardProduct.UnitPrice * float64(eligible), events
}

// rewardProduct picks the product to grant: the trigger product itself for
// volume promotions, an in-cart instance of the reward product for
// cross-product promotions, or the promotion's fallback description when
// the reward product was never independently added.
func (e *Engine) rewardProduct(promo *Promotion, lines []Line) (catalog.Product, bool) {
	if promo.Reward == nil {
		for i := range lines {
			if !lines[i].Complimentary && promo.Trigger.Match(&lines[i].Product) {
				return lines[i].Product, true
			}
		}
		return catalog.Product{}, false
	}

	for i := range lines {
		if !lines[i].Complimentary && promo.Reward.Match(&lines[i].Product) {
			return lines[i].Product, true
		}
	}

	if promo.FallbackReward != nil {
		return *promo.FallbackReward, true
	}
	return catalog.Product{}, false
}
