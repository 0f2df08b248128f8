package domain

import (
	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

// Line is one entry in a cart: a quantity of a product, either paid for
// by the shopper (regular) or granted by a promotion (complimentary).
// Complimentary lines are owned entirely by the promotion engine; user
// mutations never touch them directly.
type Line struct {
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	Complimentary bool            `json:"complimentary"`
}

// SameProduct reports whether the line refers to the given product under
// the product identity rule (matching code, or matching catalog id).
func (l *Line) SameProduct(p *catalog.Product) bool {
	return l.Product.SameAs(p)
}

// Totals holds the derived money amounts for a cart at its current fixed
// point. Subtotal covers regular lines only; Discount is the value of all
// promotion-granted items; Total is Subtotal minus Discount, floored at 0.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
