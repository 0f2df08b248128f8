package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
)

func hasEvent(events []Event, name string) bool {
	for _, e := range events {
		if e.EventName() == name {
			return true
		}
	}
	return false
}

func TestCart_AddSixColas_FreeColaAppears(t *testing.T) {
	cart := NewCart(testEngine())
	cola := colaProduct()

	var events []Event
	for i := 0; i < 6; i++ {
		events = cart.AddItem(cola)
	}

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 6, lines[0].Quantity)
	assert.True(t, lines[1].Complimentary)
	assert.Equal(t, 1, lines[1].Quantity)

	assert.True(t, hasEvent(events, "offer_applied"))

	totals := cart.Totals()
	assert.InDelta(t, 0.94, totals.Discount, 1e-9)
}

func TestCart_RemoveCola_FreeColaDisappears(t *testing.T) {
	cart := NewCart(testEngine())
	cola := colaProduct()

	for i := 0; i < 6; i++ {
		cart.AddItem(cola)
	}
	require.Len(t, cart.Lines(), 2)

	events := cart.SetQuantity(cola.Code, 5)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Complimentary)
	assert.Equal(t, 5, lines[0].Quantity)

	assert.True(t, hasEvent(events, "offer_removed"))
	assert.Zero(t, cart.Totals().Discount)
}

func TestCart_ThreeCroissants_FallbackCoffeeSynthesized(t *testing.T) {
	cart := NewCart(testEngine())
	croissant := croissantProduct()

	for i := 0; i < 3; i++ {
		cart.AddItem(croissant)
	}

	lines := cart.Lines()
	require.Len(t, lines, 2)
	free := lines[1]
	assert.True(t, free.Complimentary)
	assert.Equal(t, "coffee-free", free.Product.Code)
	assert.Equal(t, 1, free.Quantity)

	totals := cart.Totals()
	assert.InDelta(t, 2.99, totals.Discount, 1e-9)
	assert.InDelta(t, 3*1.25-2.99, totals.Total, 1e-9)
}

func TestCart_SetQuantityZero_RemovesLine(t *testing.T) {
	cart := NewCart(testEngine())
	cola := colaProduct()

	cart.AddItem(cola)
	events := cart.SetQuantity(cola.Code, 0)

	assert.Empty(t, cart.Lines())
	assert.True(t, hasEvent(events, "item_removed"))
	assert.Equal(t, Totals{}, cart.Totals())
}

func TestCart_AddAtStockLevel_RefusedWithEvent(t *testing.T) {
	cart := NewCart(testEngine())
	scarce := catalog.Product{Code: "s1", Name: "Rare Honey", UnitPrice: 7.50, Stock: 2}

	cart.AddItem(scarce)
	cart.AddItem(scarce)
	events := cart.AddItem(scarce)

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity, "quantity must not pass the stock level")

	require.Len(t, events, 1)
	limit, ok := events[0].(StockLimitReached)
	require.True(t, ok)
	assert.Equal(t, 2, limit.Stock)
	assert.False(t, hasEvent(events, "item_added"))
}

func TestCart_AddOutOfStockProduct_Refused(t *testing.T) {
	cart := NewCart(testEngine())
	gone := catalog.Product{Code: "g1", Name: "Sold Out Jam", UnitPrice: 3.00, Stock: 0}

	events := cart.AddItem(gone)

	assert.Empty(t, cart.Lines())
	require.Len(t, events, 1)
	assert.Equal(t, "stock_limit_reached", events[0].EventName())
}

func TestCart_Clear_EmptiesEverything(t *testing.T) {
	cart := NewCart(testEngine())
	cola := colaProduct()

	for i := 0; i < 6; i++ {
		cart.AddItem(cola)
	}
	require.Len(t, cart.Lines(), 2)

	cart.Clear()

	assert.Empty(t, cart.Lines())
	assert.Equal(t, Totals{}, cart.Totals())
}

func TestCart_RemoveItem_DropsDuplicateIdentityLines(t *testing.T) {
	cart := NewCart(testEngine())

	id := 7
	a := catalog.Product{Code: "a1", Name: "Sparkling Water", UnitPrice: 1.10, Stock: 10, CatalogID: &id}
	b := catalog.Product{Code: "b1", Name: "Sparkling Water 500ml", UnitPrice: 1.10, Stock: 10, CatalogID: &id}
	other := catalog.Product{Code: "c1", Name: "Banana", UnitPrice: 0.30, Stock: 10}

	cart.AddItem(a)
	// Same catalog id folds into the existing line rather than a new one.
	cart.AddItem(b)
	cart.AddItem(other)
	require.Len(t, cart.Lines(), 2)

	events := cart.RemoveItem("a1")

	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "c1", lines[0].Product.Code)
	assert.True(t, hasEvent(events, "item_removed"))
}

func TestCart_RemoveUnknownCode_NoOp(t *testing.T) {
	cart := NewCart(testEngine())
	cart.AddItem(colaProduct())

	events := cart.RemoveItem("nope")

	assert.Nil(t, events)
	require.Len(t, cart.Lines(), 1)
}

func TestCart_SetQuantityUnknownCode_NoOp(t *testing.T) {
	cart := NewCart(testEngine())

	events := cart.SetQuantity("nope", 3)

	assert.Nil(t, events)
	assert.Empty(t, cart.Lines())
}

func TestCart_SetQuantityJumpsPromotionTiers(t *testing.T) {
	cart := NewCart(testEngine())
	cola := colaProduct()

	cart.AddItem(cola)
	events := cart.SetQuantity(cola.Code, 12)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.True(t, hasEvent(events, "offer_applied"))
}

func TestCart_SameEndStateSameTotals(t *testing.T) {
	// Different mutation orders ending in the same regular-line state must
	// derive the same totals and the same synthetic lines.
	cola := colaProduct()
	croissant := croissantProduct()

	first := NewCart(testEngine())
	for i := 0; i < 6; i++ {
		first.AddItem(cola)
	}
	for i := 0; i < 3; i++ {
		first.AddItem(croissant)
	}

	second := NewCart(testEngine())
	second.AddItem(croissant)
	second.AddItem(cola)
	second.SetQuantity(croissant.Code, 3)
	second.SetQuantity(cola.Code, 9)
	second.SetQuantity(cola.Code, 6)

	assert.Equal(t, first.Totals(), second.Totals())

	firstFree := map[string]int{}
	for _, line := range first.Lines() {
		if line.Complimentary {
			firstFree[line.Product.Code] = line.Quantity
		}
	}
	secondFree := map[string]int{}
	for _, line := range second.Lines() {
		if line.Complimentary {
			secondFree[line.Product.Code] = line.Quantity
		}
	}
	assert.Equal(t, firstFree, secondFree)
}

func TestCart_SnapshotConsistent(t *testing.T) {
	cart := NewCart(testEngine())
	cola := colaProduct()

	for i := 0; i < 6; i++ {
		cart.AddItem(cola)
	}

	lines, totals := cart.Snapshot()
	require.Len(t, lines, 2)
	assert.InDelta(t, 6*0.94, totals.Subtotal, 1e-9)
	assert.InDelta(t, 0.94, totals.Discount, 1e-9)
}
