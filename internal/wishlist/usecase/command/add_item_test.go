package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/freshcart/storefront/internal/catalog/domain"
	"github.com/freshcart/storefront/internal/wishlist/domain"
)

type fakeWishlistRepository struct {
	items []domain.Item
}

func (f *fakeWishlistRepository) Add(item *domain.Item) error {
	for _, existing := range f.items {
		if existing.SessionID == item.SessionID && existing.ProductCode == item.ProductCode {
			return nil
		}
	}
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeWishlistRepository) Remove(sessionID, productCode string) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.SessionID == sessionID && item.ProductCode == productCode {
			continue
		}
		kept = append(kept, item)
	}
	f.items = kept
	return nil
}

func (f *fakeWishlistRepository) ListBySession(sessionID string) ([]domain.Item, error) {
	var out []domain.Item
	for _, item := range f.items {
		if item.SessionID == sessionID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepository) Contains(sessionID, productCode string) (bool, error) {
	for _, item := range f.items {
		if item.SessionID == sessionID && item.ProductCode == productCode {
			return true, nil
		}
	}
	return false, nil
}

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

func TestAddWishlistItem_CopiesProductDetails(t *testing.T) {
	products := &fakeProductRepository{products: map[string]catalog.Product{
		"4": {Code: "4", Name: "Croissant", UnitPrice: 1.25, ImageRef: "http://img/croissant"},
	}}
	wishlist := &fakeWishlistRepository{}
	handler := NewAddItemHandler(wishlist, products)

	item, err := handler.Handle(AddItemCommand{SessionID: "sess-1", ProductCode: "4"})
	require.NoError(t, err)

	assert.Equal(t, "Croissant", item.ProductName)
	assert.InDelta(t, 1.25, item.UnitPrice, 1e-9)
	assert.Equal(t, "http://img/croissant", item.ImageRef)
	assert.Len(t, wishlist.items, 1)
}

func TestAddWishlistItem_UnknownProductRejected(t *testing.T) {
	handler := NewAddItemHandler(&fakeWishlistRepository{}, &fakeProductRepository{})

	_, err := handler.Handle(AddItemCommand{SessionID: "sess-1", ProductCode: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}

func TestAddWishlistItem_DuplicateIsIdempotent(t *testing.T) {
	products := &fakeProductRepository{products: map[string]catalog.Product{
		"4": {Code: "4", Name: "Croissant", UnitPrice: 1.25},
	}}
	wishlist := &fakeWishlistRepository{}
	handler := NewAddItemHandler(wishlist, products)

	_, err := handler.Handle(AddItemCommand{SessionID: "sess-1", ProductCode: "4"})
	require.NoError(t, err)
	_, err = handler.Handle(AddItemCommand{SessionID: "sess-1", ProductCode: "4"})
	require.NoError(t, err)

	assert.Len(t, wishlist.items, 1)
}

func TestAddWishlistItem_MissingFieldsRejected(t *testing.T) {
	handler := NewAddItemHandler(&fakeWishlistRepository{}, &fakeProductRepository{})

	_, err := handler.Handle(AddItemCommand{ProductCode: "4"})
	require.Error(t, err)

	_, err = handler.Handle(AddItemCommand{SessionID: "sess-1"})
	require.Error(t, err)
}

func TestRemoveWishlistItem(t *testing.T) {
	wishlist := &fakeWishlistRepository{items: []domain.Item{
		{SessionID: "sess-1", ProductCode: "4"},
		{SessionID: "sess-2", ProductCode: "4"},
	}}
	handler := NewRemoveItemHandler(wishlist)

	err := handler.Handle(RemoveItemCommand{SessionID: "sess-1", ProductCode: "4"})
	require.NoError(t, err)

	require.Len(t, wishlist.items, 1)
	assert.Equal(t, "sess-2", wishlist.items[0].SessionID)
}
