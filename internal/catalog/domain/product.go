package domain

import (
	"time"
)

// Product represents a catalog product. Products are owned by the upstream
// catalog; this service keeps a local cache of the last fetched state.
type Product struct {
	Code        string   `json:"code" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"not null"`
	UnitPrice   float64  `json:"unit_price" gorm:"not null"`
	Stock       int      `json:"stock" gorm:"not null;default:0"`
	Category    string   `json:"category,omitempty" gorm:"index"`
	ImageRef    string   `json:"image_ref,omitempty"`
	CatalogID   *int     `json:"catalog_id,omitempty" gorm:"index"`
	Description string   `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if the product is in stock
func (p *Product) IsAvailable() bool {
	return p.Stock > 0
}

// SameAs reports whether two products are the same logical product:
// matching code, or matching catalog id when both carry one. Products
// without a catalog id never match on the id signal.
func (p *Product) SameAs(other *Product) bool {
	if p.Code != "" && p.Code == other.Code {
		return true
	}
	if p.CatalogID != nil && other.CatalogID != nil && *p.CatalogID == *other.CatalogID {
		return true
	}
	return false
}

// ProductRepository defines the contract for the local product cache
type ProductRepository interface {
	Upsert(product *Product) error
	FindByCode(code string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(category string, limit, offset int) ([]Product, error)
	Search(query string, limit, offset int) ([]Product, error)
	Count() (int64, error)
	DecrementStock(code string, quantity int) error
}
