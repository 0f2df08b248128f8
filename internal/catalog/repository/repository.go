package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshcart/storefront/internal/catalog/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// Upsert inserts the product or refreshes the cached row on conflict.
func (r *GormProductRepository) Upsert(product *domain.Product) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "unit_price", "stock", "category",
			"image_ref", "catalog_id", "description", "rating", "updated_at",
		}),
	}).Create(product).Error
}

func (r *GormProductRepository) FindByCode(code string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.Where("code = ?", code).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Order("name").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("category = ?", category).Order("name").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Search(query string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	pattern := "%" + query + "%"
	err := r.db.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("name").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}

// DecrementStock reduces the cached stock level, flooring at zero.
func (r *GormProductRepository) DecrementStock(code string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	return r.db.Model(&domain.Product{}).
		Where("code = ?", code).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity)).Error
}
