package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/freshcart/storefront/internal/wishlist/domain"
)

type GormWishlistRepository struct {
	db *gorm.DB
}

func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Item{})
}

// Add inserts the item; re-adding an already wishlisted product is a no-op.
func (r *GormWishlistRepository) Add(item *domain.Item) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(item).Error
}

func (r *GormWishlistRepository) Remove(sessionID, productCode string) error {
	return r.db.Where("session_id = ? AND product_code = ?", sessionID, productCode).
		Delete(&domain.Item{}).Error
}

func (r *GormWishlistRepository) ListBySession(sessionID string) ([]domain.Item, error) {
	var items []domain.Item
	err := r.db.Where("session_id = ?", sessionID).Order("created_at").Find(&items).Error
	return items, err
}

func (r *GormWishlistRepository) Contains(sessionID, productCode string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Item{}).
		Where("session_id = ? AND product_code = ?", sessionID, productCode).
		Count(&count).Error
	return count > 0, err
}
