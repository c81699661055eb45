package repository

import (
	"context"
	"errors"

	"github.com/nadimo15/pakomi-packaging/models"
	"gorm.io/gorm"
)

type gormCart struct {
	db *gorm.DB
}

func NewGormCart(db *gorm.DB) CartRepository {
	return &gormCart{db: db}
}

func (r *gormCart) ItemsForUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&items).Error
	return items, err
}

func (r *gormCart) Item(ctx context.Context, userID, cartItemID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND cart_item_id = ?", userID, cartItemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("cart item not found")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormCart) Save(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *gormCart) Delete(ctx context.Context, userID, cartItemID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND cart_item_id = ?", userID, cartItemID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("cart item not found")
	}
	return nil
}

func (r *gormCart) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
