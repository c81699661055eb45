package repository

import (
	"context"
	"errors"

	"github.com/nadimo15/pakomi-packaging/models"
	"gorm.io/gorm"
)

type gormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) CatalogRepository {
	return &gormCatalog{db: db}
}

func (r *gormCatalog) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Colors").
		Preload("Sizes").
		Preload("Sizes.Pricing").
		Find(&products).Error
	return products, err
}

func (r *gormCatalog) ProductSizes(ctx context.Context) (map[string][]models.ProductSize, error) {
	var sizes []models.ProductSize
	if err := r.db.WithContext(ctx).Preload("Pricing").Find(&sizes).Error; err != nil {
		return nil, err
	}
	byProduct := make(map[string][]models.ProductSize)
	for _, size := range sizes {
		byProduct[size.ProductID] = append(byProduct[size.ProductID], size)
	}
	return byProduct, nil
}

func (r *gormCatalog) SizesForProduct(ctx context.Context, productType string) ([]models.ProductSize, error) {
	var sizes []models.ProductSize
	err := r.db.WithContext(ctx).
		Preload("Pricing").
		Where("product_id = ?", productType).
		Find(&sizes).Error
	return sizes, err
}

func (r *gormCatalog) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *gormCatalog) DeleteProduct(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// SaveSize replaces the size's tiers wholesale so stale tiers never linger.
// Existing orders are unaffected: their line items carry frozen prices.
func (r *gormCatalog) SaveSize(ctx context.Context, size *models.ProductSize) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_size_id = ?", size.ID).
			Delete(&models.PriceTier{}).Error; err != nil {
			return err
		}
		return tx.Save(size).Error
	})
}

func (r *gormCatalog) DeleteSize(ctx context.Context, sizeID string) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductSize{}, "id = ?", sizeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("size not found")
	}
	return nil
}
