// Package repository holds the persistence ports and their GORM
// implementations. Business logic depends only on the interfaces, so it
// never assumes a particular storage technology.
package repository

import (
	"context"
	"errors"

	"github.com/nadimo15/pakomi-packaging/models"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
)

// CatalogRepository reads and manages products and their sizes.
type CatalogRepository interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductSizes(ctx context.Context) (map[string][]models.ProductSize, error)
	SizesForProduct(ctx context.Context, productType string) ([]models.ProductSize, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	SaveSize(ctx context.Context, size *models.ProductSize) error
	DeleteSize(ctx context.Context, sizeID string) error
}

// CartRepository stores in-progress product configurations per user.
type CartRepository interface {
	ItemsForUser(ctx context.Context, userID string) ([]models.CartItem, error)
	Item(ctx context.Context, userID, cartItemID string) (*models.CartItem, error)
	Save(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, userID, cartItemID string) error
	Clear(ctx context.Context, userID string) error
}

// OrderRepository persists orders and their line-item snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, orderID string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

// OrderEvent is emitted by the persistence layer whenever an order is
// written, so other views (admin dashboards) can refresh.
type OrderEvent struct {
	Type  string       `json:"type"` // "created" or "updated"
	Order models.Order `json:"order"`
}

// OrderEventFunc receives order events. Subscribers must not block.
type OrderEventFunc func(OrderEvent)
