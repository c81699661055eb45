package repository

import (
	"context"
	"errors"

	"github.com/nadimo15/pakomi-packaging/models"
	"gorm.io/gorm"
)

type gormOrders struct {
	db      *gorm.DB
	publish OrderEventFunc
}

// NewGormOrders builds the order store. publish may be nil; when set it
// receives an event after every successful write.
func NewGormOrders(db *gorm.DB, publish OrderEventFunc) OrderRepository {
	return &gormOrders{db: db, publish: publish}
}

func (r *gormOrders) Create(ctx context.Context, order *models.Order) error {
	if len(order.LineItems) == 0 {
		return models.ErrEmptyOrder
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	r.emit("created", order)
	return nil
}

func (r *gormOrders) Get(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrders) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Order("submitted_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *gormOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("LineItems").
		Order("submitted_at DESC").
		Find(&orders).Error
	return orders, err
}

// Update writes the order and its line items back in one transaction.
// Line items are replaced wholesale so removed rows do not linger, and
// the per-order transaction keeps concurrent admin edits from
// interleaving lost updates.
func (r *gormOrders) Update(ctx context.Context, order *models.Order) error {
	if len(order.LineItems) == 0 {
		return models.ErrEmptyOrder
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.OrderLineItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	})
	if err != nil {
		return err
	}
	r.emit("updated", order)
	return nil
}

func (r *gormOrders) emit(eventType string, order *models.Order) {
	if r.publish != nil {
		r.publish(OrderEvent{Type: eventType, Order: *order})
	}
}
