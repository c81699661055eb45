// Package service implements the order lifecycle: creation from cart
// items, status transitions with their shipping and notification side
// effects, bulk transitions, and admin line-item edits.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/nadimo15/pakomi-packaging/notify"
	"github.com/nadimo15/pakomi-packaging/repository"
	"github.com/nadimo15/pakomi-packaging/shipping"
	"go.uber.org/zap"
)

type OrderService struct {
	orders  repository.OrderRepository
	carts   repository.CartRepository
	notify  notify.Notifier
	shipper shipping.Client
	logger  *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	notifier notify.Notifier,
	shipper shipping.Client,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:  orders,
		carts:   carts,
		notify:  notifier,
		shipper: shipper,
		logger:  logger,
	}
}

// newOrderRef generates a reference like PKM-4F7A2C.
func newOrderRef() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "PKM-" + token[:6]
}

// CreateOrder converts the cart items into an order of frozen line-item
// snapshots. Prices are NOT recomputed here: the unit price frozen at
// add-to-cart time is the price the buyer committed to, and catalog
// changes after that moment must not alter it. The buyer's cart is
// cleared and a confirmation email is sent best-effort.
func (s *OrderService) CreateOrder(ctx context.Context, details models.ClientDetails, cartItems []models.CartItem, userID string) (*models.Order, error) {
	if len(cartItems) == 0 {
		return nil, models.ErrEmptyOrder
	}

	lineItems := make([]models.OrderLineItem, 0, len(cartItems))
	for _, item := range cartItems {
		lineItems = append(lineItems, models.BuildLineItem(item))
	}

	order := &models.Order{
		ID:          newOrderRef(),
		SubmittedAt: time.Now(),
		ClientName:  details.ClientName,
		Phone:       details.Phone,
		Email:       details.Email,
		Address:     details.Address,
		Wilaya:      details.Wilaya,
		Commune:     details.Commune,
		Socials:     details.Socials,
		LineItems:   lineItems,
		Status:      models.OrderStatusPending,
		UserID:      userID,
	}
	order.Recalculate()

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if userID != "" {
		if err := s.carts.Clear(ctx, userID); err != nil {
			s.logger.Warn("failed to clear cart after checkout",
				zap.String("order_id", order.ID),
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}

	if err := s.notify.SendOrderConfirmation(ctx, order); err != nil {
		s.logger.Error("order confirmation dispatch failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}

	return order, nil
}

// UpdateOrderStatus applies a status transition. Transitions are not
// restricted to the timeline ordering: an admin may set any status
// directly. Entering Shipped runs the carrier handoff first, and the
// shipment notification fires exactly once, only when the prior status
// was not already Shipped.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, newStatus models.OrderStatus, info *models.ShippingInfo) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	prevStatus := order.Status

	if newStatus == models.OrderStatusShipped && info != nil && info.Carrier != "" {
		resolved, err := s.resolveShipment(ctx, order, info)
		if err != nil {
			return nil, err
		}
		order.ShippingInfo = resolved
	}

	order.Status = newStatus
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if newStatus == models.OrderStatusShipped && prevStatus != models.OrderStatusShipped {
		s.notifyShipped(ctx, order)
	}

	return order, nil
}

// resolveShipment makes sure a tracking number exists before the order
// may be marked shipped. Manual carriers require a human-entered number;
// integrated carriers get one from the carrier API. Any failure here
// leaves the order in its prior status.
func (s *OrderService) resolveShipment(ctx context.Context, order *models.Order, info *models.ShippingInfo) (*models.ShippingInfo, error) {
	carrier, ok := shipping.FindCarrier(info.Carrier)
	if !ok {
		return nil, fmt.Errorf("unknown carrier: %s", info.Carrier)
	}

	tracking := strings.TrimSpace(info.TrackingNumber)
	if !carrier.Integrated() && tracking == "" {
		return nil, shipping.ErrMissingTrackingNumber
	}
	if carrier.Integrated() && tracking == "" {
		created, err := s.shipper.CreateShipment(ctx, order, carrier)
		if err != nil {
			return nil, fmt.Errorf("create shipment with %s: %w", carrier.Name, err)
		}
		tracking = created
	}

	now := time.Now()
	return &models.ShippingInfo{
		Carrier:        carrier.Name,
		TrackingNumber: tracking,
		ShippedAt:      &now,
	}, nil
}

// BulkUpdateOrderStatus applies the transition to each order
// independently. A failure on one order is logged and skipped; the
// remaining orders are still processed. Orders entering Shipped get the
// same notification side effect as a single update, degrading gracefully
// when shipping info is absent. Returns the number of orders updated.
func (s *OrderService) BulkUpdateOrderStatus(ctx context.Context, orderIDs []string, newStatus models.OrderStatus) int {
	updated := 0
	for _, orderID := range orderIDs {
		order, err := s.orders.Get(ctx, orderID)
		if err != nil {
			s.logger.Warn("bulk status update: skipping order",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
			continue
		}
		prevStatus := order.Status

		order.Status = newStatus
		if err := s.orders.Update(ctx, order); err != nil {
			s.logger.Warn("bulk status update: failed to save order",
				zap.String("order_id", orderID),
				zap.Error(err),
			)
			continue
		}
		updated++

		if newStatus == models.OrderStatusShipped && prevStatus != models.OrderStatusShipped {
			s.notifyShipped(ctx, order)
		}
	}
	return updated
}

// UpdateOrderItems replaces an order's line items and rewrites its
// totals. Emptying an order is rejected; totals are never left stale.
func (s *OrderService) UpdateOrderItems(ctx context.Context, orderID string, items []models.OrderLineItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyOrder
	}

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	order.LineItems = items
	order.Recalculate()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RefreshTracking asks the carrier API for the shipment's current state
// and applies it. Failures are surfaced and never mutate the order.
func (s *OrderService) RefreshTracking(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ShippingInfo == nil {
		return nil, fmt.Errorf("order %s has no shipping info", orderID)
	}
	carrier, ok := shipping.FindCarrier(order.ShippingInfo.Carrier)
	if !ok {
		return nil, fmt.Errorf("unknown carrier: %s", order.ShippingInfo.Carrier)
	}

	status, lastUpdate, err := s.shipper.TrackShipment(ctx, order, carrier)
	if err != nil {
		return nil, err
	}

	order.Status = status
	order.ShippingInfo.LastUpdate = &lastUpdate
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// notifyShipped dispatches the shipment notification. Notification is
// best-effort: the status change is the source of truth and a dispatch
// failure must never propagate to the caller.
func (s *OrderService) notifyShipped(ctx context.Context, order *models.Order) {
	if err := s.notify.SendShipmentNotification(ctx, order); err != nil {
		s.logger.Error("shipment notification dispatch failed",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}
