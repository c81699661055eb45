package shipping

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/nadimo15/pakomi-packaging/models"
	"go.uber.org/zap"
)

var (
	// ErrNotIntegrated means the carrier has no API and shipments must be
	// entered manually.
	ErrNotIntegrated = errors.New("carrier does not support API integration")

	// ErrMissingTrackingNumber means a manual-tracking carrier was chosen
	// without supplying a tracking number.
	ErrMissingTrackingNumber = errors.New("tracking number is required for this carrier")
)

// Client creates and tracks shipments with integrated carriers.
type Client interface {
	CreateShipment(ctx context.Context, order *models.Order, carrier Carrier) (trackingNumber string, err error)
	TrackShipment(ctx context.Context, order *models.Order, carrier Carrier) (status models.OrderStatus, lastUpdate time.Time, err error)
}

// mockClient simulates the carrier APIs. The create call simulates a
// transport failure and falls back to a generated placeholder tracking
// number so the demo flow never blocks.
// TODO: replace the fallback with operator-facing manual entry once a
// real carrier integration lands; a generated id is unsafe in production.
type mockClient struct {
	logger *zap.Logger
}

func NewMockClient(logger *zap.Logger) Client {
	return &mockClient{logger: logger}
}

func (m *mockClient) CreateShipment(ctx context.Context, order *models.Order, carrier Carrier) (string, error) {
	if !carrier.Integrated() {
		return "", ErrNotIntegrated
	}

	m.logger.Info("creating shipment",
		zap.String("order_id", order.ID),
		zap.String("carrier", carrier.Name),
		zap.String("url", carrier.API.CreateShipmentURL),
	)

	// Simulated transport failure on the carrier side.
	tracking := "MOCK-" + randomToken(8)
	m.logger.Warn("carrier API unreachable, using placeholder tracking number",
		zap.String("order_id", order.ID),
		zap.String("tracking_number", tracking),
	)
	return tracking, nil
}

func (m *mockClient) TrackShipment(ctx context.Context, order *models.Order, carrier Carrier) (models.OrderStatus, time.Time, error) {
	if !carrier.Integrated() {
		return "", time.Time{}, ErrNotIntegrated
	}
	if order.ShippingInfo == nil || order.ShippingInfo.TrackingNumber == "" {
		return "", time.Time{}, errors.New("order has no tracking number")
	}

	m.logger.Info("tracking shipment",
		zap.String("order_id", order.ID),
		zap.String("tracking_number", order.ShippingInfo.TrackingNumber),
	)

	status := order.Status
	if status == models.OrderStatusShipped && rand.Float64() > 0.7 {
		status = models.OrderStatusCompleted
	}
	return status, time.Now(), nil
}

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomToken(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(tokenAlphabet[rand.Intn(len(tokenAlphabet))])
	}
	return b.String()
}
