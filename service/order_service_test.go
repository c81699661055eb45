package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/nadimo15/pakomi-packaging/pricing"
	"github.com/nadimo15/pakomi-packaging/repository"
	"github.com/nadimo15/pakomi-packaging/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory fakes ----

type memOrders struct {
	orders map[string]*models.Order
}

func newMemOrders(orders ...*models.Order) *memOrders {
	m := &memOrders{orders: make(map[string]*models.Order)}
	for _, o := range orders {
		clone := *o
		m.orders[o.ID] = &clone
	}
	return m
}

func (m *memOrders) Create(ctx context.Context, order *models.Order) error {
	if len(order.LineItems) == 0 {
		return models.ErrEmptyOrder
	}
	clone := *order
	m.orders[order.ID] = &clone
	return nil
}

func (m *memOrders) Get(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (m *memOrders) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) Update(ctx context.Context, order *models.Order) error {
	if len(order.LineItems) == 0 {
		return models.ErrEmptyOrder
	}
	if _, ok := m.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	clone := *order
	m.orders[order.ID] = &clone
	return nil
}

type memCarts struct {
	items map[string][]models.CartItem
}

func newMemCarts() *memCarts {
	return &memCarts{items: make(map[string][]models.CartItem)}
}

func (m *memCarts) ItemsForUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	return m.items[userID], nil
}

func (m *memCarts) Item(ctx context.Context, userID, cartItemID string) (*models.CartItem, error) {
	for _, item := range m.items[userID] {
		if item.CartItemID == cartItemID {
			return &item, nil
		}
	}
	return nil, errors.New("cart item not found")
}

func (m *memCarts) Save(ctx context.Context, item *models.CartItem) error {
	m.items[item.UserID] = append(m.items[item.UserID], *item)
	return nil
}

func (m *memCarts) Delete(ctx context.Context, userID, cartItemID string) error {
	return nil
}

func (m *memCarts) Clear(ctx context.Context, userID string) error {
	delete(m.items, userID)
	return nil
}

type fakeNotifier struct {
	confirmations []string
	shipments     []string
	err           error
	failNoEmail   bool
}

func (f *fakeNotifier) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, order.ID)
	return nil
}

func (f *fakeNotifier) SendShipmentNotification(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	if f.failNoEmail && order.Email == "" {
		return errors.New("order has no buyer email")
	}
	f.shipments = append(f.shipments, order.ID)
	return nil
}

type fakeShipper struct {
	tracking string
	err      error
	calls    int
}

func (f *fakeShipper) CreateShipment(ctx context.Context, order *models.Order, carrier shipping.Carrier) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.tracking, nil
}

func (f *fakeShipper) TrackShipment(ctx context.Context, order *models.Order, carrier shipping.Carrier) (models.OrderStatus, time.Time, error) {
	return models.OrderStatusCompleted, time.Now(), nil
}

// ---- helpers ----

func cartonCartItem(qty int) models.CartItem {
	return models.CartItem{
		CartItemID:  "item-1",
		UserID:      "user-1",
		ProductType: "cartonBox",
		ProductName: "Carton Box",
		Width:       15, Height: 10, Depth: 5,
		Quantity:   qty,
		ClientName: "Amine",
		Phone:      "0550 12 34 56",
		Email:      "amine@example.com",
		UnitPrice:  1.2,
		ItemWeight: 50,
	}
}

func clientDetails() models.ClientDetails {
	return models.ClientDetails{
		ClientName: "Amine",
		Phone:      "0550 12 34 56",
		Email:      "amine@example.com",
		Address:    "Rue Didouche Mourad",
		Wilaya:     "Alger",
		Commune:    "Alger Centre",
	}
}

func newService(orders *memOrders, notifier *fakeNotifier, shipper *fakeShipper) (*OrderService, *memCarts) {
	carts := newMemCarts()
	return NewOrderService(orders, carts, notifier, shipper, zap.NewNop()), carts
}

func pendingOrder(id, email string) *models.Order {
	return &models.Order{
		ID:          id,
		SubmittedAt: time.Now(),
		ClientName:  "Amine",
		Email:       email,
		LineItems:   []models.OrderLineItem{{ProductType: "cartonBox", Quantity: 75, UnitPrice: 1.2, ItemWeight: 50}},
		TotalPrice:  90,
		TotalWeight: 3750,
		Status:      models.OrderStatusPending,
	}
}

// ---- tests ----

func TestCreateOrderEmptyCart(t *testing.T) {
	orders := newMemOrders()
	svc, _ := newService(orders, &fakeNotifier{}, &fakeShipper{})

	_, err := svc.CreateOrder(context.Background(), clientDetails(), nil, "user-1")
	assert.ErrorIs(t, err, models.ErrEmptyOrder)
	assert.Empty(t, orders.orders)
}

func TestCreateOrderTotalsAndConfirmation(t *testing.T) {
	orders := newMemOrders()
	notifier := &fakeNotifier{}
	svc, carts := newService(orders, notifier, &fakeShipper{})
	require.NoError(t, carts.Save(context.Background(), &models.CartItem{CartItemID: "item-1", UserID: "user-1"}))

	items := []models.CartItem{cartonCartItem(75), {
		CartItemID: "item-2", UserID: "user-1",
		ProductType: "paperBag", Quantity: 200, UnitPrice: 0.8, ItemWeight: 25,
	}}
	order, err := svc.CreateOrder(context.Background(), clientDetails(), items, "user-1")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 1.2*75+0.8*200, order.TotalPrice)
	assert.Equal(t, 50.0*75+25.0*200, order.TotalWeight)
	assert.Len(t, order.LineItems, 2)
	assert.Equal(t, []string{order.ID}, notifier.confirmations)

	// Cart cleared on checkout.
	remaining, _ := carts.ItemsForUser(context.Background(), "user-1")
	assert.Empty(t, remaining)
}

func TestCreateOrderPriceLock(t *testing.T) {
	// Freeze the price at add-to-cart time through the calculator.
	size := models.ProductSize{
		ID: "box-15x10x5", Width: 15, Height: 10, Depth: 5, Weight: 50,
		Pricing: []models.PriceTier{{MinQuantity: 50, Price: 1.2}, {MinQuantity: 200, Price: 1.0}},
	}
	quote := pricing.Calculate(15, 10, 5, 75, []models.ProductSize{size})
	require.NotNil(t, quote.PricePerItem)

	item := cartonCartItem(75)
	item.UnitPrice = *quote.PricePerItem
	item.ItemWeight = *quote.ItemWeight

	orders := newMemOrders()
	svc, _ := newService(orders, &fakeNotifier{}, &fakeShipper{})
	order, err := svc.CreateOrder(context.Background(), clientDetails(), []models.CartItem{item}, "user-1")
	require.NoError(t, err)

	// Catalog pricing changes after order creation.
	size.Pricing[0].Price = 9.9

	stored, err := orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1.2, stored.LineItems[0].UnitPrice)
	assert.Equal(t, 90.0, stored.TotalPrice)
}

func TestShippedNotificationFiresOnce(t *testing.T) {
	orders := newMemOrders(pendingOrder("PKM-AAA111", "amine@example.com"))
	notifier := &fakeNotifier{}
	svc, _ := newService(orders, notifier, &fakeShipper{})

	info := &models.ShippingInfo{Carrier: "Yalidine", TrackingNumber: "YAL-12345"}
	order, err := svc.UpdateOrderStatus(context.Background(), "PKM-AAA111", models.OrderStatusShipped, info)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	require.NotNil(t, order.ShippingInfo)
	assert.Equal(t, "YAL-12345", order.ShippingInfo.TrackingNumber)
	assert.Equal(t, []string{"PKM-AAA111"}, notifier.shipments)

	// Idempotent resubmission: Shipped -> Shipped fires nothing.
	_, err = svc.UpdateOrderStatus(context.Background(), "PKM-AAA111", models.OrderStatusShipped, info)
	require.NoError(t, err)
	assert.Equal(t, []string{"PKM-AAA111"}, notifier.shipments)
}

func TestManualCarrierRequiresTrackingNumber(t *testing.T) {
	orders := newMemOrders(pendingOrder("PKM-BBB222", "amine@example.com"))
	notifier := &fakeNotifier{}
	svc, _ := newService(orders, notifier, &fakeShipper{})

	info := &models.ShippingInfo{Carrier: "Yalidine"}
	_, err := svc.UpdateOrderStatus(context.Background(), "PKM-BBB222", models.OrderStatusShipped, info)
	assert.ErrorIs(t, err, shipping.ErrMissingTrackingNumber)

	// No state change, no notification.
	stored, _ := orders.Get(context.Background(), "PKM-BBB222")
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Nil(t, stored.ShippingInfo)
	assert.Empty(t, notifier.shipments)
}

func TestIntegratedCarrierRequestsTracking(t *testing.T) {
	orders := newMemOrders(pendingOrder("PKM-CCC333", "amine@example.com"))
	shipper := &fakeShipper{tracking: "MOCK-1A2B3C4D"}
	svc, _ := newService(orders, &fakeNotifier{}, shipper)

	info := &models.ShippingInfo{Carrier: "ZR Express"}
	order, err := svc.UpdateOrderStatus(context.Background(), "PKM-CCC333", models.OrderStatusShipped, info)
	require.NoError(t, err)
	assert.Equal(t, 1, shipper.calls)
	require.NotNil(t, order.ShippingInfo)
	assert.Equal(t, "MOCK-1A2B3C4D", order.ShippingInfo.TrackingNumber)
	assert.NotNil(t, order.ShippingInfo.ShippedAt)
}

func TestShipperFailureLeavesOrderUntouched(t *testing.T) {
	orders := newMemOrders(pendingOrder("PKM-DDD444", "amine@example.com"))
	shipper := &fakeShipper{err: errors.New("carrier API down")}
	notifier := &fakeNotifier{}
	svc, _ := newService(orders, notifier, shipper)

	info := &models.ShippingInfo{Carrier: "ZR Express"}
	_, err := svc.UpdateOrderStatus(context.Background(), "PKM-DDD444", models.OrderStatusShipped, info)
	require.Error(t, err)

	stored, _ := orders.Get(context.Background(), "PKM-DDD444")
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Empty(t, notifier.shipments)
}

func TestNotificationFailureDoesNotAbortTransition(t *testing.T) {
	orders := newMemOrders(pendingOrder("PKM-EEE555", "amine@example.com"))
	notifier := &fakeNotifier{err: errors.New("smtp unreachable")}
	svc, _ := newService(orders, notifier, &fakeShipper{})

	info := &models.ShippingInfo{Carrier: "Yalidine", TrackingNumber: "YAL-777"}
	order, err := svc.UpdateOrderStatus(context.Background(), "PKM-EEE555", models.OrderStatusShipped, info)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
}

func TestBulkUpdateIsolation(t *testing.T) {
	// Three orders: one is missing entirely, one has no buyer email so
	// its notification fails. Both failures stay isolated.
	orders := newMemOrders(
		pendingOrder("PKM-FFF666", "amine@example.com"),
		pendingOrder("PKM-GGG777", ""),
	)
	notifier := &fakeNotifier{failNoEmail: true}
	svc, _ := newService(orders, notifier, &fakeShipper{})

	updated := svc.BulkUpdateOrderStatus(
		context.Background(),
		[]string{"PKM-FFF666", "PKM-MISSING", "PKM-GGG777"},
		models.OrderStatusShipped,
	)
	assert.Equal(t, 2, updated)

	for _, id := range []string{"PKM-FFF666", "PKM-GGG777"} {
		stored, err := orders.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, stored.Status)
	}
	assert.Equal(t, []string{"PKM-FFF666"}, notifier.shipments)
}

func TestBulkUpdateSkipsNotificationWhenAlreadyShipped(t *testing.T) {
	shipped := pendingOrder("PKM-HHH888", "amine@example.com")
	shipped.Status = models.OrderStatusShipped
	orders := newMemOrders(shipped)
	notifier := &fakeNotifier{}
	svc, _ := newService(orders, notifier, &fakeShipper{})

	updated := svc.BulkUpdateOrderStatus(context.Background(), []string{"PKM-HHH888"}, models.OrderStatusShipped)
	assert.Equal(t, 1, updated)
	assert.Empty(t, notifier.shipments)
}

func TestUpdateOrderItemsRecalculatesTotals(t *testing.T) {
	orders := newMemOrders(pendingOrder("PKM-JJJ999", "amine@example.com"))
	svc, _ := newService(orders, &fakeNotifier{}, &fakeShipper{})

	items := []models.OrderLineItem{
		{ProductType: "cartonBox", Quantity: 100, UnitPrice: 1.0, ItemWeight: 50},
		{ProductType: "mailer", Quantity: 40, UnitPrice: 2.5, ItemWeight: 80},
	}
	order, err := svc.UpdateOrderItems(context.Background(), "PKM-JJJ999", items)
	require.NoError(t, err)
	assert.Equal(t, 1.0*100+2.5*40, order.TotalPrice)
	assert.Equal(t, 50.0*100+80.0*40, order.TotalWeight)

	_, err = svc.UpdateOrderItems(context.Background(), "PKM-JJJ999", nil)
	assert.ErrorIs(t, err, models.ErrEmptyOrder)

	// Totals from the rejected edit must not have leaked through.
	stored, _ := orders.Get(context.Background(), "PKM-JJJ999")
	assert.Len(t, stored.LineItems, 2)
}

func TestRefreshTracking(t *testing.T) {
	shipped := pendingOrder("PKM-KKK000", "amine@example.com")
	shipped.Status = models.OrderStatusShipped
	shipped.ShippingInfo = &models.ShippingInfo{Carrier: "ZR Express", TrackingNumber: "MOCK-11112222"}
	orders := newMemOrders(shipped)
	svc, _ := newService(orders, &fakeNotifier{}, &fakeShipper{})

	order, err := svc.RefreshTracking(context.Background(), "PKM-KKK000")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.ShippingInfo.LastUpdate)

	// Orders without shipping info cannot be refreshed.
	orders.orders["PKM-KKK000"].ShippingInfo = nil
	_, err = svc.RefreshTracking(context.Background(), "PKM-KKK000")
	assert.Error(t, err)
}
