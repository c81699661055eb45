package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "Pending"       // Order placed, awaiting design work
	OrderStatusDesigning    OrderStatus = "Designing"     // Artwork being prepared
	OrderStatusPrinting     OrderStatus = "Printing"      // Logo/design being printed
	OrderStatusInProduction OrderStatus = "In Production" // Packaging being manufactured
	OrderStatusShipped      OrderStatus = "Shipped"       // Handed to carrier
	OrderStatusCompleted    OrderStatus = "Completed"     // Delivered to customer
	OrderStatusCancelled    OrderStatus = "Cancelled"     // Cancelled by admin
)

// OrderTimeline is the display ordering used for the progress view.
// It does not restrict transitions: admins may set any status directly.
var OrderTimeline = []OrderStatus{
	OrderStatusPending,
	OrderStatusDesigning,
	OrderStatusPrinting,
	OrderStatusInProduction,
	OrderStatusShipped,
	OrderStatusCompleted,
}

// ErrEmptyOrder rejects persisting an order with zero line items.
var ErrEmptyOrder = errors.New("order must contain at least one line item")

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	candidates := append([]OrderStatus{}, OrderTimeline...)
	candidates = append(candidates, OrderStatusCancelled)
	for _, s := range candidates {
		if strings.EqualFold(status, string(s)) {
			return s, nil
		}
	}
	return "", errors.New("invalid order status: " + status)
}

// IsTerminal reports whether the status ends the fulfillment lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ShippingInfo is the carrier handoff recorded when an order ships.
type ShippingInfo struct {
	Carrier        string     `json:"carrier"`
	TrackingNumber string     `json:"trackingNumber"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	LastUpdate     *time.Time `json:"lastUpdate,omitempty"`
}

// OrderLineItem is an immutable snapshot of one configured product within
// an order. UnitPrice and ItemWeight are carried over from the cart item
// and are never recalculated, even if catalog pricing changes later.
type OrderLineItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     string `gorm:"index" json:"-"`
	ProductType string `json:"productType"`
	ProductName string `json:"productName"`

	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Depth    float64 `json:"depth"`
	Quantity int     `json:"quantity"`

	Color       string         `json:"color"`
	LogoURL     string         `json:"logoUrl,omitempty"`
	LogoProps   LogoProperties `gorm:"embedded;embeddedPrefix:logo_" json:"logoProps"`
	Description string         `json:"description"`

	UnitPrice  float64 `json:"unitPrice"`
	ItemWeight float64 `json:"itemWeight"`
}

// ClientDetails are the buyer contact fields recorded on an order.
type ClientDetails struct {
	ClientName string  `json:"clientName" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Email      string  `json:"email"`
	Address    string  `json:"address"`
	Wilaya     string  `json:"wilaya"`
	Commune    string  `json:"commune"`
	Socials    Socials `json:"socials"`
}

type Order struct {
	ID          string    `gorm:"primaryKey" json:"id"` // e.g. PKM-4F7A2C
	SubmittedAt time.Time `json:"submittedAt"`

	ClientName string  `json:"clientName"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Address    string  `json:"address"`
	Wilaya     string  `json:"wilaya"`
	Commune    string  `json:"commune"`
	Socials    Socials `gorm:"embedded;embeddedPrefix:social_" json:"socials"`

	LineItems   []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lineItems"`
	TotalPrice  float64         `json:"totalPrice"`
	TotalWeight float64         `json:"totalWeight"` // grams

	Status       OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	ShippingInfo *ShippingInfo `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingInfo,omitempty"`
	UserID       string        `gorm:"index" json:"userId,omitempty"`

	UpdatedAt time.Time `json:"-"`
}

// BuildLineItem converts a cart item into an order line snapshot. Buyer
// contact and cart-session fields are stripped; the frozen UnitPrice and
// ItemWeight are carried forward as-is (price lock).
func BuildLineItem(item CartItem) OrderLineItem {
	return OrderLineItem{
		ProductType: item.ProductType,
		ProductName: item.ProductName,
		Width:       item.Width,
		Height:      item.Height,
		Depth:       item.Depth,
		Quantity:    item.Quantity,
		Color:       item.Color,
		LogoURL:     item.LogoURL,
		LogoProps:   item.LogoProps,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		ItemWeight:  item.ItemWeight,
	}
}

// AggregateTotals sums line items into order-level totals.
func AggregateTotals(items []OrderLineItem) (totalPrice, totalWeight float64) {
	for _, item := range items {
		totalPrice += item.UnitPrice * float64(item.Quantity)
		totalWeight += item.ItemWeight * float64(item.Quantity)
	}
	return totalPrice, totalWeight
}

// Recalculate rewrites the order totals from its line items. Call after
// any add, removal, or edit of a line item so totals are never stale.
func (o *Order) Recalculate() {
	o.TotalPrice, o.TotalWeight = AggregateTotals(o.LineItems)
}
