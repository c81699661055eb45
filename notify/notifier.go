// Package notify sends order emails to buyers. Dispatch is best-effort:
// callers log failures and never let them roll back an order change.
package notify

import (
	"context"
	"fmt"

	"github.com/nadimo15/pakomi-packaging/models"
)

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
	SendShipmentNotification(ctx context.Context, order *models.Order) error
}

func confirmationBody(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Pakomi Order Confirmation #%s", order.ID)
	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>Thank you for your order! We've received it and will start processing it shortly.</p>
<p>Order ID: %s<br>Total Price: $%.2f</p>
<p>Thanks,<br>The Pakomi Team</p>`,
		order.ClientName, order.ID, order.TotalPrice)
	return subject, body
}

// shipmentBody degrades gracefully when shipping info is absent instead
// of failing the notification.
func shipmentBody(order *models.Order) (subject, body string) {
	subject = fmt.Sprintf("Your Pakomi Order #%s Has Shipped!", order.ID)

	trackingBlock := "Tracking information will be updated shortly."
	if order.ShippingInfo != nil && order.ShippingInfo.TrackingNumber != "" {
		trackingBlock = fmt.Sprintf("Carrier: %s<br>Tracking Number: %s",
			order.ShippingInfo.Carrier, order.ShippingInfo.TrackingNumber)
	}

	body = fmt.Sprintf(`<p>Hi %s,</p>
<p>Great news! Your order #%s has been shipped.</p>
<p>%s</p>
<p>Thanks,<br>The Pakomi Team</p>`,
		order.ClientName, order.ID, trackingBlock)
	return subject, body
}
