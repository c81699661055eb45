package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/nadimo15/pakomi-packaging/repository"
	"github.com/nadimo15/pakomi-packaging/service"
	"github.com/nadimo15/pakomi-packaging/shipping"
)

// -------- Request Structs --------

type CreateOrderRequest struct {
	ClientDetails models.ClientDetails `json:"clientDetails" binding:"required"`
	UserID        string               `json:"userId"`
}

type UpdateOrderStatusRequest struct {
	Status       string               `json:"status" binding:"required"`
	ShippingInfo *models.ShippingInfo `json:"shippingInfo"`
}

type BulkUpdateStatusRequest struct {
	OrderIDs []string `json:"orderIds" binding:"required"`
	Status   string   `json:"status" binding:"required"`
}

type UpdateOrderItemsRequest struct {
	LineItems []models.OrderLineItem `json:"lineItems" binding:"required"`
}

// -------- Handlers --------

// POST /orders — checkout: the caller's cart becomes an order.
func CreateOrderHandler(svc *service.OrderService, carts repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cartUser := req.UserID
		if cartUser == "" {
			cartUser = "guest"
		}
		if header := c.GetHeader("X-User-ID"); header != "" {
			cartUser = header
		}

		cartItems, err := carts.ItemsForUser(c.Request.Context(), cartUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		order, err := svc.CreateOrder(c.Request.Context(), req.ClientDetails, cartItems, cartUser)
		if errors.Is(err, models.ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(orders repository.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := orders.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(orders repository.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userID is required"})
			return
		}
		list, err := orders.ListByUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /orders/:orderID — also serves the public track-order page.
func GetOrderByIDHandler(orders repository.OrderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.Get(c.Request.Context(), c.Param("orderID"))
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:orderID/status
func UpdateOrderStatusHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.UpdateOrderStatus(c.Request.Context(), c.Param("orderID"), newStatus, req.ShippingInfo)
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, shipping.ErrMissingTrackingNumber):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
		default:
			c.JSON(http.StatusOK, order)
		}
	}
}

// PUT /orders/bulk-status
func BulkUpdateStatusHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BulkUpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated := svc.BulkUpdateOrderStatus(c.Request.Context(), req.OrderIDs, newStatus)
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}

// PUT /orders/:orderID/items (admin edit)
func UpdateOrderItemsHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.UpdateOrderItems(c.Request.Context(), c.Param("orderID"), req.LineItems)
		switch {
		case errors.Is(err, models.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": "order must contain at least one line item"})
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order items"})
		default:
			c.JSON(http.StatusOK, order)
		}
	}
}

// POST /orders/:orderID/refresh-tracking
func RefreshTrackingHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.RefreshTracking(c.Request.Context(), c.Param("orderID"))
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, shipping.ErrNotIntegrated):
			c.JSON(http.StatusBadRequest, gin.H{"error": "this carrier does not support API tracking"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusOK, order)
		}
	}
}

// GET /carriers — delivery companies for the ship-order dialog.
func GetCarriersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		type carrierView struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			Integrated bool   `json:"integrated"`
		}
		var out []carrierView
		for _, carrier := range shipping.Carriers() {
			out = append(out, carrierView{ID: carrier.ID, Name: carrier.Name, Integrated: carrier.Integrated()})
		}
		c.JSON(http.StatusOK, out)
	}
}
