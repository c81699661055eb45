package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/nadimo15/pakomi-packaging/controllers/order"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	r.GET("/carriers", orderControllers.GetCarriersHandler())

	orders := r.Group("/orders")
	{
		// Checkout: convert the caller's cart into an order
		orders.POST("", orderControllers.CreateOrderHandler(deps.Service, deps.Carts))

		// Public order tracking
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(deps.Orders))

		// Orders for a specific user
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(deps.Orders))

		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}
