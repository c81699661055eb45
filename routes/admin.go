package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/nadimo15/pakomi-packaging/controllers/catalog"
	orderControllers "github.com/nadimo15/pakomi-packaging/controllers/order"
	"github.com/nadimo15/pakomi-packaging/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-key middleware.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// Catalog management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", catalogControllers.CreateProduct(deps.Catalog))
			productAdmin.PUT("/:id", catalogControllers.UpdateProduct(deps.Catalog))
			productAdmin.DELETE("/:id", catalogControllers.DeleteProduct(deps.Catalog))
		}
		sizeAdmin := adminGroup.Group("/sizes")
		{
			sizeAdmin.PUT("/:id", catalogControllers.UpsertSize(deps.Catalog))
			sizeAdmin.DELETE("/:id", catalogControllers.DeleteSize(deps.Catalog))
		}

		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(deps.Orders))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(deps.Orders))
			orderAdmin.PUT("/bulk-status", orderControllers.BulkUpdateStatusHandler(deps.Service))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(deps.Service))
			orderAdmin.PUT("/:orderID/items", orderControllers.UpdateOrderItemsHandler(deps.Service))
			orderAdmin.POST("/:orderID/refresh-tracking", orderControllers.RefreshTrackingHandler(deps.Service))
		}
	}
}
