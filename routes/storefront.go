package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/nadimo15/pakomi-packaging/controllers/cart"
	catalogControllers "github.com/nadimo15/pakomi-packaging/controllers/catalog"
)

func SetupStorefrontRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", catalogControllers.GetProducts(deps.Catalog))
	r.GET("/products/sizes", catalogControllers.GetProductSizes(deps.Catalog))
	r.POST("/quote", catalogControllers.QuoteHandler(deps.Catalog))

	cart := r.Group("/cart")
	{
		cart.POST("", cartControllers.AddCartItem(deps.Carts, deps.Catalog))
		cart.GET("", cartControllers.GetCart(deps.Carts))
		cart.PUT("/:cartItemId/quantity", cartControllers.UpdateCartItemQuantity(deps.Carts, deps.Catalog))
		cart.DELETE("/:cartItemId", cartControllers.DeleteCartItem(deps.Carts))
		cart.DELETE("", cartControllers.ClearCart(deps.Carts))
	}
}
