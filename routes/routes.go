package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nadimo15/pakomi-packaging/repository"
	"github.com/nadimo15/pakomi-packaging/service"
)

// Deps carries the wired collaborators the route groups need.
type Deps struct {
	Catalog repository.CatalogRepository
	Carts   repository.CartRepository
	Orders  repository.OrderRepository
	Service *service.OrderService
}

// SetupRoutes is the single entry-point that wires up the storefront,
// order, and admin route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	// Public storefront routes (catalog, quotes, cart)
	SetupStorefrontRoutes(r, deps)

	// Order routes (checkout, tracking, admin lifecycle)
	SetupOrderRoutes(r, deps)

	// Admin routes (API-key protected)
	SetupAdminRoutes(r, deps)
}
