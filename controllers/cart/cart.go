package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/nadimo15/pakomi-packaging/pricing"
	"github.com/nadimo15/pakomi-packaging/repository"
)

// userID identifies the cart owner. Auth is handled upstream; the
// gateway injects the header, "guest" covers anonymous carts.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "guest"
}

type AddCartItemRequest struct {
	ProductType string                `json:"productType" binding:"required"`
	ProductName string                `json:"productName"`
	Width       float64               `json:"width" binding:"required"`
	Height      float64               `json:"height" binding:"required"`
	Depth       float64               `json:"depth"`
	Quantity    int                   `json:"quantity" binding:"required,min=1"`
	Color       string                `json:"color"`
	LogoURL     string                `json:"logoUrl"`
	LogoProps   models.LogoProperties `json:"logoProps"`
	Description string                `json:"description"`
	ClientName  string                `json:"clientName"`
	Phone       string                `json:"phone"`
	Email       string                `json:"email"`
	Address     string                `json:"address"`
	Wilaya      string                `json:"wilaya"`
	Commune     string                `json:"commune"`
	Socials     models.Socials        `json:"socials"`
}

// POST /cart — prices the configuration against the catalog and freezes
// the resulting unit price and weight onto the stored item. A dimension
// combination with no catalog match requires a manual quote and cannot
// be added to the cart.
func AddCartItem(carts repository.CartRepository, catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		sizes, err := catalog.SizesForProduct(c.Request.Context(), req.ProductType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product sizes"})
			return
		}

		quote := pricing.Calculate(req.Width, req.Height, req.Depth, req.Quantity, sizes)
		if quote.IsCustomSize {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":        "Custom size requires a manual quote",
				"isCustomSize": true,
			})
			return
		}

		item := models.CartItem{
			CartItemID:  uuid.NewString(),
			UserID:      userID(c),
			ProductType: req.ProductType,
			ProductName: req.ProductName,
			Width:       req.Width,
			Height:      req.Height,
			Depth:       req.Depth,
			Quantity:    req.Quantity,
			Color:       req.Color,
			LogoURL:     req.LogoURL,
			LogoProps:   req.LogoProps,
			Description: req.Description,
			ClientName:  req.ClientName,
			Phone:       req.Phone,
			Email:       req.Email,
			Address:     req.Address,
			Wilaya:      req.Wilaya,
			Commune:     req.Commune,
			Socials:     req.Socials,
			UnitPrice:   *quote.PricePerItem,
			ItemWeight:  *quote.ItemWeight,
			AddedAt:     time.Now(),
		}
		if err := carts.Save(c.Request.Context(), &item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// GET /cart
func GetCart(carts repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := carts.ItemsForUser(c.Request.Context(), userID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if items == nil {
			items = []models.CartItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// PUT /cart/:cartItemId/quantity — the cart is still mutable, so the
// unit price is re-quoted for the new quantity. Once the item becomes an
// order line it never reprices again.
func UpdateCartItemQuantity(carts repository.CartRepository, catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := carts.Item(c.Request.Context(), userID(c), c.Param("cartItemId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		sizes, err := catalog.SizesForProduct(c.Request.Context(), item.ProductType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product sizes"})
			return
		}

		quote := pricing.Calculate(item.Width, item.Height, item.Depth, req.Quantity, sizes)
		if quote.IsCustomSize {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Size no longer available, requires a manual quote"})
			return
		}

		item.Quantity = req.Quantity
		item.UnitPrice = *quote.PricePerItem
		item.ItemWeight = *quote.ItemWeight
		if err := carts.Save(c.Request.Context(), item); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:cartItemId
func DeleteCartItem(carts repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Delete(c.Request.Context(), userID(c), c.Param("cartItemId")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearCart(carts repository.CartRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), userID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
