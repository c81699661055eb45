package catalogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/nadimo15/pakomi-packaging/pricing"
	"github.com/nadimo15/pakomi-packaging/repository"
)

// GET /products
func GetProducts(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.Products(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/sizes — sizes keyed by product id, for the configurators.
func GetProductSizes(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sizes, err := catalog.ProductSizes(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sizes"})
			return
		}
		c.JSON(http.StatusOK, sizes)
	}
}

type QuoteRequest struct {
	ProductType string  `json:"productType" binding:"required"`
	Width       float64 `json:"width" binding:"required"`
	Height      float64 `json:"height" binding:"required"`
	Depth       float64 `json:"depth"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
}

// POST /quote — price a configuration without touching the cart.
func QuoteHandler(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sizes, err := catalog.SizesForProduct(c.Request.Context(), req.ProductType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sizes"})
			return
		}

		quote := pricing.Calculate(req.Width, req.Height, req.Depth, req.Quantity, sizes)
		c.JSON(http.StatusOK, quote)
	}
}

// POST /admin/products
func CreateProduct(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if product.ID == "" || product.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id and name are required"})
			return
		}
		for _, size := range product.Sizes {
			if err := validateSize(size); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if err := catalog.SaveProduct(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		product.ID = c.Param("id")
		for _, size := range product.Sizes {
			if err := validateSize(size); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if err := catalog.SaveProduct(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
func DeleteProduct(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := catalog.DeleteProduct(c.Request.Context(), c.Param("id"))
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// PUT /admin/sizes/:id — updating a size never touches existing orders;
// their line items carry frozen prices.
func UpsertSize(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var size models.ProductSize
		if err := c.ShouldBindJSON(&size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		size.ID = c.Param("id")
		if err := validateSize(size); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := catalog.SaveSize(c.Request.Context(), &size); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save size"})
			return
		}
		c.JSON(http.StatusOK, size)
	}
}

// DELETE /admin/sizes/:id
func DeleteSize(catalog repository.CatalogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := catalog.DeleteSize(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete size"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Size deleted"})
	}
}

func validateSize(size models.ProductSize) error {
	if len(size.Pricing) == 0 {
		return errors.New("size must have at least one price tier")
	}
	for _, tier := range size.Pricing {
		if tier.MinQuantity < 0 {
			return errors.New("tier minQuantity must not be negative")
		}
		if tier.Price < 0 {
			return errors.New("tier price must not be negative")
		}
	}
	return nil
}
