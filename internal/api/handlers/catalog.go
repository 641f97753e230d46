package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/domain"
	"github.com/jafarshop/kiosk/internal/service"
)

// ProductResponse is a catalog product as rendered to the presentation layer
type ProductResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	Description   string `json:"description"`
	CategoryID    int64  `json:"category_id"`
	ImageURL      string `json:"image_url,omitempty"`
	Spicy         bool   `json:"spicy"`
	Available     bool   `json:"available"`
	StockQuantity int    `json:"stock_quantity"`
}

func buildProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductResponse{
			ID:            p.ID,
			Name:          p.Name,
			Price:         p.Price.StringFixed(2),
			Description:   p.Description,
			CategoryID:    p.CategoryID,
			ImageURL:      p.ImageURL,
			Spicy:         p.Spicy,
			Available:     p.Available,
			StockQuantity: p.StockQuantity,
		}
	}
	return out
}

// HandleListCategories handles GET /v1/catalog/categories. Connectivity
// failures surface as 503 so the UI shows an error instead of an
// empty-menu illusion.
func HandleListCategories(catalog *service.CatalogGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// HandleListProducts handles GET /v1/catalog/products with an optional
// ?category= filter
func HandleListProducts(catalog *service.CatalogGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			products []domain.Product
			err      error
		)

		if raw := c.Query("category"); raw != "" {
			categoryID, parseErr := strconv.ParseInt(raw, 10, 64)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
				return
			}
			products, err = catalog.ProductsByCategory(c.Request.Context(), categoryID)
		} else {
			products, err = catalog.Products(c.Request.Context())
		}

		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": buildProductResponses(products)})
	}
}
