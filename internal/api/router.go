package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/api/handlers"
	"github.com/jafarshop/kiosk/internal/config"
	"github.com/jafarshop/kiosk/internal/service"
	"github.com/jafarshop/kiosk/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, sessions *session.Manager, catalog *service.CatalogGateway, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Menu data for the presentation layer
		v1.GET("/catalog/categories", handlers.HandleListCategories(catalog, logger))
		v1.GET("/catalog/products", handlers.HandleListProducts(catalog, logger))

		// Ordering sessions
		v1.POST("/sessions", handlers.HandleCreateSession(sessions, logger))
		v1.GET("/sessions/:id/cart", handlers.HandleGetCart(sessions, logger))
		v1.POST("/sessions/:id/cart/items", handlers.HandleAddItem(sessions, catalog, logger))
		v1.DELETE("/sessions/:id/cart/items/:index", handlers.HandleRemoveItem(sessions, logger))
		v1.PATCH("/sessions/:id/cart/items/:index", handlers.HandleUpdateQuantity(sessions, logger))
		v1.POST("/sessions/:id/suggestions/accept", handlers.HandleAcceptSuggestion(sessions, catalog, logger))
		v1.POST("/sessions/:id/suggestions/close", handlers.HandleCloseSuggestion(sessions, logger))
		v1.POST("/sessions/:id/checkout", handlers.HandleCheckout(sessions, logger))
		v1.POST("/sessions/:id/complete", handlers.HandleCompleteSession(sessions, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
