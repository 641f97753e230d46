package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/domain"
	"github.com/jafarshop/kiosk/internal/service"
	"github.com/jafarshop/kiosk/internal/session"
)

// AddItemRequest is the add-to-cart payload from the presentation layer
type AddItemRequest struct {
	ProductID int64    `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	Options   []string `json:"options"`
}

// UpdateQuantityRequest sets a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// AcceptSuggestionRequest picks one product off an open suggestion prompt
type AcceptSuggestionRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// SuggestionResponse is a suggested companion product for the UI to render
type SuggestionResponse struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	CategoryID int64  `json:"category_id"`
	ImageURL   string `json:"image_url,omitempty"`
}

// AddItemResponse is the cart view plus the suggestion prompt, when one
// opened on this add
type AddItemResponse struct {
	Cart        CartResponse         `json:"cart"`
	PromptOpen  bool                 `json:"prompt_open"`
	Suggestions []SuggestionResponse `json:"suggestions,omitempty"`
}

func buildSuggestionResponses(products []domain.Product) []SuggestionResponse {
	out := make([]SuggestionResponse, len(products))
	for i, p := range products {
		out[i] = SuggestionResponse{
			ProductID:  p.ID,
			Name:       p.Name,
			Price:      p.Price.StringFixed(2),
			CategoryID: p.CategoryID,
			ImageURL:   p.ImageURL,
		}
	}
	return out
}

// lookupProduct resolves a product ID against the catalog, writing the
// error response itself when it can't
func lookupProduct(c *gin.Context, catalog *service.CatalogGateway, productID int64) (domain.Product, bool) {
	product, err := catalog.FindProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		}
		return domain.Product{}, false
	}
	return product, true
}

// HandleAddItem handles POST /v1/sessions/:id/cart/items. Adding a product
// merges with an existing line for the same product and options, then runs
// the suggestion throttle; when a prompt opens its suggestions ride along
// in the response for the UI to render.
func HandleAddItem(sessions *session.Manager, catalog *service.CatalogGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}

		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		product, ok := lookupProduct(c, catalog, req.ProductID)
		if !ok {
			return
		}
		if !product.Available {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product is not available"})
			return
		}

		s.Cart.AddProduct(product, req.Quantity, req.Options)

		suggestions, opened := s.Throttle.TryShowSuggestion(c.Request.Context(), product, s.Cart.Items())

		resp := AddItemResponse{
			Cart:       buildCartResponse(s),
			PromptOpen: opened,
		}
		if opened {
			resp.Suggestions = buildSuggestionResponses(suggestions)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// HandleRemoveItem handles DELETE /v1/sessions/:id/cart/items/:index.
// An out-of-range index is a no-op, same as the store's contract: the UI
// may hold a stale index while a re-render is in flight.
func HandleRemoveItem(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
			return
		}

		s.Cart.RemoveItem(index)
		c.JSON(http.StatusOK, buildCartResponse(s))
	}
}

// HandleUpdateQuantity handles PATCH /v1/sessions/:id/cart/items/:index.
// A non-positive quantity removes the line; that decrement-to-zero policy
// lives here in the presentation interface, while the store itself keeps
// its strict no-op contract for non-positive quantities.
func HandleUpdateQuantity(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
			return
		}

		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		if req.Quantity <= 0 {
			s.Cart.RemoveItem(index)
		} else {
			s.Cart.UpdateQuantity(index, req.Quantity)
		}
		c.JSON(http.StatusOK, buildCartResponse(s))
	}
}

// HandleAcceptSuggestion handles POST /v1/sessions/:id/suggestions/accept.
// Accepting adds one unit of the suggested product (no options) and closes
// the prompt. The add goes straight to the cart; it does not run the
// throttle again.
func HandleAcceptSuggestion(sessions *session.Manager, catalog *service.CatalogGateway, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}

		var req AcceptSuggestionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		product, ok := lookupProduct(c, catalog, req.ProductID)
		if !ok {
			// Close anyway: the prompt ended even if the pick went stale
			s.Throttle.OnPromptClosed()
			return
		}

		s.Cart.AddProduct(product, 1, nil)
		s.Throttle.OnPromptClosed()
		c.JSON(http.StatusOK, buildCartResponse(s))
	}
}

// HandleCloseSuggestion handles POST /v1/sessions/:id/suggestions/close.
// Closure is idempotent and always succeeds, however the prompt ended.
func HandleCloseSuggestion(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}

		s.Throttle.OnPromptClosed()
		c.Status(http.StatusNoContent)
	}
}
