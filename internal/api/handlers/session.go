package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/session"
)

// CartResponse represents the cart view returned to the presentation layer
type CartResponse struct {
	SessionID         string             `json:"session_id"`
	Items             []CartLineResponse `json:"items"`
	Total             string             `json:"total"`
	ItemCount         int                `json:"item_count"`
	TotalProductCount int                `json:"total_product_count"`
	SubmissionStatus  string             `json:"submission_status"`
}

type CartLineResponse struct {
	Index     int      `json:"index"`
	ProductID int64    `json:"product_id"`
	Name      string   `json:"name"`
	UnitPrice string   `json:"unit_price"`
	Quantity  int      `json:"quantity"`
	Options   []string `json:"options"`
	LineTotal string   `json:"line_total"`
}

// buildCartResponse renders the current cart state of a session
func buildCartResponse(s *session.Session) CartResponse {
	snapshot := s.Cart.Items()
	items := make([]CartLineResponse, len(snapshot))
	for i, line := range snapshot {
		items[i] = CartLineResponse{
			Index:     i,
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.Price.StringFixed(2),
			Quantity:  line.Quantity,
			Options:   line.Options,
			LineTotal: line.LineTotal().StringFixed(2),
		}
	}
	return CartResponse{
		SessionID:         s.ID.String(),
		Items:             items,
		Total:             s.Cart.Total().StringFixed(2),
		ItemCount:         s.Cart.ItemCount(),
		TotalProductCount: s.Cart.TotalProductCount(),
		SubmissionStatus:  string(s.Workflow.Status()),
	}
}

// sessionFromPath resolves the :id path parameter to a live session,
// writing the error response itself when it can't
func sessionFromPath(c *gin.Context, sessions *session.Manager) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return nil, false
	}

	s, err := sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

// HandleCreateSession handles POST /v1/sessions
func HandleCreateSession(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Create()
		c.JSON(http.StatusCreated, buildCartResponse(s))
	}
}

// HandleGetCart handles GET /v1/sessions/:id/cart
func HandleGetCart(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, buildCartResponse(s))
	}
}

// HandleCompleteSession handles POST /v1/sessions/:id/complete. The
// presentation layer calls it after the confirmation screen; the cart is
// cleared and the session dropped so a new order cycle starts fresh.
func HandleCompleteSession(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
			return
		}

		if err := sessions.Complete(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
