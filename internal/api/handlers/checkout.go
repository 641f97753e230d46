package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/kiosk/internal/service"
	"github.com/jafarshop/kiosk/internal/session"
)

// CheckoutRequest is the checkout payload from the presentation layer
type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
}

// CheckoutResponse carries the backend-assigned order ID on confirmation
type CheckoutResponse struct {
	OrderID          int64  `json:"order_id"`
	SubmissionStatus string `json:"submission_status"`
}

// HandleCheckout handles POST /v1/sessions/:id/checkout. Validation
// failures (blank name, empty cart) are rejected before any backend call;
// a backend failure leaves the cart intact so the customer can retry. The
// cart is not cleared on confirmation: the UI clears it explicitly via the
// session complete endpoint after showing the confirmation screen.
func HandleCheckout(sessions *session.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessionFromPath(c, sessions)
		if !ok {
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		orderID, err := s.Workflow.Submit(c.Request.Context(), req.CustomerName)
		if err != nil {
			var transitionErr *service.InvalidTransitionError
			switch {
			case errors.Is(err, service.ErrEmptyCustomerName), errors.Is(err, service.ErrEmptyCart):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrSubmissionInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.As(err, &transitionErr):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrSubmissionFailed.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, CheckoutResponse{
			OrderID:          orderID,
			SubmissionStatus: string(s.Workflow.Status()),
		})
	}
}
