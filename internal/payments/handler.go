package payments

import (
	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
)

// Handler handles payment HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new payments handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePayment creates a payment for a ride
func (h *Handler) CreatePayment(c *gin.Context) {
	var input CreatePaymentInput
	if !middleware.ValidateAndBind(c, &input) {
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), &input)
	if err != nil {
		common.HandleError(c, err, "failed to create payment")
		return
	}
	common.CreatedResponse(c, payment)
}

// RegisterRoutes registers the payment API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/payments", h.CreatePayment)
}
