package rider

import (
	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
)

// Handler handles rider HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new rider handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// UpdateLocation updates the rider's location
func (h *Handler) UpdateLocation(c *gin.Context) {
	var input UpdateLocationInput
	if !middleware.ValidateAndBind(c, &input) {
		return
	}

	location, err := h.service.UpdateLocation(c.Request.Context(), &input)
	if err != nil {
		common.HandleError(c, err, "failed to update location")
		return
	}
	common.SuccessResponse(c, location)
}

// RegisterRoutes registers the rider API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.PUT("/rider/location", h.UpdateLocation)
}
