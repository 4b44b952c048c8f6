package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/internal/layout"
	"github.com/richxcame/ride-hailing-web/pkg/common"
)

// Handler handles cart HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new cart handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetCart returns the caller's cart as JSON
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.service.MyCart(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "failed to load cart")
		return
	}
	common.SuccessResponse(c, cart)
}

// RegisterRoutes registers the cart API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/cart", h.GetCart)
}

// RegisterPages registers the cart page
func (h *Handler) RegisterPages(r gin.IRoutes, pages *layout.Renderer) {
	r.GET("/cart", func(c *gin.Context) {
		props := layout.PageProps{Title: "My cart", Description: "Items in your cart"}

		cart, err := h.service.MyCart(c.Request.Context())
		if err != nil {
			pages.Error(c, err, props)
			return
		}
		pages.HTML(c, http.StatusOK, "cart", props, cart)
	})
}
