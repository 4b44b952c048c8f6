package theme

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/pkg/common"
)

// Response is the JSON body of the theme endpoints
type Response struct {
	Theme Theme `json:"theme"`
}

// Handler exposes the theme store over HTTP
type Handler struct {
	store *Store
}

// NewHandler creates a new theme handler
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get returns the current theme
func (h *Handler) Get(c *gin.Context) {
	common.SuccessResponse(c, Response{Theme: h.store.Theme()})
}

// Toggle flips the theme. A persistence failure is reported as 500 but the
// toggled theme is still in effect for this process.
func (h *Handler) Toggle(c *gin.Context) {
	t, err := h.store.ToggleTheme(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.Response{
			Success: false,
			Data:    Response{Theme: t},
			Error:   &common.ErrorInfo{Code: http.StatusInternalServerError, Message: "theme changed but could not be saved"},
		})
		return
	}
	common.SuccessResponse(c, Response{Theme: t})
}

// RegisterRoutes registers the theme API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/theme", h.Get)
	r.POST("/theme/toggle", h.Toggle)
}
