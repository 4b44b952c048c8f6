package notifications

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/internal/layout"
	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
)

// Handler handles notification HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new notifications handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns the caller's notifications
func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if !middleware.ValidateAndBindQuery(c, &req) {
		return
	}

	list, err := h.service.GetMyNotifications(c.Request.Context(), req.Filter())
	if err != nil {
		common.HandleError(c, err, "failed to load notifications")
		return
	}

	common.SuccessResponseWithMeta(c, list, &common.Meta{
		Limit:  req.Limit,
		Offset: req.Offset,
		Total:  int64(list.TotalCount),
	})
}

// MarkAsRead marks the notification in the path as read
func (h *Handler) MarkAsRead(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "notification id is required")
		return
	}

	state, err := h.service.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		common.HandleError(c, err, "failed to mark notification as read")
		return
	}
	common.SuccessResponseWithStatus(c, http.StatusOK, state, "notification marked as read")
}

// MarkAllAsRead marks all notifications as read
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	result, err := h.service.MarkAllAsRead(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "failed to mark notifications as read")
		return
	}
	common.SuccessResponseWithStatus(c, http.StatusOK, result, "notifications marked as read")
}

// RegisterRoutes registers the notification API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("/read-all", h.MarkAllAsRead)
		notifications.POST("/:id/read", h.MarkAsRead)
	}
}

// RegisterPages registers the notifications page
func (h *Handler) RegisterPages(r gin.IRoutes, pages *layout.Renderer) {
	r.GET("/notifications", func(c *gin.Context) {
		props := layout.PageProps{Title: "Notifications", Description: "Your latest notifications"}

		list, err := h.service.GetMyNotifications(c.Request.Context(), nil)
		if err != nil {
			pages.Error(c, err, props)
			return
		}
		pages.HTML(c, http.StatusOK, "notifications", props, list)
	})
}
