package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/middleware"
)

const (
	// MaxBatchFiles caps the number of files in one batch upload
	MaxBatchFiles = 10
	// MaxRequestBytes caps the size of an upload request
	MaxRequestBytes = 32 << 20
)

// Handler handles upload HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new uploads handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Single uploads the multipart field "file"
func (h *Handler) Single(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "file is required")
		return
	}

	upload, closer, err := open(header)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "unable to read file")
		return
	}
	defer closer.Close()

	file, err := h.service.SingleUpload(c.Request.Context(), upload)
	if err != nil {
		common.HandleError(c, err, "failed to upload file")
		return
	}
	common.CreatedResponse(c, file)
}

// Batch uploads every multipart field named "files"
func (h *Handler) Batch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "multipart form is required")
		return
	}

	headers := form.File["files"]
	switch {
	case len(headers) == 0:
		common.ErrorResponse(c, http.StatusBadRequest, "at least one file is required")
		return
	case len(headers) > MaxBatchFiles:
		common.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("at most %d files per request", MaxBatchFiles))
		return
	}

	uploads := make([]graphql.Upload, 0, len(headers))
	for _, header := range headers {
		upload, closer, err := open(header)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "unable to read file "+header.Filename)
			return
		}
		defer closer.Close()
		uploads = append(uploads, upload)
	}

	files, err := h.service.MultipleUpload(c.Request.Context(), uploads)
	if err != nil {
		common.HandleError(c, err, "failed to upload files")
		return
	}
	common.CreatedResponse(c, files)
}

// RegisterRoutes registers the upload API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads", middleware.MaxBodySize(MaxRequestBytes))
	{
		uploads.POST("", h.Single)
		uploads.POST("/batch", h.Batch)
	}
}

func open(header *multipart.FileHeader) (graphql.Upload, io.Closer, error) {
	f, err := header.Open()
	if err != nil {
		return graphql.Upload{}, nil, err
	}
	return graphql.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     f,
	}, f, nil
}
