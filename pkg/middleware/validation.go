package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/validation"
)

// ValidateJSON binds the JSON body into req and validates it
func ValidateJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return err
	}
	return validation.ValidateStruct(req)
}

// ValidateQuery binds query parameters into req and validates it
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return err
	}
	return validation.ValidateStruct(req)
}

// RespondWithValidationError sends a standardized validation error response
func RespondWithValidationError(c *gin.Context, err error) {
	var valErr *validation.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusBadRequest, common.Response{
			Success: false,
			Error: &common.ErrorInfo{
				Code:    http.StatusBadRequest,
				Message: "validation failed",
				Fields:  valErr.Errors,
			},
		})
		return
	}
	common.ErrorResponse(c, http.StatusBadRequest, "invalid request: "+err.Error())
}

// ValidateAndBind validates and binds the JSON body. It returns false after
// writing the error response when the body is unusable.
func ValidateAndBind(c *gin.Context, req interface{}) bool {
	if err := ValidateJSON(c, req); err != nil {
		RespondWithValidationError(c, err)
		return false
	}
	return true
}

// ValidateAndBindQuery is ValidateAndBind for query parameters
func ValidateAndBindQuery(c *gin.Context, req interface{}) bool {
	if err := ValidateQuery(c, req); err != nil {
		RespondWithValidationError(c, err)
		return false
	}
	return true
}

// MaxBodySize limits the request body size. Multipart uploads read through
// the limited body, so an oversized upload fails while parsing.
func MaxBodySize(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		}
		c.Next()
	}
}
