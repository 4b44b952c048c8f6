package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// Recovery middleware recovers from panics and answers with the JSON error envelope
func Recovery() gin.HandlerFunc {
	return recovery(func(c *gin.Context) {
		common.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	})
}

// BareRecovery recovers from panics and answers 500 with an empty body.
// The edge router uses it because it must not invent a response format.
func BareRecovery() gin.HandlerFunc {
	return recovery(func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
}

func recovery(respond func(c *gin.Context)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.WithContext(c.Request.Context()).Error("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				if !c.Writer.Written() {
					respond(c)
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
