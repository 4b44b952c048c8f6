package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the cookie the rider app stores its session token in
const TokenCookie = "token"

// AuthToken copies the caller's bearer token (Authorization header first,
// then the token cookie) into the request context using attach. Requests
// without a token pass through untouched; the GraphQL API decides whether an
// operation needs one.
func AuthToken(attach func(ctx context.Context, token string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			c.Request = c.Request.WithContext(attach(c.Request.Context(), token))
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
