// Package middleware provides reusable HTTP middleware: bearer-token
// authentication, a Redis response cache and a Redis token-bucket
// rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/utils"
)

// JWTAuth validates a Bearer access token and stores the subject (the
// user's UUID) in the context under "user_id". All auth failures get
// the same uniform 401 body; the response never says which check
// failed.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}

// currentUserID returns the authenticated user's id from context, or
// "anon" for unauthenticated requests. Shared by the cache and rate
// limiter key builders.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
