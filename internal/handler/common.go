// Package handler contains the echo handlers for auth, profile,
// category and task endpoints. Handlers bind input, run the
// validation pipeline (field-level rules before object-level rules),
// and delegate persistence to the repositories.
package handler

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/validation"
)

// dbTimeout bounds every database call made on behalf of a request.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user's UUID placed in context
// by the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("missing user_id in context")
}

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// fieldErrors shapes one or more validation failures into the
// field-keyed error body.
func fieldErrors(errs ...*validation.FieldError) echo.Map {
	m := map[string]string{}
	for _, e := range errs {
		if e != nil {
			m[e.Field] = e.Message
		}
	}
	return echo.Map{"errors": m}
}
