package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLogoutWithoutCredentials(t *testing.T) {
	h := &AuthHandler{}
	e := echo.New()

	// Neither a bearer token nor a refresh_token body counts as a
	// credential, so the request is unauthenticated.
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, w)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", w.Code)
	}

	// An empty refresh_token is the same as none.
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/logout",
		strings.NewReader(`{"refresh_token":"   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w = httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, w)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code = %d, want 401", w.Code)
	}
}
