package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/config"
)

func rateCtx(userID string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/v1/tasks", nil)
	req.RemoteAddr = "198.51.100.7:1234"
	c := echo.New().NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/tasks")
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c
}

func TestBuildRateKeyStrategies(t *testing.T) {
	base := config.RateLimitConfig{Prefix: "rl"}

	cfg := base
	cfg.KeyStrategy = "user"
	key := buildRateKey(cfg, rateCtx("u1"))
	if key != "rl:user:u1" {
		t.Fatalf("user key = %q", key)
	}

	cfg.KeyStrategy = "ip"
	key = buildRateKey(cfg, rateCtx("u1"))
	if !strings.HasPrefix(key, "rl:ip:") {
		t.Fatalf("ip key = %q", key)
	}

	cfg.KeyStrategy = "" // default: ip_user_route
	key = buildRateKey(cfg, rateCtx("u1"))
	for _, part := range []string{"ip", "user:u1", "route:GET /v1/tasks"} {
		if !strings.Contains(key, part) {
			t.Fatalf("default key %q missing %q", key, part)
		}
	}
}

func TestBuildRateKeyAnonymous(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	if key := buildRateKey(cfg, rateCtx("")); key != "rl:user:anon" {
		t.Fatalf("anon key = %q", key)
	}
}

func TestAsInt64(t *testing.T) {
	cases := map[interface{}]int64{
		int64(5):  5,
		int(7):    7,
		float64(3): 3,
		"42":      42,
		"junk":    0,
		true:      0,
	}
	for in, want := range cases {
		if got := asInt64(in); got != want {
			t.Errorf("asInt64(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestTokenBucketDisabledPassThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, mw)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "" {
		t.Fatal("disabled limiter still set headers")
	}
}
