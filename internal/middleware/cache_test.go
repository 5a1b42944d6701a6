package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/MuhsinADA/ese-backend/internal/config"
)

func cacheCtx(userID, target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/tasks")
	if userID != "" {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKeyIsolatesUsers(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	a := cacheKeyFrom(cfg, cacheCtx("user-a", "/v1/tasks?page=1"), "0")
	b := cacheKeyFrom(cfg, cacheCtx("user-b", "/v1/tasks?page=1"), "0")
	if a == b {
		t.Fatal("two users share a cache key for the same route")
	}
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	a := cacheKeyFrom(cfg, cacheCtx("u", "/v1/tasks?page=1"), "0")
	b := cacheKeyFrom(cfg, cacheCtx("u", "/v1/tasks?page=2"), "0")
	if a == b {
		t.Fatal("different queries share a cache key")
	}
}

func TestCacheKeyRouteStrategyIgnoresQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	a := cacheKeyFrom(cfg, cacheCtx("u", "/v1/tasks?page=1"), "0")
	b := cacheKeyFrom(cfg, cacheCtx("u", "/v1/tasks?page=2"), "0")
	if a != b {
		t.Fatal("route strategy keyed on query")
	}
}

func TestCacheKeyRotatesWithVersion(t *testing.T) {
	// A write bumps the owner's version counter; the same GET must
	// then derive a different key so the pre-mutation page is never
	// replayed.
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	before := cacheKeyFrom(cfg, cacheCtx("u", "/v1/tasks?overdue=true"), "3")
	after := cacheKeyFrom(cfg, cacheCtx("u", "/v1/tasks?overdue=true"), "4")
	if before == after {
		t.Fatal("version bump did not rotate the cache key")
	}
}

func TestVersionKeyPerUser(t *testing.T) {
	a := versionKey("cache", cacheCtx("user-a", "/v1/tasks"))
	b := versionKey("cache", cacheCtx("user-b", "/v1/tasks"))
	if a == b {
		t.Fatal("two users share a version counter")
	}
	if a != "cache:ver:user-a" {
		t.Fatalf("version key = %q", a)
	}
}

func TestMutatingMethods(t *testing.T) {
	for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if !mutatingMethods[m] {
			t.Errorf("%s not treated as mutating", m)
		}
	}
	for _, m := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		if mutatingMethods[m] {
			t.Errorf("%s treated as mutating", m)
		}
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, body, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("header = %v", gotHdr)
	}
	if string(body) != `{"items":[]}` {
		t.Fatalf("body = %q", body)
	}
}

func TestDecodePayloadGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Fatalf("decoded %v", bs)
		}
	}
	// header length pointing past the buffer
	bad, _ := encodePayload(200, http.Header{}, nil)
	bad[7] = 0xFF
	if _, _, _, ok := decodePayload(bad); ok {
		t.Fatal("decoded truncated header")
	}
}

func TestCacheDisabledPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, mw)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("pass-through broken: %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Cache") != "" {
		t.Fatal("disabled cache still set X-Cache")
	}
}
