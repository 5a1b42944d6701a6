package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "9f6a1c3e-0000-4000-8000-000000000001", 15)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	sub, err := ParseAccessToken("s3cret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != "9f6a1c3e-0000-4000-8000-000000000001" {
		t.Fatalf("subject = %q", sub)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("right", "u1", 15)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseAccessToken("wrong", tok.Token); err == nil {
		t.Fatal("accepted token signed with a different secret")
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	if _, err := ParseAccessToken("s", "not.a.jwt"); err == nil {
		t.Fatal("accepted malformed token")
	}
}

func TestNewRefreshTokenUnique(t *testing.T) {
	a, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	b, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatal("two refresh tokens collided")
	}
	if len(a.Raw) != 96 {
		t.Fatalf("raw length = %d, want 96", len(a.Raw))
	}
	if !a.Exp.After(time.Now()) {
		t.Fatal("expiry not in the future")
	}
}

func TestHashTokenRawStable(t *testing.T) {
	if HashTokenRaw("abc") != HashTokenRaw("abc") {
		t.Fatal("hash is not deterministic")
	}
	if HashTokenRaw("abc") == HashTokenRaw("abd") {
		t.Fatal("distinct inputs produced the same hash")
	}
	if len(HashTokenRaw("abc")) != 64 {
		t.Fatal("expected hex-encoded sha256")
	}
}
