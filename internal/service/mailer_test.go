package service

import (
	"context"
	"strings"
	"testing"
)

func TestWelcomeEmail(t *testing.T) {
	subject, html := WelcomeEmail("alice", "https://app.example.com")
	if subject == "" {
		t.Fatal("empty subject")
	}
	if !strings.Contains(html, "alice") {
		t.Fatal("body missing username")
	}
	if !strings.Contains(html, "https://app.example.com/login") {
		t.Fatal("body missing login link")
	}
}

func TestPasswordResetEmail(t *testing.T) {
	resetURL := "https://app.example.com/password-reset/confirm?token=abc123"
	subject, html := PasswordResetEmail("bob", resetURL)
	if !strings.Contains(strings.ToLower(subject), "password") {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(html, "bob") {
		t.Fatal("body missing username")
	}
	// the link appears both as the button href and as plain text
	if strings.Count(html, resetURL) < 2 {
		t.Fatal("body missing reset link")
	}
	if !strings.Contains(html, "1 hour") {
		t.Fatal("body missing expiry notice")
	}
}

func TestSendWithoutAPIKey(t *testing.T) {
	m := NewMailer("", "noreply@example.com")
	if m.Send(context.Background(), "to@example.com", "s", "<p>x</p>") {
		t.Fatal("send reported success with no API key")
	}
}
