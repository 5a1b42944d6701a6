// Package service holds the external collaborators: outbound email,
// image hosting, and the broker publisher. Each client is small,
// never panics, and exposes failures in a form the handlers can
// either swallow (email) or surface as retryable (image upload).
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const sendgridURL = "https://api.sendgrid.com/v3/mail/send"

// Mailer delivers transactional email through the SendGrid Web API.
// An empty API key disables delivery; Send then reports false and the
// caller's primary action proceeds regardless.
type Mailer struct {
	APIKey string
	From   string
	Client *http.Client
}

func NewMailer(apiKey, from string) *Mailer {
	return &Mailer{
		APIKey: apiKey,
		From:   from,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one HTML email. It returns true only when SendGrid
// accepted the message; every failure path logs and returns false,
// never an error, so callers cannot accidentally propagate it.
func (m *Mailer) Send(ctx context.Context, to, subject, html string) bool {
	if m.APIKey == "" {
		log.Printf("mailer: SENDGRID_API_KEY not configured, dropping email to %s", to)
		return false
	}
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": to}}},
		},
		"from":    map[string]string{"email": m.From},
		"subject": subject,
		"content": []map[string]string{{"type": "text/html", "value": html}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("mailer: marshal failed: %v", err)
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendgridURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("mailer: build request failed: %v", err)
		return false
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		log.Printf("mailer: send to %s failed: %v", to, err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("mailer: send to %s rejected with status %d", to, resp.StatusCode)
		return false
	}
	log.Printf("mailer: email sent to %s (status %d)", to, resp.StatusCode)
	return true
}

// WelcomeEmail renders the post-registration email.
func WelcomeEmail(username, frontendURL string) (subject, html string) {
	subject = "Welcome to ESE Task Manager"
	html = fmt.Sprintf(
		"<div style='font-family:sans-serif;max-width:600px;margin:auto'>"+
			"<h2 style='color:#1e293b'>Welcome to ESE Task Manager!</h2>"+
			"<p>Hi %s,</p>"+
			"<p>Your account has been created successfully. You can start organising your tasks right away.</p>"+
			"<p style='text-align:center;margin:32px 0'>"+
			"<a href='%s/login' style='background:#2563eb;color:#fff;padding:12px 32px;border-radius:6px;text-decoration:none;font-weight:600'>Go to Dashboard</a></p>"+
			"<p style='font-size:12px;color:#94a3b8'>If you did not create this account, please ignore this email.</p>"+
			"</div>",
		username, frontendURL)
	return subject, html
}

// PasswordResetEmail renders the one-time reset link email.
func PasswordResetEmail(username, resetURL string) (subject, html string) {
	subject = "Reset your ESE Task Manager password"
	html = fmt.Sprintf(
		"<div style='font-family:sans-serif;max-width:600px;margin:auto'>"+
			"<h2 style='color:#1e293b'>Password Reset</h2>"+
			"<p>Hi %s,</p>"+
			"<p>You requested a password reset for your ESE Task Manager account. Click the button below to set a new password:</p>"+
			"<p style='text-align:center;margin:32px 0'>"+
			"<a href='%s' style='background:#2563eb;color:#fff;padding:12px 32px;border-radius:6px;text-decoration:none;font-weight:600'>Reset Password</a></p>"+
			"<p style='font-size:13px;color:#64748b'>Or copy and paste this link into your browser:</p>"+
			"<p style='font-size:13px;word-break:break-all'>%s</p>"+
			"<p style='font-size:12px;color:#94a3b8'>This link expires in 1 hour. If you did not request this, you can safely ignore this email.</p>"+
			"</div>",
		username, resetURL, resetURL)
	return subject, html
}
