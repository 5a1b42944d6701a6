// Package queue defines the payloads exchanged over the message
// broker and the background consumer that drains them.
package queue

// EmailQueueName is the durable queue carrying outbound email.
const EmailQueueName = "email.outbound"

// Email event kinds, for log lines and downstream routing.
const (
	EmailKindWelcome       = "welcome"
	EmailKindPasswordReset = "password_reset"
)

// OutboundEmailEvent is published whenever a handler wants an email
// delivered. The event carries the fully rendered message so the
// consumer never touches the primary database.
type OutboundEmailEvent struct {
	Kind     string `json:"kind"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
	QueuedAt string `json:"queued_at"`
}
