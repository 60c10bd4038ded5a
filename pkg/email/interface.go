package email

import (
	"context"
	"regexp"
)

// Provider defines the interface for email delivery providers
type Provider interface {
	// SendEmail delivers a message and returns the provider-assigned message id
	SendEmail(ctx context.Context, msg *Message) (string, error)

	// ValidateProvider validates the provider configuration
	ValidateProvider(ctx context.Context) error
}

// Message is the renderable artifact handed to a delivery provider.
type Message struct {
	To       string
	Subject  string
	HTML     string
	Text     string
	Metadata map[string]string
}

// emailPattern is intentionally loose: anything@anything.anything
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the message has a deliverable recipient, a
// subject and at least one body representation.
func (m *Message) Validate() error {
	if m.To == "" {
		return &ValidationError{Field: "to", Reason: "recipient is required"}
	}
	if !emailPattern.MatchString(m.To) {
		return &ValidationError{Field: "to", Reason: "invalid email address format"}
	}
	if m.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "subject is required"}
	}
	if m.HTML == "" && m.Text == "" {
		return &ValidationError{Field: "body", Reason: "at least one of html or text is required"}
	}
	return nil
}
