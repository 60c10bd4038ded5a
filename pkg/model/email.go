package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailRequest is the JSON body accepted by the send-email endpoint.
type EmailRequest struct {
	To       string                 `json:"to"`
	Subject  string                 `json:"subject"`
	HTML     string                 `json:"html,omitempty"`
	Text     string                 `json:"text,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// EmailResponse is returned by the send-email endpoint on success.
type EmailResponse struct {
	Success   bool      `json:"success"`
	MessageID string    `json:"messageId"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}

// SendResult is the uniform outcome of one notification send attempt.
// The pipeline never lets internal failures escape past this shape, so a
// batch caller can keep going through the remaining records.
type SendResult struct {
	Success        bool        `json:"success"`
	NotificationID uuid.UUID   `json:"notification_id"`
	Email          string      `json:"email,omitempty"`
	Template       string      `json:"template_used,omitempty"`
	MessageID      string      `json:"messageId,omitempty"`
	Error          string      `json:"error,omitempty"`
	Details        interface{} `json:"details,omitempty"`
}
