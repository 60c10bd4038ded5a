package model

import (
	"github.com/google/uuid"
)

// invitation status values, mirroring the admin store
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusExpired = "expired"
)

// Invitation is a demo-access grant loaded from the invitations store.
// Timestamps are carried as strings exactly as the store serializes them;
// formatting for email bodies happens downstream.
type Invitation struct {
	ID                      uuid.UUID              `json:"id" db:"id"`
	Email                   string                 `json:"email,omitempty" db:"email"`
	JWTToken                string                 `json:"jwt_token" db:"jwt_token"`
	MessageTemplate         string                 `json:"message_template" db:"message_template"`
	TemplateData            map[string]interface{} `json:"template_data" db:"template_data"`
	CustomMessage           string                 `json:"custom_message,omitempty" db:"custom_message"`
	Status                  string                 `json:"status" db:"status"`
	CreatedAt               string                 `json:"created_at" db:"created_at"`
	ExpiresAt               string                 `json:"expires_at" db:"expires_at"`
	EmailSentAt             string                 `json:"email_sent_at,omitempty" db:"email_sent_at"`
	NotificationAttempts    int                    `json:"notification_attempts" db:"notification_attempts"`
	MaxNotificationAttempts int                    `json:"max_notification_attempts" db:"max_notification_attempts"`
}

// TemplateField returns the string value of a template_data key, if present.
func (i *Invitation) TemplateField(key string) (string, bool) {
	if i.TemplateData == nil {
		return "", false
	}
	v, ok := i.TemplateData[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
