package invitation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"flows-notify/pkg/model"

	"github.com/google/uuid"
)

// Repository handles invitation data operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new invitation repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const invitationColumns = `
	id, email, jwt_token, message_template, template_data, custom_message,
	status, created_at, expires_at, email_sent_at,
	notification_attempts, max_notification_attempts`

// GetByID retrieves an invitation by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	return scanInvitation(row)
}

// ListPending retrieves invitations that still need a notification:
// pending status, attempts left, not expired.
func (r *Repository) ListPending(ctx context.Context, limit int) ([]*model.Invitation, error) {
	query := `SELECT` + invitationColumns + `
		FROM invitations
		WHERE status = $1
		  AND notification_attempts < max_notification_attempts
		  AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, model.StatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*model.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// MarkSent records a successful delivery
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, messageID string) error {
	query := `
		UPDATE invitations
		SET status = $2,
		    email_sent_at = NOW(),
		    provider_message_id = $3,
		    notification_attempts = notification_attempts + 1
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, model.StatusSent, messageID)
	return err
}

// MarkFailed records a failed attempt; the invitation flips to failed
// once its attempt budget is spent.
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `
		UPDATE invitations
		SET notification_attempts = notification_attempts + 1,
		    last_error = $2,
		    status = CASE
		        WHEN notification_attempts + 1 >= max_notification_attempts THEN 'failed'
		        ELSE status
		    END
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, reason)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvitation(row rowScanner) (*model.Invitation, error) {
	var inv model.Invitation
	var email, customMessage sql.NullString
	var templateData []byte
	var createdAt, expiresAt, emailSentAt sql.NullTime

	err := row.Scan(
		&inv.ID, &email, &inv.JWTToken, &inv.MessageTemplate, &templateData, &customMessage,
		&inv.Status, &createdAt, &expiresAt, &emailSentAt,
		&inv.NotificationAttempts, &inv.MaxNotificationAttempts,
	)
	if err != nil {
		return nil, err
	}

	inv.Email = email.String
	inv.CustomMessage = customMessage.String
	inv.CreatedAt = formatTimestamp(createdAt)
	inv.ExpiresAt = formatTimestamp(expiresAt)
	inv.EmailSentAt = formatTimestamp(emailSentAt)

	if len(templateData) > 0 {
		if err := json.Unmarshal(templateData, &inv.TemplateData); err != nil {
			return nil, fmt.Errorf("failed to unmarshal template_data: %w", err)
		}
	}

	return &inv, nil
}

func formatTimestamp(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}
