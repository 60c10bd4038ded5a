package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"flows-notify/pkg/config"
	"flows-notify/pkg/email"
	"flows-notify/pkg/errorreport"
	"flows-notify/pkg/logger"
	"flows-notify/pkg/model"
	"flows-notify/pkg/token"

	"github.com/google/uuid"
)

// Store is the invitation persistence the service depends on.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	ListPending(ctx context.Context, limit int) ([]*model.Invitation, error)
	MarkSent(ctx context.Context, id uuid.UUID, messageID string) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// Locker guards queue records against concurrent pollers.
type Locker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// Service runs the notification pipeline: decode the invitation token,
// merge template data, render, deliver, record the outcome.
type Service struct {
	store    Store
	provider email.Provider
	reporter *errorreport.Reporter
	locker   Locker
	cfg      *config.Config
}

// NewService creates a new notification service instance.
func NewService(store Store, provider email.Provider, reporter *errorreport.Reporter, locker Locker, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		provider: provider,
		reporter: reporter,
		locker:   locker,
		cfg:      cfg,
	}
}

// Send runs the pipeline for one invitation. Internal failures never
// escape: the outcome always comes back as a SendResult so a batch
// caller can keep going through the remaining records. Given the same
// invitation and template name the operation is idempotent.
func (s *Service) Send(ctx context.Context, inv *model.Invitation, templateName string) *model.SendResult {
	if templateName == "" {
		templateName = inv.MessageTemplate
	}
	if templateName == "" {
		templateName = email.TemplateInvitationApproved
	}

	result := &model.SendResult{
		NotificationID: inv.ID,
		Template:       templateName,
	}

	if inv.JWTToken == "" {
		return s.fail(result, fmt.Errorf("no token found for notification"))
	}

	payload, err := token.Decode(inv.JWTToken)
	if err != nil {
		return s.fail(result, err)
	}

	data := email.MergeTemplateData(inv, payload, s.cfg.Email.Templates)
	result.Email = data.Email

	content, err := email.RenderTemplate(templateName, data, inv.CustomMessage)
	if err != nil {
		return s.fail(result, err)
	}

	msg := &email.Message{
		To:      data.Email,
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
		Metadata: map[string]string{
			"notification_id": inv.ID.String(),
			"template":        templateName,
			"attempt":         strconv.Itoa(inv.NotificationAttempts + 1),
			"max_attempts":    strconv.Itoa(inv.MaxNotificationAttempts),
		},
	}

	if err := msg.Validate(); err != nil {
		return s.fail(result, err)
	}

	messageID, err := s.provider.SendEmail(ctx, msg)
	if err != nil {
		return s.fail(result, err)
	}

	logger.Infof("notification %s delivered to %s (template %s)", inv.ID, data.Email, templateName)

	result.Success = true
	result.MessageID = messageID
	return result
}

// SendByID loads an invitation, runs the pipeline and records the
// outcome in the store.
func (s *Service) SendByID(ctx context.Context, id uuid.UUID, templateName string) (*model.SendResult, error) {
	inv, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load invitation: %w", err)
	}

	result := s.Send(ctx, inv, templateName)
	s.record(ctx, result)
	return result, nil
}

// SendTest delivers a fixed test email to verify provider configuration.
func (s *Service) SendTest(ctx context.Context, to string) (string, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	msg := &email.Message{
		To:      to,
		Subject: "Test Email from Thepia Flows Admin",
		HTML: `<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>Test Email</h2>
			<p>This is a test email from the Thepia Flows admin interface.</p>
			<p>If you received this, email sending is working correctly!</p>
			<p>Time: ` + now + `</p>
		</div>`,
		Text: "Test Email - This is a test email from the Thepia Flows admin interface. Time: " + now,
		Metadata: map[string]string{
			"test":      "true",
			"sent_from": "admin_interface",
		},
	}

	if err := msg.Validate(); err != nil {
		return "", err
	}

	return s.provider.SendEmail(ctx, msg)
}

// ProcessPending drains one batch of the notification queue. Each
// record is locked, processed and recorded independently; one bad
// record never stops the batch.
func (s *Service) ProcessPending(ctx context.Context) ([]*model.SendResult, error) {
	invitations, err := s.store.ListPending(ctx, s.cfg.Notify.BatchSize)
	if err != nil {
		s.reporter.ReportError("queue-poll", err, nil)
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}

	results := make([]*model.SendResult, 0, len(invitations))
	for _, inv := range invitations {
		lockKey := "notify:lock:" + inv.ID.String()

		acquired, err := s.locker.SetNX(ctx, lockKey, time.Now().UnixMilli(), s.cfg.Notify.LockTTL)
		if err != nil {
			logger.Error(err, "failed to acquire notification lock")
			continue
		}
		if !acquired {
			logger.Debugf("notification %s locked by another worker, skipping", inv.ID)
			continue
		}

		result := s.Send(ctx, inv, "")
		s.record(ctx, result)
		results = append(results, result)

		if err := s.locker.Delete(ctx, lockKey); err != nil {
			logger.Error(err, "failed to release notification lock")
		}
	}

	return results, nil
}

// fail finalizes a result, reporting the failure best-effort.
func (s *Service) fail(result *model.SendResult, err error) *model.SendResult {
	logger.Errorf(err, "notification %s failed", result.NotificationID)

	s.reporter.ReportError("email_send", err, map[string]interface{}{
		"notification_id": result.NotificationID.String(),
		"template":        result.Template,
	})

	result.Success = false
	result.Error = err.Error()
	result.Details = errorDetails(err)
	return result
}

// record persists the outcome; store failures are logged and reported
// but never override the pipeline result.
func (s *Service) record(ctx context.Context, result *model.SendResult) {
	var err error
	if result.Success {
		err = s.store.MarkSent(ctx, result.NotificationID, result.MessageID)
	} else {
		err = s.store.MarkFailed(ctx, result.NotificationID, result.Error)
	}

	if err != nil {
		logger.Errorf(err, "failed to record outcome for notification %s", result.NotificationID)
		s.reporter.ReportError("record-outcome", err, map[string]interface{}{
			"notification_id": result.NotificationID.String(),
		})
	}
}

func errorDetails(err error) interface{} {
	var delivery *email.DeliveryError
	if errors.As(err, &delivery) {
		return map[string]interface{}{
			"kind":        string(delivery.Kind),
			"status_code": delivery.StatusCode,
		}
	}
	return nil
}
