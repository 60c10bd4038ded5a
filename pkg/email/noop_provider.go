package email

import (
	"context"

	"flows-notify/pkg/logger"

	"github.com/google/uuid"
)

// NoOpProvider implements the Provider interface but delivers nothing.
// Used in development and when email delivery is disabled.
type NoOpProvider struct {
	mode string
}

// NewNoOpProvider creates a new no-op email provider
func NewNoOpProvider(mode string) *NoOpProvider {
	return &NoOpProvider{
		mode: mode,
	}
}

// SendEmail does nothing gracefully and hands back a synthetic id
func (n *NoOpProvider) SendEmail(ctx context.Context, msg *Message) (string, error) {
	return "noop-" + uuid.NewString(), nil
}

// ValidateProvider always succeeds
func (n *NoOpProvider) ValidateProvider(ctx context.Context) error {
	logger.Infof("email provider disabled (mode: %s) - emails will be silently ignored", n.mode)
	return nil
}
