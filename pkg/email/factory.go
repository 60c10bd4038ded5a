package email

import (
	"context"
	"fmt"

	"flows-notify/pkg/config"
)

// email provider constants
const (
	ProviderSES  = "ses"
	ProviderSMTP = "smtp"
	ProviderNoOp = "noop"
)

// NewEmailProvider creates an email provider based on configuration
func NewEmailProvider(ctx context.Context, cfg *config.EmailConfig) (Provider, error) {
	switch cfg.Provider {
	case ProviderSES:
		if cfg.SES.Region == "" {
			return nil, fmt.Errorf("AWS region is required")
		}
		return NewSESProvider(ctx, cfg)

	case ProviderSMTP:
		if cfg.SMTP.Host == "" || cfg.SMTP.Port == 0 || cfg.SMTP.Username == "" {
			return nil, fmt.Errorf("SMTP host, port, and username are required")
		}
		return NewSMTPProvider(cfg)

	case ProviderNoOp:
		return NewNoOpProvider(cfg.Provider), nil

	default:
		return nil, fmt.Errorf("unsupported email provider: %s", cfg.Provider)
	}
}
