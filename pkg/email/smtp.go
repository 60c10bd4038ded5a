package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"flows-notify/pkg/config"

	"github.com/google/uuid"
)

// SMTPProvider implements Provider for generic SMTP servers
type SMTPProvider struct {
	config *config.EmailConfig
}

// NewSMTPProvider creates a new SMTP email provider
func NewSMTPProvider(cfg *config.EmailConfig) (*SMTPProvider, error) {
	// set default port if not specified
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	return &SMTPProvider{
		config: cfg,
	}, nil
}

// SendEmail sends an email using SMTP. SMTP servers assign no message
// id of their own, so one is synthesized for the caller.
func (s *SMTPProvider) SendEmail(ctx context.Context, msg *Message) (string, error) {
	smtpCfg := s.config.SMTP
	auth := smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)

	from := s.config.FromEmail
	if from == "" {
		from = smtpCfg.Username
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), smtpCfg.Host)
	raw := s.createMessage(from, messageID, msg)

	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)

	if !smtpCfg.UseTLS {
		// use plain SMTP without TLS
		err := smtp.SendMail(addr, auth, from, []string{msg.To}, []byte(raw))
		if err != nil {
			return "", newDeliveryError(DeliveryFailed, "failed to send email", err)
		}
		return messageID, nil
	}

	// use STARTTLS for security (most common for SMTP)
	client, err := smtp.Dial(addr)
	if err != nil {
		return "", newDeliveryError(DeliveryFailed, "failed to connect to SMTP server", err)
	}
	defer client.Quit()

	// start TLS if supported
	ok, _ := client.Extension("STARTTLS")
	if ok {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: false,
			ServerName:         smtpCfg.Host,
		}
		err = client.StartTLS(tlsConfig)
		if err != nil {
			return "", newDeliveryError(DeliveryFailed, "failed to start TLS", err)
		}
	}

	err = client.Auth(auth)
	if err != nil {
		return "", newDeliveryError(DeliveryConfig, "SMTP authentication failed", err)
	}

	err = client.Mail(from)
	if err != nil {
		return "", newDeliveryError(DeliveryDomainUnverified, "failed to set sender", err)
	}

	err = client.Rcpt(msg.To)
	if err != nil {
		return "", newDeliveryError(DeliveryRejected, fmt.Sprintf("recipient %s rejected", msg.To), err)
	}

	w, err := client.Data()
	if err != nil {
		return "", newDeliveryError(DeliveryFailed, "failed to get data writer", err)
	}

	_, err = w.Write([]byte(raw))
	if err != nil {
		return "", newDeliveryError(DeliveryFailed, "failed to write message", err)
	}

	err = w.Close()
	if err != nil {
		return "", newDeliveryError(DeliveryFailed, "failed to finish message", err)
	}

	return messageID, nil
}

// ValidateProvider validates the SMTP configuration
func (s *SMTPProvider) ValidateProvider(ctx context.Context) error {
	if s.config.SMTP.Host == "" {
		return &ValidationError{Field: "host", Reason: "SMTP host is required"}
	}
	if s.config.SMTP.Port == 0 {
		return &ValidationError{Field: "port", Reason: "SMTP port is required"}
	}
	if s.config.SMTP.Username == "" {
		return &ValidationError{Field: "username", Reason: "SMTP username is required"}
	}
	if s.config.SMTP.Password == "" {
		return &ValidationError{Field: "password", Reason: "SMTP password is required"}
	}
	return nil
}

// createMessage creates an RFC 5322 message with multipart alternative
// bodies when both representations are present
func (s *SMTPProvider) createMessage(from, messageID string, m *Message) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", m.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", m.Subject))
	msg.WriteString(fmt.Sprintf("Message-ID: %s\r\n", messageID))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if m.HTML != "" && m.Text != "" {
		// multipart message
		boundary := "boundary-flows-notify-email"
		msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary))

		// text part
		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		msg.WriteString(m.Text)
		msg.WriteString("\r\n\r\n")

		// HTML part
		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		msg.WriteString(m.HTML)
		msg.WriteString("\r\n\r\n")

		msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	} else if m.HTML != "" {
		// HTML only
		msg.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		msg.WriteString(m.HTML)
	} else {
		// text only
		msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		msg.WriteString(m.Text)
	}

	return msg.String()
}
