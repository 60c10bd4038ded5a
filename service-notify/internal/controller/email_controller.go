package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"flows-notify/pkg/config"
	"flows-notify/pkg/email"
	"flows-notify/pkg/logger"
	"flows-notify/pkg/model"

	"github.com/gin-gonic/gin"
)

// EmailController handles direct email delivery requests.
type EmailController struct {
	provider email.Provider
	cfg      *config.Config
}

// NewEmailController creates a new email controller.
func NewEmailController(provider email.Provider, cfg *config.Config) *EmailController {
	return &EmailController{
		provider: provider,
		cfg:      cfg,
	}
}

// SendEmail delivers an arbitrary email through the configured provider.
func (ec *EmailController) SendEmail(c *gin.Context) {
	var req model.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error(err, "failed to bind send email request")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	msg := &email.Message{
		To:       req.To,
		Subject:  req.Subject,
		HTML:     req.HTML,
		Text:     req.Text,
		Metadata: stringifyMetadata(req.Metadata),
	}

	if err := msg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	messageID, err := ec.provider.SendEmail(c.Request.Context(), msg)
	if err != nil {
		logger.Errorf(err, "failed to send email to %s", req.To)

		var delivery *email.DeliveryError
		if errors.As(err, &delivery) {
			c.JSON(delivery.StatusCode, gin.H{
				"success": false,
				"error":   delivery.Message,
				"kind":    string(delivery.Kind),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to send email"})
		return
	}

	c.JSON(http.StatusOK, model.EmailResponse{
		Success:   true,
		MessageID: messageID,
		To:        req.To,
		Subject:   req.Subject,
		Timestamp: time.Now().UTC(),
	})
}

// EmailHealth reports whether the configured provider is ready to send.
func (ec *EmailController) EmailHealth(c *gin.Context) {
	response := gin.H{
		"provider":  ec.cfg.Email.Provider,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := ec.provider.ValidateProvider(c.Request.Context()); err != nil {
		logger.Error(err, "email provider health check failed")

		response["error"] = err.Error()

		var validation *email.ValidationError
		if errors.As(err, &validation) {
			response["status"] = "configuration_error"
		} else {
			response["status"] = "error"
		}

		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	response["status"] = "healthy"
	c.JSON(http.StatusOK, response)
}

func stringifyMetadata(metadata map[string]interface{}) map[string]string {
	if len(metadata) == 0 {
		return nil
	}

	out := make(map[string]string, len(metadata))
	for key, value := range metadata {
		switch v := value.(type) {
		case string:
			out[key] = v
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
