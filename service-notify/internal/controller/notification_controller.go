package controller

import (
	"context"
	"net/http"

	"flows-notify/pkg/logger"
	"flows-notify/pkg/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationService is the pipeline surface the controller depends on.
type NotificationService interface {
	SendByID(ctx context.Context, id uuid.UUID, templateName string) (*model.SendResult, error)
	ProcessPending(ctx context.Context) ([]*model.SendResult, error)
	SendTest(ctx context.Context, to string) (string, error)
}

// NotificationController handles invitation notification requests.
type NotificationController struct {
	service NotificationService
}

// NewNotificationController creates a new notification controller.
func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

type sendNotificationRequest struct {
	Template string `json:"template"`
}

// SendNotification runs the pipeline for a single invitation.
func (nc *NotificationController) SendNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid notification ID"})
		return
	}

	// template override is optional; an empty body is fine
	var req sendNotificationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
			return
		}
	}

	result, err := nc.service.SendByID(c.Request.Context(), id, req.Template)
	if err != nil {
		logger.Errorf(err, "failed to process notification %s", id)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "notification not found"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ProcessNotifications drains one batch of the pending queue.
func (nc *NotificationController) ProcessNotifications(c *gin.Context) {
	results, err := nc.service.ProcessPending(c.Request.Context())
	if err != nil {
		logger.Error(err, "failed to process pending notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to process notifications"})
		return
	}

	sent := 0
	for _, result := range results {
		if result.Success {
			sent++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"processed": len(results),
		"sent":      sent,
		"failed":    len(results) - sent,
		"results":   results,
	})
}

type sendTestRequest struct {
	To string `json:"to" binding:"required"`
}

// SendTestEmail sends a canned test email to verify delivery end to end.
func (nc *NotificationController) SendTestEmail(c *gin.Context) {
	var req sendTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "recipient address is required"})
		return
	}

	messageID, err := nc.service.SendTest(c.Request.Context(), req.To)
	if err != nil {
		logger.Errorf(err, "failed to send test email to %s", req.To)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
		"to":        req.To,
	})
}
