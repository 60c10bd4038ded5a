package controller

import (
	"net/http"
	"time"

	"flows-notify/pkg/logger"
	"flows-notify/pkg/model"

	"github.com/gin-gonic/gin"
)

// ErrorReportController ingests frontend error reports during local
// development. Reports are logged, never persisted, and the endpoint
// always acknowledges so a broken reporter cannot break the frontend.
type ErrorReportController struct{}

// NewErrorReportController creates a new error report controller.
func NewErrorReportController() *ErrorReportController {
	return &ErrorReportController{}
}

// HandleErrorReport logs one frontend error report and acknowledges it.
func (erc *ErrorReportController) HandleErrorReport(c *gin.Context) {
	var report model.ErrorReport
	if err := c.ShouldBindJSON(&report); err != nil {
		logger.Error(err, "received malformed error report")
		c.JSON(http.StatusOK, model.ErrorReportResponse{
			Success:   false,
			Message:   "malformed error report",
			Timestamp: time.Now().UnixMilli(),
		})
		return
	}

	switch report.Type {
	case model.ReportTypeFlows:
		logger.Warnf("[frontend] flows error in %s: %s", report.Operation, report.Error.Message)
	case model.ReportTypeData:
		logger.Warnf("[frontend] data error on %s during %s: %s", report.Table, report.Operation, report.Error.Message)
	case model.ReportTypeUI:
		logger.Warnf("[frontend] ui error in %s (%s): %s", report.Component, report.Action, report.Error.Message)
	default:
		logger.Warnf("[frontend] error report of unknown type %q: %s", report.Type, report.Error.Message)
	}

	c.JSON(http.StatusOK, model.ErrorReportResponse{
		Success:   true,
		Message:   "error report received",
		Timestamp: time.Now().UnixMilli(),
	})
}
