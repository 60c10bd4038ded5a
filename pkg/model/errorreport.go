package model

// error report event types accepted by the dev error-report endpoint
const (
	ReportTypeFlows = "flows-error"
	ReportTypeData  = "data-error"
	ReportTypeUI    = "ui-error"
)

// ReportedError carries the error detail of a client-side report.
type ReportedError struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// ErrorReport is one client-side error event. Operation, Table and
// Component are populated depending on Type.
type ErrorReport struct {
	Type      string                 `json:"type"`
	Operation string                 `json:"operation,omitempty"`
	Table     string                 `json:"table,omitempty"`
	Component string                 `json:"component,omitempty"`
	Action    string                 `json:"action,omitempty"`
	Error     ReportedError          `json:"error"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// ErrorReportResponse is always returned by the error-report endpoint,
// success or not, so the reporting client never has to special-case it.
type ErrorReportResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
