// Package errorreport ships best-effort error events to a reporting
// endpoint during development. The reporter is constructed explicitly
// and passed to call sites; there is no package-level instance.
package errorreport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"flows-notify/pkg/config"
	"flows-notify/pkg/logger"
	"flows-notify/pkg/model"
)

const defaultQueueSize = 64

// Reporter posts error events to the configured endpoint. Reporting is
// fire-and-forget: events are queued and sent by a background worker,
// failures are retried a bounded number of times and then dropped.
// A disabled or endpoint-less reporter silently no-ops.
type Reporter struct {
	cfg    config.ErrorReportConfig
	client *http.Client

	queue  chan model.ErrorReport
	done   chan struct{}
	closed sync.Once
}

// NewReporter creates a reporter and starts its sender worker.
func NewReporter(cfg config.ErrorReportConfig) *Reporter {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	r := &Reporter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		queue:  make(chan model.ErrorReport, defaultQueueSize),
		done:   make(chan struct{}),
	}

	go r.run()
	return r
}

// Report queues one event. It never blocks the caller: when the queue
// is full the event is dropped.
func (r *Reporter) Report(event model.ErrorReport) {
	if !r.cfg.Enabled || r.cfg.Endpoint == "" {
		if r.cfg.Debug {
			logger.Debugf("error report (reporting disabled): %s %s", event.Type, event.Error.Message)
		}
		return
	}

	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	select {
	case r.queue <- event:
	default:
		if r.cfg.Debug {
			logger.Warn("error report queue full, dropping event")
		}
	}
}

// ReportError is a convenience wrapper for pipeline failures.
func (r *Reporter) ReportError(operation string, err error, context map[string]interface{}) {
	if err == nil {
		return
	}
	r.Report(model.ErrorReport{
		Type:      model.ReportTypeFlows,
		Operation: operation,
		Error: model.ReportedError{
			Message: err.Error(),
			Name:    fmt.Sprintf("%T", err),
		},
		Context: context,
	})
}

// Close stops the worker after draining queued events.
func (r *Reporter) Close() {
	r.closed.Do(func() {
		close(r.queue)
		<-r.done
	})
}

func (r *Reporter) run() {
	defer close(r.done)

	for event := range r.queue {
		r.sendWithRetry(event)
	}
}

func (r *Reporter) sendWithRetry(event model.ErrorReport) {
	for attempt := 0; attempt < r.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(r.cfg.RetryDelay)
		}

		err := r.send(event)
		if err == nil {
			return
		}

		if r.cfg.Debug {
			logger.Warnf("error report attempt %d failed: %v", attempt+1, err)
		}
	}
	// out of retries: drop silently, reporting must never break the caller
}

func (r *Reporter) send(event model.ErrorReport) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("report endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
