package notification

import (
	"context"
	"time"

	"flows-notify/pkg/logger"
)

// Worker polls the notification queue on a fixed interval and pushes
// each pending batch through the pipeline.
type Worker struct {
	service  *Service
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewWorker creates a queue worker around the given service.
func NewWorker(service *Service, interval time.Duration) *Worker {
	return &Worker{
		service:  service,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the poll loop in its own goroutine.
func (w *Worker) Start() {
	go w.run()
	logger.Infof("notification worker started, polling every %s", w.interval)
}

// Stop signals the loop to exit and waits for the in-flight batch.
func (w *Worker) Stop() {
	close(w.stop)
	<-w.done
	logger.Info("notification worker stopped")
}

func (w *Worker) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Worker) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	results, err := w.service.ProcessPending(ctx)
	if err != nil {
		logger.Error(err, "notification queue poll failed")
		return
	}

	if len(results) > 0 {
		sent := 0
		for _, result := range results {
			if result.Success {
				sent++
			}
		}
		logger.Infof("processed %d notifications (%d sent, %d failed)", len(results), sent, len(results)-sent)
	}
}
