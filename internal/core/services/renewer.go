package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driving"
	"github.com/blogoto/blogoto/internal/logger"
)

// DefaultRenewInterval re-registers the watch channel once a day.
// Drive channels expire within 24 hours, after which notifications
// silently stop; the renewal defends against that.
const DefaultRenewInterval = 24 * time.Hour

// Renewer periodically re-establishes the Drive watch channel,
// independent of webhook traffic.
type Renewer struct {
	orchestrator driving.SyncOrchestrator
	interval     time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewRenewer creates a renewer. A non-positive interval falls back to
// DefaultRenewInterval.
func NewRenewer(orchestrator driving.SyncOrchestrator, interval time.Duration) *Renewer {
	if interval <= 0 {
		interval = DefaultRenewInterval
	}
	return &Renewer{
		orchestrator: orchestrator,
		interval:     interval,
	}
}

// Start begins the renewal loop. One renewal is attempted immediately,
// then on every interval tick. This method blocks until Stop is called
// or the context is cancelled.
func (r *Renewer) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil // Already running
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.mu.Unlock()

	r.wg.Add(1)
	defer r.wg.Done()

	r.renew(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stopCh:
			return nil
		case <-ticker.C:
			r.renew(ctx)
		}
	}
}

// Stop shuts down the renewal loop and waits for it to finish.
func (r *Renewer) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()
}

// renew runs one renewal attempt. Failures are logged only: the loop
// keeps going and webhook traffic can still trigger recovery.
func (r *Renewer) renew(ctx context.Context) {
	if err := r.orchestrator.EstablishWatch(ctx); err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			logger.Warn("Watch renewal skipped: %v", err)
			return
		}
		logger.Error("Watch renewal failed: %v", err)
		return
	}
	logger.Info("Watch channel renewed")
}
