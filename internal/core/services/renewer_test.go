package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blogoto/blogoto/internal/core/domain"
)

// countingOrchestrator records EstablishWatch calls.
type countingOrchestrator struct {
	calls    atomic.Int64
	watchErr error
}

func (o *countingOrchestrator) AuthURL(string) string                  { return "" }
func (o *countingOrchestrator) Authorise(context.Context, string) error { return nil }
func (o *countingOrchestrator) Drain(context.Context) error             { return nil }

func (o *countingOrchestrator) EstablishWatch(context.Context) error {
	o.calls.Add(1)
	return o.watchErr
}

func TestRenewer_RenewsOnStartAndOnTick(t *testing.T) {
	orch := &countingOrchestrator{}
	renewer := NewRenewer(orch, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = renewer.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		return orch.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	renewer.Stop()
	<-done
}

func TestRenewer_KeepsRunningWhenUnauthenticated(t *testing.T) {
	orch := &countingOrchestrator{watchErr: domain.ErrAuthRequired}
	renewer := NewRenewer(orch, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = renewer.Start(context.Background())
	}()

	// Renewal attempts continue despite the failures.
	assert.Eventually(t, func() bool {
		return orch.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	renewer.Stop()
	<-done
}

func TestRenewer_StopBeforeStartIsNoop(t *testing.T) {
	renewer := NewRenewer(&countingOrchestrator{}, time.Hour)
	renewer.Stop()
}

func TestRenewer_ContextCancellation(t *testing.T) {
	orch := &countingOrchestrator{}
	renewer := NewRenewer(orch, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- renewer.Start(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("renewer did not stop on context cancellation")
	}
}

func TestRenewer_DefaultInterval(t *testing.T) {
	renewer := NewRenewer(&countingOrchestrator{}, 0)
	assert.Equal(t, DefaultRenewInterval, renewer.interval)
}
