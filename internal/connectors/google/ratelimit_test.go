package google

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestRecordFromErrorSetsBackoff(t *testing.T) {
	r := NewRateLimiter()
	err := &googleapi.Error{
		Code:   http.StatusTooManyRequests,
		Header: http.Header{"Retry-After": []string{"30"}},
	}

	r.RecordFromError(err)

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()
	assert.True(t, retryAt.After(time.Now().Add(25*time.Second)))
}

func TestRecordFromErrorDefaultsWithoutRetryAfter(t *testing.T) {
	r := NewRateLimiter()

	r.RecordFromError(&googleapi.Error{Code: http.StatusTooManyRequests})

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()
	assert.True(t, retryAt.After(time.Now().Add(55*time.Second)))
}

func TestRecordFromErrorIgnoresOtherErrors(t *testing.T) {
	r := NewRateLimiter()

	r.RecordFromError(&googleapi.Error{Code: http.StatusInternalServerError})
	r.RecordFromError(errors.New("network down"))

	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()
	assert.True(t, retryAt.IsZero())
}

func TestWaitHonoursBackoffWindow(t *testing.T) {
	r := NewRateLimiter()
	r.RecordRateLimitError(30)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
