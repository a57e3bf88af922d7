package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersIncrement(t *testing.T) {
	m := NewMetrics("blogoto")

	m.WebhookDelivery()
	m.WebhookDelivery()
	m.ChangesListed(3)
	m.PostPublished()
	m.PublishFailure()
	m.DrainFailure()
	m.WatchEstablished()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.WebhookDeliveries))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ChangesListedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PostsPublishedTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PublishFailuresTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DrainFailuresTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.WatchesEstablishedTotal))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := NewMetrics("blogoto")
	m.PostPublished()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "blogoto_posts_published_total 1")
}
