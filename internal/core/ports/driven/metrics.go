package driven

// MetricsRecorder receives pipeline counters. Implemented by the
// Prometheus adapter; a nil recorder disables recording.
type MetricsRecorder interface {
	// WebhookDelivery records one push-notification delivery.
	WebhookDelivery()

	// ChangesListed records the number of change events in a drained
	// batch, before filtering.
	ChangesListed(n int)

	// PostPublished records one successful post upsert.
	PostPublished()

	// PublishFailure records one per-event export/sanitise/upsert
	// failure inside a batch.
	PublishFailure()

	// DrainFailure records a drain attempt that failed before the
	// batch could be attempted.
	DrainFailure()

	// WatchEstablished records one watch channel (re-)registration.
	WatchEstablished()
}
