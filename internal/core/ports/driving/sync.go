package driving

import "context"

// SyncOrchestrator drives the publishing pipeline: the OAuth handoff,
// the watch channel lifecycle, and webhook-triggered change draining.
//
// The orchestrator is stateless between invocations; all state lives
// in the credential, cursor and post stores. Overlapping invocations
// are safe because post upserts are idempotent per document and the
// cursor only ever advances.
type SyncOrchestrator interface {
	// AuthURL returns the consent screen URL for the /auth redirect.
	AuthURL(state string) string

	// Authorise exchanges a one-time authorisation code for
	// credentials and persists them.
	Authorise(ctx context.Context, code string) error

	// EstablishWatch issues a fresh start cursor, persists it, and
	// registers a new push-notification channel. Idempotent: always
	// safe to re-run, it only replaces the cursor and creates a new
	// channel. Returns domain.ErrAuthRequired without credentials.
	EstablishWatch(ctx context.Context) error

	// Drain consumes all pending changes since the stored cursor,
	// publishing each in-scope document, then advances the cursor.
	// A missing cursor re-establishes the watch instead of
	// processing changes.
	Drain(ctx context.Context) error
}
