package driven

import (
	"context"

	"github.com/blogoto/blogoto/internal/core/domain"
)

// ChangeSource wraps the Drive Changes API for one authenticated
// session. Implementations are created per invocation through a
// ChangeSourceFactory; no client handles outlive a single webhook
// delivery or renewal.
type ChangeSource interface {
	// StartCursor asks Drive for a fresh "changes from now on" page
	// token. Used only while (re-)establishing the watch channel.
	StartCursor(ctx context.Context) (string, error)

	// Watch registers a push-notification channel for changes at or
	// after cursor, delivered to address. Every call creates a new
	// channel identity; prior channels lapse on their own expiry.
	Watch(ctx context.Context, cursor, address string) (*domain.Subscription, error)

	// ListChanges returns all change events since cursor together
	// with the next cursor. Pagination is drained internally: the
	// returned cursor is always the final newStartPageToken, never an
	// intermediate page token. A partial-page failure returns an
	// error and an empty cursor.
	ListChanges(ctx context.Context, cursor string) ([]domain.ChangeEvent, string, error)

	// ExportDocument returns the current HTML rendering of a Google
	// Doc. Returns domain.ErrNotFound if the document no longer
	// exists or is inaccessible.
	ExportDocument(ctx context.Context, fileID string) (string, error)
}

// ChangeSourceFactory builds a fresh authenticated session from the
// stored credentials. Returns domain.ErrAuthRequired when no usable
// credentials exist. The returned CursorStore is backed by the same
// session, keeping the cursor tied to the OAuth identity rather than
// the post store.
type ChangeSourceFactory interface {
	Create(ctx context.Context) (ChangeSource, CursorStore, error)
}
