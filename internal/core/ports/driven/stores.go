package driven

import (
	"context"

	"github.com/blogoto/blogoto/internal/core/domain"
)

// CredentialStore persists the singleton OAuth token set.
// Save overwrites unconditionally. Get returns domain.ErrNotFound
// when no credentials have been stored yet. Writes must be visible
// to subsequent reads: the webhook path reads what the authorisation
// path wrote.
type CredentialStore interface {
	// Get retrieves the stored credentials.
	Get(ctx context.Context) (*domain.Credentials, error)

	// Save stores credentials, replacing any previous set.
	Save(ctx context.Context, creds domain.Credentials) error
}

// CursorStore persists the singleton change cursor: the page token up
// to which all Drive changes have been processed. It lives out of band
// of the post store so that wiping posts for a re-sync does not lose
// the cursor, and vice versa.
type CursorStore interface {
	// Get retrieves the stored cursor.
	// Returns domain.ErrNotFound when no cursor exists yet.
	Get(ctx context.Context) (string, error)

	// Save stores the cursor, replacing any previous value.
	Save(ctx context.Context, cursor string) error
}

// PostStore persists rendered posts keyed by source document ID.
type PostStore interface {
	// Upsert stores a post, fully replacing any post with the same ID.
	// Re-processing the same document is therefore an overwrite, not
	// a duplicate.
	Upsert(ctx context.Context, post domain.Post) error

	// ListPublished returns all published posts, newest publish time
	// first. Draft posts are excluded.
	ListPublished(ctx context.Context) ([]domain.Post, error)

	// GetBySlug retrieves a post by slug. When multiple posts share a
	// slug the most recently published one wins. Returns
	// domain.ErrNotFound when no post matches.
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
}
