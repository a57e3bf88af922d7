package drive

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/blogoto/blogoto/internal/connectors/google"
	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ChangeSourceFactory = (*Factory)(nil)

// Factory builds one Drive session per invocation from the stored
// credentials. Nothing built here outlives the invocation, so
// overlapping webhook deliveries never share client state.
type Factory struct {
	config    *oauth2.Config
	credStore driven.CredentialStore
}

// NewFactory creates a session factory.
func NewFactory(authoriser *google.Authoriser, credStore driven.CredentialStore) *Factory {
	return &Factory{
		config:    authoriser.Config(),
		credStore: credStore,
	}
}

// Create builds an authenticated session and its appDataFolder cursor
// store. Returns domain.ErrAuthRequired when no usable credentials
// are stored.
func (f *Factory) Create(ctx context.Context) (driven.ChangeSource, driven.CursorStore, error) {
	creds, err := f.credStore.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("%w: no stored credentials, complete the OAuth flow first", domain.ErrAuthRequired)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read credentials: %w", err)
	}
	if !creds.IsAuthenticated() {
		return nil, nil, fmt.Errorf("%w: stored credentials are empty", domain.ErrAuthRequired)
	}

	ts := google.NewTokenSource(ctx, f.config, f.credStore, creds)
	svc, err := google.NewDriveService(ctx, ts)
	if err != nil {
		return nil, nil, fmt.Errorf("create drive client: %w", err)
	}

	// One limiter per session: a webhook burst is paced as a unit.
	limiter := google.NewRateLimiter()
	session := &Session{svc: svc, limiter: limiter}
	cursors := &CursorStore{svc: svc, limiter: limiter}
	return session, cursors, nil
}
