package google

import (
	"context"
	"sync"

	"golang.org/x/oauth2"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
	"github.com/blogoto/blogoto/internal/logger"
)

// NewTokenSource builds an oauth2.TokenSource from stored credentials.
// When the underlying source refreshes the access token, the new token
// pair is written back through the credential store so later
// invocations start from a valid token.
func NewTokenSource(ctx context.Context, config *oauth2.Config, store driven.CredentialStore, creds *domain.Credentials) oauth2.TokenSource {
	return &savingTokenSource{
		ctx:   ctx,
		src:   config.TokenSource(ctx, tokenFromCredentials(creds)),
		store: store,
		last:  creds.AccessToken,
	}
}

// savingTokenSource persists refreshed tokens back to the store.
type savingTokenSource struct {
	ctx   context.Context
	src   oauth2.TokenSource
	store driven.CredentialStore

	mu   sync.Mutex
	last string
}

// Token implements oauth2.TokenSource.
func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.last {
		// Refresh happened: overwrite the stored pair. A failed write
		// is not fatal, the token still works for this invocation.
		if err := s.store.Save(s.ctx, credentialsFromToken(token)); err != nil {
			logger.Warn("Persist refreshed token: %v", err)
		} else {
			s.last = token.AccessToken
		}
	}
	return token, nil
}
