package memory

import (
	"context"
	"sync"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore.
type CredentialStore struct {
	mu    sync.RWMutex
	creds *domain.Credentials
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// Get retrieves the stored credentials.
func (s *CredentialStore) Get(_ context.Context) (*domain.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return nil, domain.ErrNotFound
	}
	copied := *s.creds
	return &copied, nil
}

// Save stores credentials, replacing any previous set.
func (s *CredentialStore) Save(_ context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = &creds
	return nil
}
