package memory

import (
	"context"
	"sync"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is an in-memory implementation of driven.CursorStore.
type CursorStore struct {
	mu     sync.RWMutex
	cursor string
	set    bool
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{}
}

// Get retrieves the stored cursor.
func (s *CursorStore) Get(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return "", domain.ErrNotFound
	}
	return s.cursor, nil
}

// Save stores the cursor, replacing any previous value.
func (s *CursorStore) Save(_ context.Context, cursor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
	s.set = true
	return nil
}

// Clear removes the stored cursor. Test helper.
func (s *CursorStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = ""
	s.set = false
}
