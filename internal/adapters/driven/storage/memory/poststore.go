package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Ensure PostStore implements the interface.
var _ driven.PostStore = (*PostStore)(nil)

// PostStore is an in-memory implementation of driven.PostStore.
type PostStore struct {
	mu    sync.RWMutex
	posts map[string]domain.Post
}

// NewPostStore creates a new in-memory post store.
func NewPostStore() *PostStore {
	return &PostStore{
		posts: make(map[string]domain.Post),
	}
}

// Upsert stores a post, fully replacing any post with the same ID.
func (s *PostStore) Upsert(_ context.Context, post domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ID] = post
	return nil
}

// ListPublished returns published posts, newest publish time first.
func (s *PostStore) ListPublished(_ context.Context) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var published []domain.Post
	for _, post := range s.posts {
		if post.Status == domain.PostStatusPublished {
			published = append(published, post)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].PublishedAt.After(published[j].PublishedAt)
	})
	return published, nil
}

// GetBySlug retrieves a post by slug. On collision the most recently
// published post wins.
func (s *PostStore) GetBySlug(_ context.Context, slug string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var match *domain.Post
	for id := range s.posts {
		post := s.posts[id]
		if post.Slug != slug {
			continue
		}
		if match == nil || post.PublishedAt.After(match.PublishedAt) {
			match = &post
		}
	}
	if match == nil {
		return nil, domain.ErrNotFound
	}
	copied := *match
	return &copied, nil
}

// Len returns the number of stored posts, drafts included.
func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
