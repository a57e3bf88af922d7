package services

import (
	"context"
	"fmt"

	"github.com/blogoto/blogoto/internal/core/domain"
	"github.com/blogoto/blogoto/internal/core/ports/driven"
	"github.com/blogoto/blogoto/internal/core/ports/driving"
	"github.com/blogoto/blogoto/internal/logger"
)

// Ensure PostService implements the interface.
var _ driving.PostReader = (*PostService)(nil)

// PostService serves the read side of the blog: the listing the
// frontend renders and per-slug lookups.
type PostService struct {
	store driven.PostStore
}

// NewPostService creates the read-side post service.
func NewPostService(store driven.PostStore) *PostService {
	return &PostService{store: store}
}

// List returns summaries of all published posts, newest first. Store
// failures degrade to an empty list so visitors see "no posts" rather
// than an error page.
func (s *PostService) List(ctx context.Context) []domain.PostSummary {
	posts, err := s.store.ListPublished(ctx)
	if err != nil {
		logger.Error("List published posts: %v", err)
		return []domain.PostSummary{}
	}

	summaries := make([]domain.PostSummary, 0, len(posts))
	for i := range posts {
		summaries = append(summaries, posts[i].Summary())
	}
	return summaries
}

// GetBySlug fetches one post by slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	if slug == "" {
		return nil, fmt.Errorf("%w: empty slug", domain.ErrInvalidInput)
	}

	post, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	return post, nil
}
