package driving

import (
	"context"

	"github.com/blogoto/blogoto/internal/core/domain"
)

// PostReader is the read API consumed by the rendering frontend.
type PostReader interface {
	// List returns summaries of all published posts, newest first.
	// Store failures degrade to an empty list: visitors see "no
	// posts", never a hard error.
	List(ctx context.Context) []domain.PostSummary

	// GetBySlug fetches one post by slug.
	// Returns domain.ErrNotFound when no post matches.
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
}
