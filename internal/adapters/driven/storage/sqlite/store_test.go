package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogoto/blogoto/internal/core/domain"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testPost(id, title string, published time.Time) domain.Post {
	return domain.Post{
		ID:          id,
		Title:       title,
		Slug:        domain.Slugify(title),
		HTMLContent: "<p>" + title + "</p>",
		PublishedAt: published,
		Status:      domain.PostStatusPublished,
	}
}

func TestNewStoreRunsMigrations(t *testing.T) {
	store := setupStore(t)

	// Re-opening the same directory must not re-run applied migrations.
	again, err := NewStore(filepath.Dir(store.Path()))
	require.NoError(t, err)
	defer again.Close()
}

func TestPostStoreUpsertIsIdempotent(t *testing.T) {
	store := setupStore(t)
	posts := store.PostStore()
	ctx := context.Background()

	post := testPost("file-1", "Hello World", time.Now().UTC())
	require.NoError(t, posts.Upsert(ctx, post))
	require.NoError(t, posts.Upsert(ctx, post))

	listed, err := posts.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestPostStoreUpsertReplaces(t *testing.T) {
	store := setupStore(t)
	posts := store.PostStore()
	ctx := context.Background()

	first := testPost("file-1", "First Title", time.Now().UTC())
	require.NoError(t, posts.Upsert(ctx, first))

	second := testPost("file-1", "Second Title", time.Now().UTC())
	require.NoError(t, posts.Upsert(ctx, second))

	got, err := posts.GetBySlug(ctx, "second-title")
	require.NoError(t, err)
	assert.Equal(t, "file-1", got.ID)
	assert.Equal(t, "Second Title", got.Title)

	_, err = posts.GetBySlug(ctx, "first-title")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostStoreListOrdering(t *testing.T) {
	store := setupStore(t)
	posts := store.PostStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, posts.Upsert(ctx, testPost("a", "Oldest", base)))
	require.NoError(t, posts.Upsert(ctx, testPost("b", "Newest", base.Add(2*time.Hour))))
	require.NoError(t, posts.Upsert(ctx, testPost("c", "Middle", base.Add(time.Hour))))

	listed, err := posts.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Newest", listed[0].Title)
	assert.Equal(t, "Middle", listed[1].Title)
	assert.Equal(t, "Oldest", listed[2].Title)
}

func TestPostStoreListExcludesDrafts(t *testing.T) {
	store := setupStore(t)
	posts := store.PostStore()
	ctx := context.Background()

	draft := testPost("d", "Draft Post", time.Now().UTC())
	draft.Status = domain.PostStatusDraft
	require.NoError(t, posts.Upsert(ctx, draft))
	require.NoError(t, posts.Upsert(ctx, testPost("p", "Public Post", time.Now().UTC())))

	listed, err := posts.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Public Post", listed[0].Title)
}

func TestPostStoreSlugCollisionMostRecentWins(t *testing.T) {
	store := setupStore(t)
	posts := store.PostStore()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, posts.Upsert(ctx, testPost("a", "Same Title", base)))
	require.NoError(t, posts.Upsert(ctx, testPost("b", "Same Title", base.Add(time.Hour))))

	got, err := posts.GetBySlug(ctx, "same-title")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)
}

func TestPostStoreGetBySlugNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.PostStore().GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialStoreRoundTrip(t *testing.T) {
	store := setupStore(t)
	creds := store.CredentialStore()
	ctx := context.Background()

	_, err := creds.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	saved := domain.Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		Scopes:       []string{"https://www.googleapis.com/auth/drive.readonly"},
	}
	require.NoError(t, creds.Save(ctx, saved))

	got, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.AccessToken, got.AccessToken)
	assert.Equal(t, saved.RefreshToken, got.RefreshToken)
	assert.True(t, saved.Expiry.Equal(got.Expiry))
}

func TestCredentialStoreOverwrite(t *testing.T) {
	store := setupStore(t)
	creds := store.CredentialStore()
	ctx := context.Background()

	require.NoError(t, creds.Save(ctx, domain.Credentials{AccessToken: "old"}))
	require.NoError(t, creds.Save(ctx, domain.Credentials{AccessToken: "new"}))

	got, err := creds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
}
