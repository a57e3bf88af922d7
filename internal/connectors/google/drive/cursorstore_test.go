package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogoto/blogoto/internal/connectors/google"
	"github.com/blogoto/blogoto/internal/core/domain"
)

// tokenPayload extracts the cursor JSON from a multipart upload body.
var tokenPayload = regexp.MustCompile(`\{"startPageToken":"[^"]*"\}`)

// fakeCursorBackend emulates the appDataFolder surface the cursor
// store touches: file listing, multipart create and update, and
// alt=media download.
type fakeCursorBackend struct {
	t *testing.T

	mu          sync.Mutex
	created     bool
	payload     string
	createCalls int
	updateCalls int
	listOrderBy string
}

func (b *fakeCursorBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files"):
		b.listOrderBy = r.URL.Query().Get("orderBy")
		if b.created {
			fmt.Fprint(w, `{"files":[{"id":"cursor-file"}]}`)
		} else {
			fmt.Fprint(w, `{"files":[]}`)
		}
	case r.Method == http.MethodPost:
		b.createCalls++
		b.created = true
		b.payload = b.extractPayload(r)
		fmt.Fprint(w, `{"id":"cursor-file"}`)
	case r.Method == http.MethodPatch:
		b.updateCalls++
		b.payload = b.extractPayload(r)
		fmt.Fprint(w, `{"id":"cursor-file"}`)
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/files/cursor-file"):
		fmt.Fprint(w, b.payload)
	default:
		b.t.Errorf("unexpected request %s %s", r.Method, r.URL)
	}
}

func (b *fakeCursorBackend) extractPayload(r *http.Request) string {
	body, err := io.ReadAll(r.Body)
	assert.NoError(b.t, err)
	payload := tokenPayload.FindString(string(body))
	assert.NotEmpty(b.t, payload, "upload body carries no cursor payload")
	return payload
}

func newFakeCursorStore(t *testing.T, backend *fakeCursorBackend) *CursorStore {
	t.Helper()
	return &CursorStore{svc: newFakeService(t, backend), limiter: google.NewRateLimiter()}
}

func TestCursorStoreSaveCreatesThenUpdates(t *testing.T) {
	backend := &fakeCursorBackend{t: t}
	store := newFakeCursorStore(t, backend)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "100"))
	assert.Equal(t, 1, backend.createCalls)
	assert.Equal(t, 0, backend.updateCalls)
	assert.JSONEq(t, `{"startPageToken":"100"}`, backend.payload)

	require.NoError(t, store.Save(ctx, "101"))
	assert.Equal(t, 1, backend.createCalls)
	assert.Equal(t, 1, backend.updateCalls)
	assert.JSONEq(t, `{"startPageToken":"101"}`, backend.payload)

	cursor, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "101", cursor)
}

func TestCursorStoreGetWithoutFile(t *testing.T) {
	store := newFakeCursorStore(t, &fakeCursorBackend{t: t})

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCursorStoreListsNewestFirst(t *testing.T) {
	backend := &fakeCursorBackend{t: t}
	store := newFakeCursorStore(t, backend)

	_, err := store.Get(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "modifiedTime desc", backend.listOrderBy)
}
