package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "My First Post!", "my-first-post"},
		{"already a slug", "hello-world", "hello-world"},
		{"punctuation runs collapse", "Go -- & the Web!!", "go-the-web"},
		{"leading and trailing stripped", "  ...Edges...  ", "edges"},
		{"digits kept", "Top 10 Tips (2025)", "top-10-tips-2025"},
		{"uppercase lowered", "SHOUTING TITLE", "shouting-title"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	titles := []string{"My First Post!", "Ünïcode & Co.", "a b c"}
	for _, title := range titles {
		first := Slugify(title)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Slugify(title))
		}
	}
}

func TestSlugifyOutputAlphabet(t *testing.T) {
	slug := Slugify("  Weird ~~ Title *** with   spacing  ")
	assert.False(t, strings.HasPrefix(slug, "-"))
	assert.False(t, strings.HasSuffix(slug, "-"))
	assert.NotContains(t, slug, "--")
	for _, r := range slug {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, valid, "unexpected rune %q in slug %q", r, slug)
	}
}

func TestSnippet(t *testing.T) {
	t.Run("strips tags", func(t *testing.T) {
		got := Snippet("<p>Hello <b>world</b></p>")
		assert.Equal(t, "Hello world...", got)
	})

	t.Run("truncates long content", func(t *testing.T) {
		long := strings.Repeat("a", 400)
		got := Snippet("<p>" + long + "</p>")
		assert.Len(t, got, SnippetLength+3)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("empty content", func(t *testing.T) {
		assert.Equal(t, "", Snippet(""))
	})
}

func TestPostSummary(t *testing.T) {
	published := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	post := Post{
		ID:          "file-1",
		Title:       "My First Post!",
		Slug:        Slugify("My First Post!"),
		HTMLContent: "<p>Some body text</p>",
		PublishedAt: published,
		Status:      PostStatusPublished,
	}

	summary := post.Summary()
	assert.Equal(t, "file-1", summary.ID)
	assert.Equal(t, "my-first-post", summary.Slug)
	assert.Equal(t, "Some body text...", summary.Snippet)
	assert.Equal(t, "2025-06-01T12:00:00Z", summary.PublishDate)
}

func TestPostStatusIsValid(t *testing.T) {
	assert.True(t, PostStatusPublished.IsValid())
	assert.True(t, PostStatusDraft.IsValid())
	assert.False(t, PostStatus("archived").IsValid())
}

func TestCredentials(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		creds := Credentials{AccessToken: "at", Expiry: time.Now().Add(-time.Hour)}
		assert.True(t, creds.IsExpired())
		assert.True(t, creds.IsAuthenticated())
	})

	t.Run("zero expiry never expires", func(t *testing.T) {
		creds := Credentials{AccessToken: "at"}
		assert.False(t, creds.IsExpired())
	})

	t.Run("missing token is unauthenticated", func(t *testing.T) {
		creds := Credentials{}
		assert.False(t, creds.IsAuthenticated())
		assert.False(t, creds.HasRefreshToken())
	})
}

func TestChangeEventInFolder(t *testing.T) {
	event := ChangeEvent{ParentIDs: []string{"folder-a", "folder-b"}}
	assert.True(t, event.InFolder("folder-a"))
	assert.False(t, event.InFolder("folder-c"))

	empty := ChangeEvent{}
	assert.False(t, empty.InFolder("folder-a"))
}
