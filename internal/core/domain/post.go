package domain

import (
	"regexp"
	"strings"
	"time"
)

// PostStatus gates post visibility on the read side.
type PostStatus string

const (
	// PostStatusPublished makes a post visible to the listing endpoint.
	PostStatusPublished PostStatus = "published"

	// PostStatusDraft hides a post from the listing endpoint.
	PostStatusDraft PostStatus = "draft"
)

// IsValid returns true if the status is recognised.
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusPublished, PostStatusDraft:
		return true
	default:
		return false
	}
}

// Post is a rendered blog post derived from a Google Doc.
//
// The ID is the Drive file ID of the originating document, so
// re-processing the same document overwrites the existing post
// rather than creating a duplicate.
type Post struct {
	// ID is the Drive file ID of the source document.
	ID string `json:"id"`
	// Title is the document name at export time.
	Title string `json:"title"`
	// Slug is derived deterministically from Title via Slugify.
	Slug string `json:"slug"`
	// HTMLContent is the sanitised HTML export of the document.
	HTMLContent string `json:"htmlContent"`
	// PublishedAt is when the post was last (re-)published.
	PublishedAt time.Time `json:"publishDate"`
	// Status gates visibility; only published posts are listed.
	Status PostStatus `json:"status"`
}

// PostSummary is the listing projection of a Post.
// The full HTML body is replaced by a short plain-text snippet.
type PostSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Snippet     string `json:"snippet"`
	PublishDate string `json:"publishDate"`
}

// SnippetLength is the maximum snippet length in runes.
const SnippetLength = 150

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	htmlTags       = regexp.MustCompile(`<[^>]*>`)
)

// Slugify derives a URL slug from a post title. Lowercase, runs of
// non-alphanumeric characters collapse to a single hyphen, leading and
// trailing hyphens are stripped. Deterministic: the same title always
// yields the same slug. Slugs are not guaranteed globally unique.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Summary builds the listing projection of the post.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Snippet:     Snippet(p.HTMLContent),
		PublishDate: p.PublishedAt.UTC().Format(time.RFC3339),
	}
}

// Snippet produces a plain-text preview of HTML content: tags stripped,
// truncated to SnippetLength runes with a trailing ellipsis.
func Snippet(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}
	text := htmlTags.ReplaceAllString(htmlContent, "")
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > SnippetLength {
		text = string(runes[:SnippetLength])
	}
	return text + "..."
}
