// Package html reduces raw Google Docs HTML exports to an allow-listed
// subset safe to serve to blog visitors.
package html

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/blogoto/blogoto/internal/core/ports/driven"
)

// Ensure Sanitiser implements the interface.
var _ driven.Sanitiser = (*Sanitiser)(nil)

// Sanitiser strips disallowed markup from exported HTML. It never
// fails: well-formed-but-disallowed content is removed, not rejected.
type Sanitiser struct {
	policy *bluemonday.Policy
}

// allowedTags is the base tag allow-list: common structural and
// formatting elements plus images.
var allowedTags = []string{
	"address", "article", "aside", "footer", "header",
	"h1", "h2", "h3", "h4", "h5", "h6", "hgroup", "main", "nav", "section",
	"blockquote", "dd", "div", "dl", "dt", "figcaption", "figure",
	"hr", "li", "ol", "p", "pre", "ul",
	"a", "abbr", "b", "bdi", "bdo", "br", "cite", "code", "data", "dfn",
	"em", "i", "kbd", "mark", "q", "rb", "rp", "rt", "rtc", "ruby",
	"s", "samp", "small", "span", "strong", "sub", "sup", "time", "u",
	"var", "wbr",
	"caption", "col", "colgroup", "table", "tbody", "td", "tfoot",
	"th", "thead", "tr",
	"img",
}

// New creates the blog sanitiser.
//
// Google Docs exports carry their formatting entirely in inline style
// attributes, so style is allowed on any tag. Links and images keep a
// small attribute set; URL schemes are limited to data, http and
// https (Docs inlines images as data URIs).
func New() *Sanitiser {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(allowedTags...)
	policy.AllowAttrs("style").Globally()
	policy.AllowAttrs("href", "name", "target").OnElements("a")
	policy.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")
	policy.AllowURLSchemes("data", "http", "https")

	return &Sanitiser{policy: policy}
}

// Sanitise returns the allow-listed subset of rawHTML. Deterministic:
// the same input always yields the same output.
func (s *Sanitiser) Sanitise(rawHTML string) string {
	return s.policy.Sanitize(rawHTML)
}
