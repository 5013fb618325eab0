package views

import (
	"net/url"
	"strings"
)

// DefaultImageBaseURL is the stock-photo placeholder endpoint. The query text
// is appended after the trailing "?".
const DefaultImageBaseURL = "https://source.unsplash.com/400x200/?"

// QueryEscape encodes spaces as "+" and also escapes the marks that
// encodeURIComponent leaves alone.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ImageURL builds the placeholder image address for a free-text query.
// It returns "" when the query is empty.
func ImageURL(base, query string) string {
	if query == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + componentEscaper.Replace(url.QueryEscape(query))
}
