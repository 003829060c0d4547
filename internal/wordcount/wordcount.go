// Package wordcount derives word counts from rich-text scene content.
//
// Content is treated as an opaque markup payload everywhere else in the
// system; this package is the single place that knows how to reduce it to
// rendered plain text. Every word count stored on a scene or project must
// come from Count — caller-supplied counts are never trusted.
package wordcount

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every element and attribute, leaving only text nodes.
var strict = bluemonday.StrictPolicy()

// PlainText reduces a markup payload to its rendered plain text.
func PlainText(content string) string {
	if content == "" {
		return ""
	}

	// Tags are also word boundaries: "<p>one</p><p>two</p>" renders as two
	// words, so separate adjacent elements before stripping them.
	spaced := strings.ReplaceAll(content, "<", " <")

	stripped := strict.Sanitize(spaced)

	// Sanitize entity-escapes the surviving text; undo that so counting
	// sees the characters the writer sees.
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// Count returns the number of whitespace-delimited tokens in the rendered
// plain text of content. Empty or markup-only content counts as zero.
// Deterministic and side-effect free.
func Count(content string) int {
	return len(strings.Fields(PlainText(content)))
}
