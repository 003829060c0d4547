package wordcount_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkhq/inkwell/internal/wordcount"
)

func TestCount_Empty(t *testing.T) {
	require.Equal(t, 0, wordcount.Count(""))
}

func TestCount_MarkupOnly(t *testing.T) {
	require.Equal(t, 0, wordcount.Count("<p></p>"))
	require.Equal(t, 0, wordcount.Count("<p><br></p><p></p>"))
}

func TestCount_SimpleParagraph(t *testing.T) {
	require.Equal(t, 2, wordcount.Count("<p>hello world</p>"))
}

func TestCount_PlainTextPassthrough(t *testing.T) {
	require.Equal(t, 3, wordcount.Count("the cat sat"))
}

func TestCount_AdjacentElementsAreWordBoundaries(t *testing.T) {
	// Two paragraphs with no whitespace between them must not merge into
	// a single token.
	require.Equal(t, 2, wordcount.Count("<p>one</p><p>two</p>"))
}

func TestCount_InlineMarkupDoesNotSplitCounting(t *testing.T) {
	require.Equal(t, 4, wordcount.Count("<p>The <em>quick</em> brown fox</p>"))
}

func TestCount_Entities(t *testing.T) {
	require.Equal(t, 3, wordcount.Count("<p>fish &amp; chips</p>"))
}

func TestCount_Deterministic(t *testing.T) {
	content := "<p>She said <strong>no</strong>.</p><p>Again.</p>"
	first := wordcount.Count(content)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, wordcount.Count(content))
	}
}

func TestPlainText_StripsAttributes(t *testing.T) {
	require.Equal(t, "link", wordcount.PlainText(`<a href="https://example.com" onclick="x()">link</a>`))
}
