package indexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraphs(count, wordsEach int) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < count; i++ {
		sb.WriteString("<p>")
		sb.WriteString(strings.TrimSpace(strings.Repeat("word ", wordsEach)))
		sb.WriteString("</p>")
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func TestNewHTMLChunker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		maxTokens int
		want      int
	}{
		{"explicit budget", 42, 42},
		{"zero uses default", 0, DefaultMaxTokens},
		{"negative uses default", -3, DefaultMaxTokens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewHTMLChunker(tt.maxTokens).MaxTokens())
		})
	}
}

func TestHTMLChunker_Chunk(t *testing.T) {
	t.Parallel()

	t.Run("strips script and keeps paragraph", func(t *testing.T) {
		t.Parallel()

		doc := `<html><head><title>T</title><script>var x = 1;</script></head><body><p>Hello world.</p></body></html>`

		chunks, err := NewHTMLChunker(500).Chunk(doc)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Hello world.", chunks[0].Text)
		assert.Equal(t, "<p>Hello world.</p>", chunks[0].HTML)
		assert.Equal(t, 3, chunks[0].TokenCount)
	})

	t.Run("splits long document into bounded chunks", func(t *testing.T) {
		t.Parallel()

		// Twelve paragraphs of 100 tokens each
		chunks, err := NewHTMLChunker(500).Chunk(paragraphs(12, 100))
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(chunks), 3)

		total := 0
		for _, chunk := range chunks {
			assert.LessOrEqual(t, chunk.TokenCount, 500)
			assert.NotEmpty(t, chunk.Text)
			total += chunk.TokenCount
		}
		assert.Equal(t, 1200, total)
	})

	t.Run("oversized node forms its own chunk", func(t *testing.T) {
		t.Parallel()

		doc := "<p>a b</p><p>" + strings.Repeat("big ", 600) + "</p><p>c</p>"

		chunks, err := NewHTMLChunker(500).Chunk(doc)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, "a b", chunks[0].Text)
		assert.Equal(t, 600, chunks[1].TokenCount)
		assert.Equal(t, "c", chunks[2].Text)
	})

	t.Run("empty input yields no chunks", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{"", "   \n\t", "<html></html>", "<html><body>  </body></html>"} {
			chunks, err := NewHTMLChunker(500).Chunk(doc)
			require.NoError(t, err)
			assert.NotNil(t, chunks)
			assert.Empty(t, chunks, "input %q", doc)
		}
	})

	t.Run("head content is excluded", func(t *testing.T) {
		t.Parallel()

		doc := `<html><head><title>Title</title><meta name="x" content="y"><style>p { color: red; }</style></head><body>Body</body></html>`

		chunks, err := NewHTMLChunker(500).Chunk(doc)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Body", chunks[0].Text)
		assert.Equal(t, "<body>Body</body>", chunks[0].HTML)
	})

	t.Run("comments do not contribute", func(t *testing.T) {
		t.Parallel()

		chunks, err := NewHTMLChunker(500).Chunk("<p>Hi<!-- hidden --></p>")
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Hi", chunks[0].Text)
	})

	t.Run("whitespace is normalized", func(t *testing.T) {
		t.Parallel()

		chunks, err := NewHTMLChunker(500).Chunk("<ul>\n  <li>  first\n item </li>\n  <li>second</li>\n</ul>")
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "first item second", chunks[0].Text)
	})

	t.Run("parent markup repeats per contributing node", func(t *testing.T) {
		t.Parallel()

		chunks, err := NewHTMLChunker(500).Chunk("<p>one<b>two</b>three</p>")
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "one two three", chunks[0].Text)
		assert.Equal(t, "<p>one<b>two</b>three</p><b>two</b><p>one<b>two</b>three</p>", chunks[0].HTML)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		chunker := NewHTMLChunker(50)
		doc := paragraphs(7, 23)

		first, err := chunker.Chunk(doc)
		require.NoError(t, err)
		second, err := chunker.Chunk(doc)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestHTMLChunker_ChunksCoverAllText(t *testing.T) {
	t.Parallel()

	doc := `<h1>Guide</h1><p>One  two, three.</p><div>four<span>five six</span></div><p>seven</p>`
	want := "Guide One two, three. four five six seven"

	for _, maxTokens := range []int{1, 2, 3, 5, 100} {
		chunks, err := NewHTMLChunker(maxTokens).Chunk(doc)
		require.NoError(t, err)

		texts := make([]string, 0, len(chunks))
		for _, chunk := range chunks {
			texts = append(texts, chunk.Text)
		}
		assert.Equal(t, want, strings.Join(texts, " "), "maxTokens=%d", maxTokens)
	}
}

func TestCountTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"words and punctuation", "Hello world.", 3},
		{"apostrophe splits", "don't", 3},
		{"underscore joins", "a_b c", 2},
		{"numbers", "42.5%", 4},
		{"accented letters", "naïve café", 2},
		{"combining mark", "e\u0301te", 1},
		{"cjk run", "日本語", 1},
		{"whitespace only", " \n\t ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countTokens(tt.text))
		})
	}
}
