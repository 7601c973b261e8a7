package indexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultMaxTokens is the default token budget per chunk.
const DefaultMaxTokens = 500

// skippedParents lists parent elements whose text never contributes to a chunk.
var skippedParents = map[string]struct{}{
	"style":  {},
	"script": {},
	"head":   {},
	"title":  {},
	"meta":   {},
}

// HTMLChunker splits HTML documents into chunks bounded by an approximate token count.
type HTMLChunker struct {
	maxTokens int
}

// NewHTMLChunker creates a new HTML chunker.
// A non-positive maxTokens falls back to DefaultMaxTokens.
func NewHTMLChunker(maxTokens int) *HTMLChunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &HTMLChunker{maxTokens: maxTokens}
}

// MaxTokens returns the token budget used by the chunker.
func (c *HTMLChunker) MaxTokens() int {
	return c.maxTokens
}

// Chunk parses content and groups its text nodes into chunks.
// Nodes are never split: a single node larger than the budget forms a chunk on its own.
func (c *HTMLChunker) Chunk(content string) ([]Chunk, error) {
	if strings.TrimSpace(content) == "" {
		return []Chunk{}, nil
	}

	// Scripting disabled so <noscript> content is parsed as markup, not raw text
	root, err := html.ParseWithOptions(strings.NewReader(content), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	doc.Find("script, style").Remove()

	b := &chunkBuilder{
		maxTokens: c.maxTokens,
		chunks:    []Chunk{},
		rendered:  make(map[*html.Node]string),
	}

	for _, node := range textNodes(root) {
		if skipNode(node) {
			continue
		}
		if strings.TrimSpace(node.Data) == "" {
			continue
		}
		if err := b.add(node, countTokens(node.Data)); err != nil {
			return nil, err
		}
	}

	if err := b.flush(); err != nil {
		return nil, err
	}

	return b.chunks, nil
}

// chunkBuilder accumulates text nodes into the running chunk.
type chunkBuilder struct {
	maxTokens int
	chunks    []Chunk
	nodes     []*html.Node
	total     int
	rendered  map[*html.Node]string // Parent markup by node identity
}

func (b *chunkBuilder) add(node *html.Node, tokens int) error {
	if b.total+tokens <= b.maxTokens {
		b.nodes = append(b.nodes, node)
		b.total += tokens
		return nil
	}

	if err := b.flush(); err != nil {
		return err
	}
	b.nodes = append(b.nodes, node)
	b.total = tokens
	return nil
}

// flush emits the running chunk, if any, and resets it.
func (b *chunkBuilder) flush() error {
	if len(b.nodes) == 0 {
		return nil
	}

	texts := make([]string, 0, len(b.nodes))
	var markup strings.Builder
	for _, node := range b.nodes {
		texts = append(texts, Normalize(node.Data))
		if node.Parent == nil {
			continue
		}
		parentHTML, err := b.render(node.Parent)
		if err != nil {
			return err
		}
		markup.WriteString(parentHTML)
	}

	b.chunks = append(b.chunks, Chunk{
		Text:       strings.Join(texts, " "),
		HTML:       markup.String(),
		TokenCount: b.total,
	})
	b.nodes = nil
	b.total = 0
	return nil
}

func (b *chunkBuilder) render(node *html.Node) (string, error) {
	if s, ok := b.rendered[node]; ok {
		return s, nil
	}
	var sb strings.Builder
	if err := html.Render(&sb, node); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	b.rendered[node] = sb.String()
	return sb.String(), nil
}

// textNodes returns every text node under root in depth-first document order.
func textNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			nodes = append(nodes, n)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return nodes
}

// skipNode reports whether the node's containing element excludes it from chunks.
func skipNode(node *html.Node) bool {
	parent := node.Parent
	if parent == nil || parent.Type == html.DocumentNode {
		return true
	}
	if parent.Type != html.ElementNode {
		return false
	}
	_, skip := skippedParents[parent.Data]
	return skip
}

// countTokens approximates a token count: each maximal run of word characters
// counts once, and every other non-space character counts on its own.
func countTokens(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case isWordRune(r):
			if !inWord {
				count++
				inWord = true
			}
		case unicode.IsSpace(r):
			inWord = false
		default:
			count++
			inWord = false
		}
	}
	return count
}

// Unlike a regex \w, combining marks count as word runes so "e\u0301te" is one token.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}
