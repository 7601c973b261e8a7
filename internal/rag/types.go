package rag

// Result is one chunk matched by a query.
type Result struct {
	// Content is the chunk's normalized text.
	Content string `json:"content"`
	// HTML is the outer HTML of the chunk's contributing parent elements.
	HTML string `json:"html"`
	// Path is the URL path the chunk was indexed under.
	Path string `json:"path"`
	// Score is the relevance on a 0 to 100 scale, higher is closer.
	Score float64 `json:"score"`
}
