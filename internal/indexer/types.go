package indexer

// Chunk represents a token-bounded group of text nodes from one HTML document.
type Chunk struct {
	Text       string // Normalized text of the contributing nodes, joined by a single space
	HTML       string // Outer HTML of each contributing node's parent element, in order
	TokenCount int    // Approximate token total accumulated while building (not persisted)
}
