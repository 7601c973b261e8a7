package storage

import "time"

// PageRecord is one page this instance has indexed.
type PageRecord struct {
	ID         string  // UUID
	URL        string  // URL exactly as requested
	Path       string  // URL path, "/" when empty
	ChunkCount int     // Chunks written during the indexing pass
	TokenMin   int     // Smallest chunk token count
	TokenMax   int     // Largest chunk token count
	TokenMean  float64 // Mean chunk token count
	IndexedAt  time.Time
}
