package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks pagesearch/internal/vectorstore Store

import "context"

// Payload field names shared by every store implementation.
const (
	FieldContent = "content"
	FieldHTML    = "html"
	FieldPath    = "path"
	FieldURL     = "url"
)

// Record is an indexed chunk together with its provenance and embedding.
type Record struct {
	ID      string
	Vector  []float32
	Content string
	HTML    string
	Path    string
	URL     string
}

// Filter selects records by exact match on every field.
type Filter struct {
	Path string
	URL  string
}

// Hit is a nearest-neighbour match. Score is the store's cosine similarity.
type Hit struct {
	ID      string
	Score   float32
	Content string
	HTML    string
	Path    string
	URL     string
}

// Store defines the vector storage operations used for indexing and search.
type Store interface {
	// Upsert inserts or replaces records in the collection.
	Upsert(ctx context.Context, collection string, records []Record) error

	// Count returns the number of records matching the filter exactly.
	Count(ctx context.Context, collection string, filter Filter) (int, error)

	// Nearest returns up to limit records closest to vector, nearest first.
	Nearest(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error)

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
