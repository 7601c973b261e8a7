package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"pagesearch/internal/contextutil"
)

// MemoryStore implements Store in process using brute-force cosine similarity.
// Contents are lost when the process exits.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]Record),
	}
}

// EnsureCollection creates the collection if it does not exist.
func (s *MemoryStore) EnsureCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = []Record{}
	}
	return nil
}

// Upsert inserts records, replacing any with the same ID.
func (s *MemoryStore) Upsert(ctx context.Context, collection string, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.collections[collection]
	for _, rec := range records {
		if len(existing) > 0 && len(rec.Vector) != len(existing[0].Vector) {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", len(existing[0].Vector), len(rec.Vector))
		}
		replaced := false
		for i := range existing {
			if existing[i].ID == rec.ID {
				existing[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, rec)
		}
	}
	s.collections[collection] = existing

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "upserted records", "collection", collection, "count", len(records))
	return nil
}

// Count returns the number of records matching the filter.
func (s *MemoryStore) Count(_ context.Context, collection string, filter Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.collections[collection] {
		if rec.Path == filter.Path && rec.URL == filter.URL {
			count++
		}
	}
	return count, nil
}

// Nearest returns the records with the highest cosine similarity to vector.
// Ties keep insertion order.
func (s *MemoryStore) Nearest(_ context.Context, collection string, vector []float32, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	s.mu.RLock()
	records := s.collections[collection]
	hits := make([]Hit, 0, len(records))
	for _, rec := range records {
		hits = append(hits, Hit{
			ID:      rec.ID,
			Score:   cosine(vector, rec.Vector),
			Content: rec.Content,
			HTML:    rec.HTML,
			Path:    rec.Path,
			URL:     rec.URL,
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// CollectionExists reports whether the collection has been created or written to.
func (s *MemoryStore) CollectionExists(_ context.Context, collection string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collections[collection]
	return ok, nil
}

// cosine returns the cosine similarity of a and b, or 0 when undefined.
func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
