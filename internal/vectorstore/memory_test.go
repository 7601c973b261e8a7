package vectorstore

import (
	"context"
	"testing"
)

func TestMemoryStore_CountExactMatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	records := []Record{
		{ID: "1", Vector: []float32{1, 0}, Path: "/docs", URL: "https://example.com/docs"},
		{ID: "2", Vector: []float32{0, 1}, Path: "/docs", URL: "https://example.com/docs"},
		{ID: "3", Vector: []float32{1, 1}, Path: "/docs", URL: "https://other.com/docs"},
	}
	if err := store.Upsert(ctx, "c", records); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"both fields match", Filter{Path: "/docs", URL: "https://example.com/docs"}, 2},
		{"url differs", Filter{Path: "/docs", URL: "https://example.com/docs/"}, 0},
		{"path differs", Filter{Path: "/", URL: "https://example.com/docs"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Count(ctx, "c", tt.filter)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMemoryStore_NearestOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	records := []Record{
		{ID: "far", Vector: []float32{-1, 0}, Content: "far"},
		{ID: "near", Vector: []float32{1, 0}, Content: "near"},
		{ID: "mid", Vector: []float32{1, 1}, Content: "mid"},
	}
	if err := store.Upsert(ctx, "c", records); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	hits, err := store.Nearest(ctx, "c", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Nearest() returned %d hits, want 2", len(hits))
	}
	if hits[0].ID != "near" || hits[1].ID != "mid" {
		t.Errorf("Nearest() order = [%s %s], want [near mid]", hits[0].ID, hits[1].ID)
	}
	if hits[0].Score < 0.999 {
		t.Errorf("Nearest() top score = %v, want ~1", hits[0].Score)
	}
}

func TestMemoryStore_NearestEmptyCollection(t *testing.T) {
	hits, err := NewMemoryStore().Nearest(context.Background(), "missing", []float32{1}, 10)
	if err != nil {
		t.Fatalf("Nearest() error = %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Nearest() on empty collection returned %d hits", len(hits))
	}
}

func TestMemoryStore_NearestInvalidLimit(t *testing.T) {
	if _, err := NewMemoryStore().Nearest(context.Background(), "c", []float32{1}, 0); err == nil {
		t.Error("Nearest() with limit=0 should return error")
	}
}

func TestMemoryStore_UpsertReplacesByID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Upsert(ctx, "c", []Record{{ID: "1", Vector: []float32{1, 0}, Content: "old"}})
	_ = store.Upsert(ctx, "c", []Record{{ID: "1", Vector: []float32{1, 0}, Content: "new"}})

	hits, _ := store.Nearest(ctx, "c", []float32{1, 0}, 10)
	if len(hits) != 1 || hits[0].Content != "new" {
		t.Errorf("Upsert() should replace record with same ID, got %+v", hits)
	}
}

func TestMemoryStore_UpsertDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_ = store.Upsert(ctx, "c", []Record{{ID: "1", Vector: []float32{1, 0}}})
	if err := store.Upsert(ctx, "c", []Record{{ID: "2", Vector: []float32{1, 0, 0}}}); err == nil {
		t.Error("Upsert() with mismatched dimension should return error")
	}
}

func TestMemoryStore_CollectionExists(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	exists, _ := store.CollectionExists(ctx, "c")
	if exists {
		t.Error("CollectionExists() = true before creation")
	}

	_ = store.EnsureCollection(ctx, "c")
	exists, _ = store.CollectionExists(ctx, "c")
	if !exists {
		t.Error("CollectionExists() = false after EnsureCollection")
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 2}, []float32{1, 2}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosine(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}
