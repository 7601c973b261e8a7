package rag

import (
	"context"
	"fmt"

	"pagesearch/internal/contextutil"
	"pagesearch/internal/vectorstore"
)

const (
	// DefaultLimit is the number of results returned when none is requested.
	DefaultLimit = 10
	// MaxLimit caps the number of results per query.
	MaxLimit = 50
)

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Resolver answers free-text queries by nearest-neighbour lookup.
type Resolver struct {
	embedder     Embedder
	store        vectorstore.Store
	collection   string
	defaultLimit int
}

// NewResolver creates a new query resolver.
// A non-positive defaultLimit falls back to DefaultLimit; larger values are capped at MaxLimit.
func NewResolver(embedder Embedder, store vectorstore.Store, collection string, defaultLimit int) *Resolver {
	return &Resolver{
		embedder:     embedder,
		store:        store,
		collection:   collection,
		defaultLimit: clampLimit(defaultLimit, DefaultLimit),
	}
}

// EffectiveLimit returns the number of results a request for limit will ask for.
func (r *Resolver) EffectiveLimit(limit int) int {
	return clampLimit(limit, r.defaultLimit)
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	return min(limit, MaxLimit)
}

// Search embeds query and returns up to limit results, nearest first.
// An empty result set is not an error.
func (r *Resolver) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	limit = r.EffectiveLimit(limit)

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	hits, err := r.store.Nearest(ctx, r.collection, embeddings[0], limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search vector store", "error", err)
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			Content: hit.Content,
			HTML:    hit.HTML,
			Path:    hit.Path,
			Score:   NormalizeScore(hit.Score),
		})
	}

	logger.InfoContext(ctx, "query resolved", "limit", limit, "results", len(results))
	return results, nil
}
