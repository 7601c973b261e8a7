package indexer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"pagesearch/internal/contextutil"
	"pagesearch/internal/storage"
	"pagesearch/internal/vectorstore"
)

const (
	// DefaultEmbedBatchSize is the number of chunk texts sent per embeddings request.
	DefaultEmbedBatchSize = 32
	// DefaultEmbedConcurrency is the number of embeddings requests in flight per page.
	DefaultEmbedConcurrency = 4
)

// Embedder turns texts into vectors, one per input, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Chunker splits a page's HTML into chunks.
type Chunker interface {
	Chunk(content string) ([]Chunk, error)
}

// IndexReport describes the outcome of EnsureIndexed.
type IndexReport struct {
	URL            string     `json:"url"`
	Path           string     `json:"path"`
	AlreadyIndexed bool       `json:"already_indexed"`
	Chunks         int        `json:"chunks"`
	TokenStats     TokenStats `json:"token_stats"`
}

// Coordinator makes sure a page's chunks are present in the vector store,
// writing them at most once per (url, path).
type Coordinator struct {
	store       vectorstore.Store
	collection  string
	embedder    Embedder
	chunker     Chunker
	ledger      storage.PageStore
	batchSize   int
	concurrency int
	group       singleflight.Group
}

// NewCoordinator creates a new index coordinator.
// ledger may be nil. Non-positive batchSize and concurrency fall back to the defaults.
func NewCoordinator(
	store vectorstore.Store,
	collection string,
	embedder Embedder,
	chunker Chunker,
	ledger storage.PageStore,
	batchSize int,
	concurrency int,
) *Coordinator {
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}
	if concurrency <= 0 {
		concurrency = DefaultEmbedConcurrency
	}
	return &Coordinator{
		store:       store,
		collection:  collection,
		embedder:    embedder,
		chunker:     chunker,
		ledger:      ledger,
		batchSize:   batchSize,
		concurrency: concurrency,
	}
}

// PathFromURL returns the path component of rawURL, or "/" when it is empty.
func PathFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Path == "" {
		return "/", nil
	}
	return parsed.Path, nil
}

// EnsureIndexed indexes content under (rawURL, its path) unless the store
// already holds at least one record for that pair.
//
// Concurrent calls for the same pair within this process share one pass. The
// pass is detached from any single caller's cancellation; each caller stops
// waiting when its own ctx is done. Separate processes can still both observe
// an empty store and index twice.
func (c *Coordinator) EnsureIndexed(ctx context.Context, rawURL, content string) (IndexReport, error) {
	path, err := PathFromURL(rawURL)
	if err != nil {
		return IndexReport{}, err
	}

	// Keeps context values such as the request logger
	passCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(rawURL+"\x00"+path, func() (any, error) {
		return c.ensureIndexed(passCtx, rawURL, path, content)
	})

	select {
	case <-ctx.Done():
		return IndexReport{}, fmt.Errorf("failed to wait for indexing: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return IndexReport{}, res.Err
		}
		if res.Shared {
			contextutil.LoggerFromContext(ctx).DebugContext(ctx, "joined in-flight indexing", "url", rawURL, "path", path)
		}
		return res.Val.(IndexReport), nil
	}
}

func (c *Coordinator) ensureIndexed(ctx context.Context, rawURL, path, content string) (IndexReport, error) {
	logger := contextutil.LoggerFromContext(ctx)
	report := IndexReport{URL: rawURL, Path: path}

	count, err := c.store.Count(ctx, c.collection, vectorstore.Filter{Path: path, URL: rawURL})
	if err != nil {
		return IndexReport{}, fmt.Errorf("failed to check existing index: %w", err)
	}
	if count > 0 {
		logger.DebugContext(ctx, "page already indexed", "url", rawURL, "path", path, "records", count)
		report.AlreadyIndexed = true
		return report, nil
	}

	chunks, err := c.chunker.Chunk(content)
	if err != nil {
		return IndexReport{}, fmt.Errorf("failed to chunk html: %w", err)
	}

	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "url", rawURL, "path", path)
	} else if err := c.writeChunks(ctx, rawURL, path, chunks); err != nil {
		return IndexReport{}, err
	}

	report.Chunks = len(chunks)
	report.TokenStats = computeTokenStats(chunkTokenCounts(chunks))

	c.recordPage(ctx, report)

	logger.InfoContext(ctx, "indexed page", "url", rawURL, "path", path, "chunks", report.Chunks)
	return report, nil
}

// writeChunks embeds chunks in batches and upserts one record per chunk.
// The first failure cancels the remaining batches; records already written stay.
func (c *Coordinator) writeChunks(ctx context.Context, rawURL, path string, chunks []Chunk) error {
	records := make([]vectorstore.Record, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for start := 0; start < len(chunks); start += c.batchSize {
		end := min(start+c.batchSize, len(chunks))

		g.Go(func() error {
			texts := make([]string, 0, end-start)
			for _, chunk := range chunks[start:end] {
				texts = append(texts, chunk.Text)
			}

			vectors, err := c.embedder.EmbedTexts(gctx, texts)
			if err != nil {
				return fmt.Errorf("failed to generate embeddings: %w", err)
			}
			if len(vectors) != len(texts) {
				return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(texts), len(vectors))
			}

			for i, chunk := range chunks[start:end] {
				records[start+i] = vectorstore.Record{
					ID:      uuid.New().String(),
					Vector:  vectors[i],
					Content: chunk.Text,
					HTML:    chunk.HTML,
					Path:    path,
					URL:     rawURL,
				}
			}

			if err := c.store.Upsert(gctx, c.collection, records[start:end]); err != nil {
				return fmt.Errorf("failed to upsert vectors: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// recordPage writes the ledger row. The vector store stays authoritative, so
// failures are only logged.
func (c *Coordinator) recordPage(ctx context.Context, report IndexReport) {
	if c.ledger == nil {
		return
	}

	page := &storage.PageRecord{
		URL:        report.URL,
		Path:       report.Path,
		ChunkCount: report.Chunks,
		TokenMin:   report.TokenStats.Min,
		TokenMax:   report.TokenStats.Max,
		TokenMean:  report.TokenStats.Mean,
	}
	if err := c.ledger.Upsert(ctx, page); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record page", "url", report.URL, "path", report.Path, "error", err)
	}
}
