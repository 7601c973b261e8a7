package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagesearch/internal/config"
	"pagesearch/internal/fetcher"
	"pagesearch/internal/http"
	"pagesearch/internal/indexer"
	"pagesearch/internal/llm"
	"pagesearch/internal/rag"
	"pagesearch/internal/service"
	"pagesearch/internal/storage"
	"pagesearch/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers natural-language queries against the content of a web page,
// indexing the page into a vector store the first time it is seen.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: PageSearch API
//   description: |
//     Semantic search over web pages. Send a URL and a query; the page is fetched,
//     split into chunks, embedded and stored on first use, and the chunks closest
//     to the query are returned with a 0-100 relevance score.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize page ledger
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	pageRepo := storage.NewPageRepo(db)

	// Initialize vector store
	var vectorStore vectorstore.Store
	switch cfg.VectorStore {
	case config.VectorStoreMemory:
		memStore := vectorstore.NewMemoryStore()
		if err := memStore.EnsureCollection(ctx, cfg.QdrantCollection); err != nil {
			log.Fatalf("Failed to create in-memory collection: %v", err)
		}
		vectorStore = memStore
		slog.Warn("Using in-memory vector store; indexed pages are lost on restart")
	default:
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		defer func() {
			_ = qdrantStore.Close()
		}()

		// Ensure collection exists with correct vector size
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		vectorStore = qdrantStore
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)
	}

	// Validate embedding client (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	if ok, err := embedder.HasModel(ctx); err != nil {
		slog.Warn("Could not list embedding models", "error", err)
	} else if !ok {
		slog.Warn("Embedding model not advertised by server", "model", cfg.EmbeddingModelName)
	}
	if err := embedder.Probe(ctx); err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.QdrantVectorSize)

	pageFetcher := fetcher.NewFetcher(
		fetcher.WithTimeout(cfg.FetchTimeout),
		fetcher.WithMaxBytes(cfg.FetchMaxBytes),
		fetcher.WithRateLimit(cfg.FetchRPS),
	)

	coordinator := indexer.NewCoordinator(
		vectorStore,
		cfg.QdrantCollection,
		embedder,
		indexer.NewHTMLChunker(cfg.ChunkMaxTokens),
		pageRepo,
		cfg.EmbeddingBatchSize,
		cfg.EmbeddingConcurrency,
	)

	resolver := rag.NewResolver(embedder, vectorStore, cfg.QdrantCollection, cfg.SearchLimit)
	searchService := service.NewSearchService(pageFetcher, coordinator, resolver)

	// Create router with dependencies
	deps := &http.Deps{
		SearchService:  searchService,
		VectorStore:    vectorStore,
		PageStore:      pageRepo,
		Ledger:         db,
		CollectionName: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute, // First search on a large page embeds every chunk
		IdleTimeout:       2 * time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}
}
