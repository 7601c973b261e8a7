package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Vector store backends accepted by VECTOR_STORE.
const (
	VectorStoreQdrant = "qdrant"
	VectorStoreMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	EmbeddingBaseURL     string
	EmbeddingModelName   string
	EmbeddingAPIKey      string
	EmbeddingBatchSize   int
	EmbeddingConcurrency int

	VectorStore      string
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	QdrantVectorSize int

	DBPath         string
	ChunkMaxTokens int
	SearchLimit    int

	FetchTimeout  time.Duration
	FetchRPS      float64
	FetchMaxBytes int64
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),
		VectorStore:        strings.ToLower(getEnv("VECTOR_STORE", VectorStoreQdrant)),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:       getEnv("QDRANT_API_KEY", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "web_content"),
		DBPath:             getEnv("DB_PATH", "./data/pagesearch.db"),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if cfg.VectorStore != VectorStoreQdrant && cfg.VectorStore != VectorStoreMemory {
		return nil, fmt.Errorf("VECTOR_STORE must be %s or %s, got %q", VectorStoreQdrant, VectorStoreMemory, cfg.VectorStore)
	}

	// QDRANT_VECTOR_SIZE must match the output size of the embeddings model.
	// If it changes, the collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.EmbeddingBatchSize, err = getPositiveInt("EMBEDDING_BATCH_SIZE", 32); err != nil {
		return nil, err
	}
	if cfg.EmbeddingConcurrency, err = getPositiveInt("EMBEDDING_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.ChunkMaxTokens, err = getPositiveInt("CHUNK_MAX_TOKENS", 500); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = getPositiveInt("SEARCH_LIMIT", 10); err != nil {
		return nil, err
	}

	cfg.FetchTimeout, err = time.ParseDuration(getEnv("FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be a valid duration: %w", err)
	}
	if cfg.FetchTimeout <= 0 {
		return nil, fmt.Errorf("FETCH_TIMEOUT must be greater than 0")
	}

	// Zero disables per-host rate limiting
	cfg.FetchRPS, err = strconv.ParseFloat(getEnv("FETCH_RPS", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("FETCH_RPS must be a valid number: %w", err)
	}
	if cfg.FetchRPS < 0 {
		return nil, fmt.Errorf("FETCH_RPS must not be negative")
	}

	cfg.FetchMaxBytes, err = strconv.ParseInt(getEnv("FETCH_MAX_BYTES", strconv.Itoa(10<<20)), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("FETCH_MAX_BYTES must be a valid integer: %w", err)
	}
	if cfg.FetchMaxBytes <= 0 {
		return nil, fmt.Errorf("FETCH_MAX_BYTES must be greater than 0")
	}

	// Create ./data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getPositiveInt parses an integer environment variable that must be greater than 0.
func getPositiveInt(key string, defaultValue int) (int, error) {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return value, nil
}
