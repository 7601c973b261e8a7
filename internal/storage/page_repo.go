package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_page_store.go -package=mocks pagesearch/internal/storage PageStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PageStore defines the interface for page ledger operations.
type PageStore interface {
	// Upsert inserts a page or refreshes the stats of an existing (url, path) row.
	Upsert(ctx context.Context, page *PageRecord) error
	// GetByURL gets a page by URL and path.
	// Returns nil and ErrNotFound if not found.
	GetByURL(ctx context.Context, url, path string) (*PageRecord, error)
	// List returns every page, most recently indexed first.
	List(ctx context.Context) ([]PageRecord, error)
}

// PageRepo provides methods for page operations.
// It implements the PageStore interface.
type PageRepo struct {
	db *sql.DB
}

// NewPageRepo creates a new PageRepo.
func NewPageRepo(db *sql.DB) *PageRepo {
	return &PageRepo{db: db}
}

const pageColumns = "id, url, path, chunk_count, token_min, token_max, token_mean, indexed_at"

// GetByURL gets a page by URL and path.
// Returns nil and ErrNotFound if not found.
func (r *PageRepo) GetByURL(ctx context.Context, url, path string) (*PageRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE url = ? AND path = ?",
		url, path,
	)

	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}

	return page, nil
}

// Upsert inserts a new page or updates an existing one.
// A new page gets a generated UUID; an existing page keeps its ID.
// IndexedAt is set to the current time when zero.
func (r *PageRepo) Upsert(ctx context.Context, page *PageRecord) error {
	existing, err := r.GetByURL(ctx, page.URL, page.Path)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing page: %w", err)
	}

	if existing != nil {
		page.ID = existing.ID
	} else if page.ID == "" {
		page.ID = uuid.New().String()
	}

	if page.IndexedAt.IsZero() {
		page.IndexedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pages (id, url, path, chunk_count, token_min, token_max, token_mean, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (url, path) DO UPDATE SET
		 chunk_count = excluded.chunk_count, token_min = excluded.token_min,
		 token_max = excluded.token_max, token_mean = excluded.token_mean,
		 indexed_at = excluded.indexed_at`,
		page.ID, page.URL, page.Path, page.ChunkCount, page.TokenMin, page.TokenMax, page.TokenMean,
		page.IndexedAt.UTC().Format(sqlite3.SQLiteTimestampFormats[0]),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert page: %w", err)
	}

	return nil
}

// List returns every page, most recently indexed first.
func (r *PageRepo) List(ctx context.Context) ([]PageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM pages ORDER BY indexed_at DESC, url, path",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	pages := []PageRecord{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, *page)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pages: %w", err)
	}

	return pages, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*PageRecord, error) {
	var page PageRecord
	var indexedAtStr string

	err := row.Scan(&page.ID, &page.URL, &page.Path, &page.ChunkCount,
		&page.TokenMin, &page.TokenMax, &page.TokenMean, &indexedAtStr)
	if err != nil {
		return nil, err
	}

	page.IndexedAt, err = parseTimestamp(indexedAtStr)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// parseTimestamp parses a DATETIME value. The driver may hand back either the
// stored text or an RFC3339 rendering of its own time.Time conversion.
func parseTimestamp(s string) (time.Time, error) {
	layouts := append([]string{time.RFC3339Nano}, sqlite3.SQLiteTimestampFormats...)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", s)
}
