package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_deps.go -package=mocks pagesearch/internal/service PageFetcher,PageIndexer,Searcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_service.go -package=mocks -mock_names=SearchService=MockSearchService pagesearch/internal/service SearchService

import (
	"context"
	"net/url"
	"strings"

	"pagesearch/internal/contextutil"
	"pagesearch/internal/indexer"
	"pagesearch/internal/rag"
)

// PageFetcher retrieves the HTML of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// PageIndexer makes sure a page's chunks are in the vector store.
type PageIndexer interface {
	EnsureIndexed(ctx context.Context, url, html string) (indexer.IndexReport, error)
}

// Searcher answers a free-text query against the vector store.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]rag.Result, error)
}

// SearchRequest represents a search request in the domain layer.
type SearchRequest struct {
	URL   string
	Query string
	Limit int // Non-positive means the configured default
}

// SearchResponse represents a search response in the domain layer.
type SearchResponse struct {
	Results []rag.Result
	Index   indexer.IndexReport
}

// SearchService indexes a page on first sight and searches the indexed content.
type SearchService interface {
	// Search fetches req.URL, indexes it if needed, and returns the closest chunks to req.Query.
	Search(ctx context.Context, req SearchRequest) (SearchResponse, error)
}

// searchService implements SearchService.
type searchService struct {
	fetcher  PageFetcher
	indexer  PageIndexer
	searcher Searcher
}

// NewSearchService creates a new SearchService.
func NewSearchService(fetcher PageFetcher, indexer PageIndexer, searcher Searcher) SearchService {
	return &searchService{
		fetcher:  fetcher,
		indexer:  indexer,
		searcher: searcher,
	}
}

// Search fetches, indexes and queries in that order. Errors are typed by stage:
// ValidationError, FetchError, IndexingError or QueryError.
func (s *searchService) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := validateSearchRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid search request", "error", err)
		return SearchResponse{}, err
	}

	html, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch page", "url", req.URL, "error", err)
		return SearchResponse{}, &FetchError{URL: req.URL, Err: err}
	}

	report, err := s.indexer.EnsureIndexed(ctx, req.URL, html)
	if err != nil {
		logger.ErrorContext(ctx, "failed to index page", "url", req.URL, "error", err)
		return SearchResponse{}, &IndexingError{URL: req.URL, Err: WrapError(err, "failed to ensure page is indexed")}
	}

	results, err := s.searcher.Search(ctx, req.Query, req.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve query", "url", req.URL, "error", err)
		return SearchResponse{}, &QueryError{Err: WrapError(err, "failed to resolve query")}
	}

	logger.InfoContext(ctx, "search request processed successfully",
		"url", req.URL,
		"path", report.Path,
		"already_indexed", report.AlreadyIndexed,
		"results", len(results),
	)
	return SearchResponse{
		Results: results,
		Index:   report,
	}, nil
}

func validateSearchRequest(req SearchRequest) error {
	if strings.TrimSpace(req.URL) == "" {
		return &ValidationError{Field: "url", Message: "cannot be empty"}
	}
	if strings.TrimSpace(req.Query) == "" {
		return &ValidationError{Field: "query", Message: "cannot be empty"}
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &ValidationError{Field: "url", Message: "must be an absolute http or https URL"}
	}
	return nil
}
