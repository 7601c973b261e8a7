package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pagesearch/internal/contextutil"
	"pagesearch/internal/service"
)

// maxRequestBytes bounds the JSON body of a search request.
const maxRequestBytes = 1 << 20

// SearchHandler handles HTTP requests for page search.
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// SearchRequest represents the HTTP request payload for search.
type SearchRequest struct {
	URL   string `json:"url"`
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchResult is one matched chunk in the HTTP response.
type SearchResult struct {
	Content string  `json:"content"`
	HTML    string  `json:"html"`
	Path    string  `json:"path"`
	Score   float64 `json:"score"`
}

// SearchResponse represents the HTTP response payload for search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ServeHTTP handles HTTP requests for search.
//
// The page at url is fetched, indexed on first sight, and the chunks closest
// to query are returned with a 0 to 100 relevance score.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Convert HTTP request to service request
	svcResp, err := h.searchService.Search(ctx, service.SearchRequest{
		URL:   req.URL,
		Query: req.Query,
		Limit: req.Limit,
	})
	if err != nil {
		h.handleServiceError(w, ctx, err)
		return
	}

	resp := SearchResponse{
		Results: make([]SearchResult, 0, len(svcResp.Results)),
	}
	for _, result := range svcResp.Results {
		resp.Results = append(resp.Results, SearchResult{
			Content: result.Content,
			HTML:    result.HTML,
			Path:    result.Path,
			Score:   result.Score,
		})
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// handleServiceError maps service errors to HTTP status codes. Fetch failures
// are reported to the caller with their cause; everything else past
// validation is an opaque 500.
func (h *SearchHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	var fetchErr *service.FetchError
	if errors.As(err, &fetchErr) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Error fetching URL: %v", fetchErr.Err))
		return
	}

	logger.ErrorContext(ctx, "service error", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
