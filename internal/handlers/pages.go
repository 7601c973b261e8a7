package handlers

import (
	"net/http"
	"time"

	"pagesearch/internal/contextutil"
	"pagesearch/internal/storage"
)

// PagesHandler lists the pages this instance has indexed.
type PagesHandler struct {
	pageStore storage.PageStore
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(pageStore storage.PageStore) *PagesHandler {
	return &PagesHandler{
		pageStore: pageStore,
	}
}

// PageSummary is one ledger row in the HTTP response.
type PageSummary struct {
	URL        string  `json:"url"`
	Path       string  `json:"path"`
	ChunkCount int     `json:"chunk_count"`
	TokenMin   int     `json:"token_min"`
	TokenMax   int     `json:"token_max"`
	TokenMean  float64 `json:"token_mean"`
	IndexedAt  string  `json:"indexed_at"`
}

// PagesResponse represents the HTTP response payload for the page listing.
type PagesResponse struct {
	Pages []PageSummary `json:"pages"`
}

// ServeHTTP handles HTTP requests for the page listing.
func (h *PagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	pages, err := h.pageStore.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list pages", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := PagesResponse{
		Pages: make([]PageSummary, 0, len(pages)),
	}
	for _, page := range pages {
		resp.Pages = append(resp.Pages, PageSummary{
			URL:        page.URL,
			Path:       page.Path,
			ChunkCount: page.ChunkCount,
			TokenMin:   page.TokenMin,
			TokenMax:   page.TokenMax,
			TokenMean:  page.TokenMean,
			IndexedAt:  page.IndexedAt.UTC().Format(time.RFC3339),
		})
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
