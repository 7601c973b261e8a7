package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pagesearch/internal/handlers"
	"pagesearch/internal/service"
	"pagesearch/internal/storage"
	"pagesearch/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SearchService  service.SearchService
	VectorStore    vectorstore.Store
	PageStore      storage.PageStore // Optional; /api/pages is not mounted without it
	Ledger         handlers.Pinger   // Optional; checked by /api/health when set
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Per-request logger, then access log
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	searchHandler := handlers.NewSearchHandler(deps.SearchService)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Ledger, deps.CollectionName)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/search", searchHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
		if deps.PageStore != nil {
			r.Method(http.MethodGet, "/pages", handlers.NewPagesHandler(deps.PageStore))
		}
	})

	return r
}
