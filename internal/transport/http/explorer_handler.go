package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"stayscope/internal/dataprocessing"
	apierrors "stayscope/internal/errors"
	"stayscope/internal/infrastructure"
	"stayscope/internal/middleware"
	"stayscope/pkg/contracts/domain"
)

// ExplorerHandler serves the read-only listing endpoints with RFC 7807
// compliance. It holds the dataset loaded at startup and never mutates it:
// each request applies its own bounds through the pure filter helper, so
// concurrent requests cannot interfere with each other or with the set.
type ExplorerHandler struct {
	dataset      *domain.Dataset
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	queries      *QueryBinder
}

// NewExplorerHandler creates a new explorer handler with RFC 7807 error handling
func NewExplorerHandler(dataset *domain.Dataset, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExplorerHandler {
	return &ExplorerHandler{
		dataset:      dataset,
		logger:       logger.With(slog.String("component", "explorer_handler")),
		errorHandler: errorHandler,
		queries:      NewQueryBinder(),
	}
}

// Routes returns the explorer routes with proper Chi patterns
func (h *ExplorerHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/stats", h.GetStats)
	r.Get("/hosts", h.GetHosts)
	r.Get("/listings", h.GetListings)

	return r
}

// GetStats handles GET /api/stats with RFC 7807 errors
func (h *ExplorerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	query, err := h.queries.Bounds(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	criteria := query.Criteria()

	h.logger.InfoContext(r.Context(), "computing stats",
		slog.String("request_id", reqID),
		slog.Bool("filtered", !criteria.IsZero()),
	)

	listings := dataprocessing.FilterListings(h.dataset.Listings, criteria)
	stats := dataprocessing.ComputeStats(r.Context(), listings)
	h.recordFilter(r, criteria, len(listings))

	response := map[string]interface{}{
		"status": "success",
		"data":   stats,
		"count":  stats.Count,
	}
	if !criteria.IsZero() {
		response["params"] = query
	}

	render.JSON(w, r, response)
}

// GetHosts handles GET /api/hosts with RFC 7807 errors
func (h *ExplorerHandler) GetHosts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	query, err := h.queries.Bounds(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	criteria := query.Criteria()

	h.logger.InfoContext(r.Context(), "computing host ranking",
		slog.String("request_id", reqID),
		slog.Bool("filtered", !criteria.IsZero()),
	)

	listings := dataprocessing.FilterListings(h.dataset.Listings, criteria)
	ranking := dataprocessing.ComputeListingsByHost(r.Context(), listings)
	h.recordFilter(r, criteria, len(listings))

	response := map[string]interface{}{
		"status": "success",
		"data":   ranking,
		"count":  len(ranking),
	}
	if !criteria.IsZero() {
		response["params"] = query
	}

	render.JSON(w, r, response)
}

// GetListings handles GET /api/listings with RFC 7807 errors
func (h *ExplorerHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	query, err := h.queries.Listings(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	criteria := query.Criteria()

	h.logger.InfoContext(r.Context(), "fetching listings",
		slog.String("request_id", reqID),
		slog.Bool("filtered", !criteria.IsZero()),
		slog.Int("limit", query.Limit),
	)

	matched := dataprocessing.FilterListings(h.dataset.Listings, criteria)
	h.recordFilter(r, criteria, len(matched))

	// Zero limit means no cap
	listings := matched
	if query.Limit > 0 && len(matched) > query.Limit {
		listings = matched[:query.Limit]
	}
	if listings == nil {
		listings = []domain.Listing{}
	}

	response := map[string]interface{}{
		"status": "success",
		"data":   listings,
		"count":  len(listings),
		"total":  len(matched),
	}
	if !criteria.IsZero() || query.Limit > 0 {
		response["params"] = query
	}

	render.JSON(w, r, response)
}

// recordFilter counts a filter application when any bound was set. The
// instrument rides in on the request context; without it this is a no-op.
func (h *ExplorerHandler) recordFilter(r *http.Request, criteria domain.FilterCriteria, matched int) {
	if criteria.IsZero() {
		return
	}
	metrics := middleware.GetBusinessMetricsFromContext(r.Context())
	infrastructure.RecordFilterApplied(r.Context(), metrics, matched)
	infrastructure.AddSpanEvent(r.Context(), "listings.filter.applied", map[string]interface{}{
		"matched": matched,
		"total":   len(h.dataset.Listings),
	})
}
