// Package http implements the HTTP handlers for the stayscope explorer
// server. It is a thin layer between transport and the listing pipeline:
// handlers parse and validate queries, call the pure dataprocessing
// helpers, and format responses.
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request → Chi Router → Middleware → Handler → dataprocessing
//	                                              ↓
//	HTTP Response ← render.JSON ←────────────────┘
//
// The dataset is loaded once before the server starts and handlers treat
// it as immutable. Per-request bounds are applied with the stateless
// filter helper, never through the narrowing store, so one request's
// bounds cannot leak into another's view.
//
// # Handler Structure
//
// Each handler follows this pattern:
//
//	func (h *ExplorerHandler) GetStats(w http.ResponseWriter, r *http.Request) {
//	    // 1. Bind and validate the query string
//	    query, err := h.queries.Bounds(r)
//	    if err != nil {
//	        h.errorHandler.HandleError(w, r, err)
//	        return
//	    }
//
//	    // 2. Filter and aggregate
//	    listings := dataprocessing.FilterListings(h.dataset.Listings, query.Criteria())
//
//	    // 3. Format and send response
//	    render.JSON(w, r, ...)
//	}
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details:
//
//	{
//	    "type": "/errors/validation",
//	    "title": "Request validation failed",
//	    "status": 400,
//	    "detail": "min_price must be a number",
//	    "instance": "/api/listings"
//	}
//
// # Testing
//
// Handlers are tested with httptest against small in-memory datasets;
// no mocks are needed because the pipeline helpers are pure functions.
package http
