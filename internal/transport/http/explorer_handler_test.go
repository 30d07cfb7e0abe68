package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	apierrors "stayscope/internal/errors"
	"stayscope/internal/infrastructure"
	custommw "stayscope/internal/middleware"
	"stayscope/pkg/contracts/domain"
)

func testExplorerDataset() *domain.Dataset {
	return &domain.Dataset{
		Source:  "listings.csv",
		Columns: []string{"host_id", "price", "bedrooms", "review_scores_rating", "name"},
		Listings: []domain.Listing{
			{HostID: "h1", Price: 100, Bedrooms: 1, ReviewScore: 95, Fields: map[string]string{"name": "Harbor loft"}},
			{HostID: "h2", Price: 200, Bedrooms: 2, ReviewScore: 85, Fields: map[string]string{"name": "Garden flat"}},
			{HostID: "h2", Price: 300, Bedrooms: 3, ReviewScore: 75, Fields: map[string]string{"name": "Attic studio"}},
			{HostID: "", Price: 50, Bedrooms: 0, ReviewScore: 0, Fields: map[string]string{"name": "Mystery room"}},
		},
	}
}

func newTestExplorerHandler() *ExplorerHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExplorerHandler(testExplorerDataset(), logger, apierrors.NewErrorHandler(logger, false))
}

type statsEnvelope struct {
	Status string              `json:"status"`
	Data   domain.DatasetStats `json:"data"`
	Count  int                 `json:"count"`
}

type hostsEnvelope struct {
	Status string             `json:"status"`
	Data   []domain.HostCount `json:"data"`
	Count  int                `json:"count"`
}

type listingsEnvelope struct {
	Status string           `json:"status"`
	Data   []domain.Listing `json:"data"`
	Count  int              `json:"count"`
	Total  int              `json:"total"`
}

func TestExplorerHandler_GetStats(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantCount   int
		wantAverage float64
	}{
		{
			// 650 total price over 6 rooms
			name:        "full set",
			target:      "/api/stats",
			wantCount:   4,
			wantAverage: 108.3333,
		},
		{
			name:        "price bound narrows the set",
			target:      "/api/stats?min_price=150",
			wantCount:   2,
			wantAverage: 100,
		},
		{
			name:        "crossed bounds match nothing",
			target:      "/api/stats?min_price=500&max_price=100",
			wantCount:   0,
			wantAverage: 0,
		},
		{
			name:        "review bound",
			target:      "/api/stats?min_review=80",
			wantCount:   2,
			wantAverage: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestExplorerHandler()
			req := httptest.NewRequest("GET", tt.target, nil)
			rec := httptest.NewRecorder()

			handler.GetStats(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var envelope statsEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, "success", envelope.Status)
			assert.Equal(t, tt.wantCount, envelope.Data.Count)
			assert.InDelta(t, tt.wantAverage, envelope.Data.AveragePricePerRoom, 0.001)
			assert.Equal(t, tt.wantCount, envelope.Count)
		})
	}
}

func TestExplorerHandler_GetStats_BadBound(t *testing.T) {
	handler := newTestExplorerHandler()
	req := httptest.NewRequest("GET", "/api/stats?min_price=abc", nil)
	rec := httptest.NewRecorder()

	handler.GetStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.TypeValidation)
	assert.Contains(t, rec.Body.String(), "min_price must be a number")
}

func TestExplorerHandler_GetStats_NegativeBound(t *testing.T) {
	handler := newTestExplorerHandler()
	req := httptest.NewRequest("GET", "/api/stats?min_rooms=-2", nil)
	rec := httptest.NewRecorder()

	handler.GetStats(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_rooms must be greater than or equal to 0")
}

func TestExplorerHandler_GetHosts(t *testing.T) {
	t.Run("ranking orders by count then host", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/hosts", nil)
		rec := httptest.NewRecorder()

		handler.GetHosts(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope hostsEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data, 3)

		assert.Equal(t, domain.HostCount{HostID: "h2", Count: 2}, envelope.Data[0])
		assert.Equal(t, domain.HostCount{HostID: "h1", Count: 1}, envelope.Data[1])
		assert.Equal(t, domain.HostCount{HostID: domain.UnknownHostID, Count: 1}, envelope.Data[2])
		assert.Equal(t, 3, envelope.Count)
	})

	t.Run("bounds apply before grouping", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/hosts?max_price=100", nil)
		rec := httptest.NewRecorder()

		handler.GetHosts(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope hostsEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.Len(t, envelope.Data, 2)
		assert.Equal(t, "h1", envelope.Data[0].HostID)
		assert.Equal(t, domain.UnknownHostID, envelope.Data[1].HostID)
	})

	t.Run("bad bound is a validation problem", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/hosts?max_rooms=lots", nil)
		rec := httptest.NewRecorder()

		handler.GetHosts(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "max_rooms must be a number")
	})
}

func TestExplorerHandler_GetListings(t *testing.T) {
	t.Run("full set", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/listings", nil)
		rec := httptest.NewRecorder()

		handler.GetListings(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope listingsEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, 4, envelope.Count)
		assert.Equal(t, 4, envelope.Total)
		require.Len(t, envelope.Data, 4)
		assert.Equal(t, "h1", envelope.Data[0].HostID)
		assert.Equal(t, "Harbor loft", envelope.Data[0].Field("name"))
	})

	t.Run("limit caps rows but not the total", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/listings?limit=2", nil)
		rec := httptest.NewRecorder()

		handler.GetListings(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope listingsEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, 2, envelope.Count)
		assert.Equal(t, 4, envelope.Total)
		assert.Len(t, envelope.Data, 2)
	})

	t.Run("bounds and limit combine", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/listings?min_price=150&limit=1", nil)
		rec := httptest.NewRecorder()

		handler.GetListings(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var envelope listingsEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.Equal(t, 1, envelope.Count)
		assert.Equal(t, 2, envelope.Total)
		assert.Equal(t, "h2", envelope.Data[0].HostID)
	})

	t.Run("empty result renders an empty array", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/listings?min_price=1000", nil)
		rec := httptest.NewRecorder()

		handler.GetListings(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("non-numeric limit rejected", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/listings?limit=abc", nil)
		rec := httptest.NewRecorder()

		handler.GetListings(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "limit must be a whole number")
	})

	t.Run("negative limit rejected", func(t *testing.T) {
		handler := newTestExplorerHandler()
		req := httptest.NewRequest("GET", "/api/listings?limit=-1", nil)
		rec := httptest.NewRecorder()

		handler.GetListings(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "limit must be at least 1")
	})
}

func TestExplorerHandler_Routes(t *testing.T) {
	handler := newTestExplorerHandler()

	r := chi.NewRouter()
	r.Mount("/api", handler.Routes())

	t.Run("routes respond", func(t *testing.T) {
		for _, target := range []string{"/api/stats", "/api/hosts", "/api/listings"} {
			req := httptest.NewRequest("GET", target, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code, target)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json", target)
		}
	})

	t.Run("unknown route is 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/nothing", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("write methods are 405", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/stats", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

// TestExplorerHandler_FilterMetrics wires the metrics middleware the way the
// server does and confirms bounded requests flow through it.
func TestExplorerHandler_FilterMetrics(t *testing.T) {
	meter := sdkmetric.NewMeterProvider().Meter("test")
	metrics, err := infrastructure.CreateBusinessMetrics(meter)
	require.NoError(t, err)

	handler := newTestExplorerHandler()

	r := chi.NewRouter()
	r.Use(custommw.BusinessMetricsMiddleware(metrics))
	r.Mount("/api", handler.Routes())

	req := httptest.NewRequest("GET", "/api/listings?min_price=150", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
