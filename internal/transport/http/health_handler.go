package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"stayscope/internal/infrastructure"
	"stayscope/pkg/contracts"
	"stayscope/pkg/contracts/domain"
)

// HealthStatus is the health endpoint response shape
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Dataset   *DatasetHealth         `json:"dataset,omitempty"`
	System    map[string]interface{} `json:"system,omitempty"`
}

// DatasetHealth reports the dataset backing this server instance
type DatasetHealth struct {
	Source   string `json:"source,omitempty"`
	Listings int    `json:"listings"`
	Columns  int    `json:"columns"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	dataset *domain.Dataset
	logger  *slog.Logger
	system  *infrastructure.SystemMetricsCollector
}

// NewHealthHandler creates a new health handler. The collector is optional;
// without it the health payload omits the runtime section.
func NewHealthHandler(dataset *domain.Dataset, logger *slog.Logger, system *infrastructure.SystemMetricsCollector) *HealthHandler {
	return &HealthHandler{
		dataset: dataset,
		logger:  logger.With(slog.String("handler", "health")),
		system:  system,
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Dataset: &DatasetHealth{
			Source:   h.dataset.Source,
			Listings: len(h.dataset.Listings),
			Columns:  len(h.dataset.Columns),
		},
	}
	if h.system != nil {
		status.System = h.system.GetCurrentStats(r.Context()).FormatStats()
	}
	render.JSON(w, r, status)
}

// ReadinessCheck handles GET /api/health/ready. The dataset is loaded
// before the server starts listening, so a live server is always ready.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	})
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   contracts.Version,
	})
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, contracts.GetVersionInfo())
}
