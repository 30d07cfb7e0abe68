package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"stayscope/internal/config"
	apierrors "stayscope/internal/errors"
	"stayscope/internal/infrastructure"
	customMiddleware "stayscope/internal/middleware"
	handlers "stayscope/internal/transport/http"
	"stayscope/pkg/contracts/domain"
)

// Server hosts the read-only HTTP explorer over one loaded dataset. The
// dataset is never mutated after construction; handlers filter it per
// request with the pure helpers, which keeps the single-writer store
// contract trivially satisfied.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	dataset    *domain.Dataset
	otel       *customMiddleware.OTelMiddleware
	providers  *infrastructure.OTelProviders
	system     *infrastructure.SystemMetricsCollector
	router     *chi.Mux
	httpServer *http.Server
}

// systemMetricsInterval is how often the runtime collector samples
// goroutine and memory gauges while the server runs.
const systemMetricsInterval = 30 * time.Second

// NewServer wires the router and the HTTP server around an already loaded
// dataset. Observability providers are created by the caller so dataset
// loading can be measured with the same instruments.
func NewServer(cfg *config.Config, logger *slog.Logger, dataset *domain.Dataset,
	providers *infrastructure.OTelProviders, otel *customMiddleware.OTelMiddleware) *Server {

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		dataset:   dataset,
		otel:      otel,
		providers: providers,
	}

	if providers != nil {
		collector, err := infrastructure.NewSystemMetricsCollector(providers.Meter, systemMetricsInterval)
		if err != nil {
			logger.Warn("system metrics collector disabled", slog.String("error", err.Error()))
		} else {
			s.system = collector
		}
	}

	s.setupRouter()
	s.createServer()
	return s
}

// Router exposes the configured handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Metrics exposes the shared instrument set. Nil when the middleware was
// constructed without metrics.
func (s *Server) Metrics() *infrastructure.BusinessMetrics {
	if s.otel == nil {
		return nil
	}
	return s.otel.BusinessMetrics()
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(s.logger, s.cfg.Logging.Development)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		if s.otel != nil {
			r.Use(s.otel.Handler)
			r.Use(customMiddleware.BusinessMetricsMiddleware(s.otel.BusinessMetrics()))
		}

		r.Use(customMiddleware.StructuredLogger(s.logger))
		r.Use(customMiddleware.Recoverer(s.logger))
		r.Use(customMiddleware.SecurityHeaders)

		if s.cfg.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: s.cfg.Security.AllowedOrigins,
				Logger:         s.logger,
			}))
		}

		if s.cfg.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				s.cfg.Security.RateLimit.RPS,
				s.cfg.Security.RateLimit.Burst,
				s.logger,
			).Handler)
		}

		s.setupAPIRoutes(r, errorHandler)
	})

	// Prometheus endpoint stays outside the middleware group: scrapes are
	// frequent and should not consume the rate limit or produce log noise.
	if s.providers != nil && s.providers.PrometheusHTTP != nil {
		r.Handle("/metrics", s.providers.PrometheusHTTP)
	}

	s.router = r
}

func (s *Server) setupAPIRoutes(r chi.Router, errorHandler *apierrors.ErrorHandler) {
	r.Route("/api", func(r chi.Router) {
		// Set before the explorer mount so chi propagates the RFC 7807
		// handlers into the subrouter.
		r.NotFound(errorHandler.NotFound)
		r.MethodNotAllowed(errorHandler.MethodNotAllowed)

		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Compress(5))
		r.Use(customMiddleware.Timeout(s.cfg.Server.RequestTimeout, s.logger))

		healthHandler := handlers.NewHealthHandler(s.dataset, s.logger, s.system)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		explorerHandler := handlers.NewExplorerHandler(s.dataset, s.logger, errorHandler)
		r.Mount("/", explorerHandler.Routes())
	})
}

func (s *Server) createServer() {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

// Start begins serving in the background. A listener failure cancels the
// supplied context so Run can unwind.
func (s *Server) Start(ctx context.Context, cancel context.CancelFunc) {
	s.logger.InfoContext(ctx, "explorer server starting",
		slog.Int("port", s.cfg.Server.Port),
		slog.String("dataset", s.dataset.Source),
		slog.Int("listings", len(s.dataset.Listings)))

	if s.system != nil {
		go s.system.Start(ctx)
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	s.logger.InfoContext(ctx, "explorer server ready",
		slog.String("address", fmt.Sprintf("http://localhost:%d", s.cfg.Server.Port)))
}

// Stop drains in-flight requests and shuts the providers down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "shutting down explorer server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if s.system != nil {
		s.system.Stop()
		s.system = nil
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if s.providers != nil {
		if err := s.providers.Shutdown(shutdownCtx); err != nil {
			s.logger.ErrorContext(ctx, "opentelemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "explorer server stopped")
	return nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully. A failed
// listener also ends the run.
func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	s.Start(ctx, cancel)

	select {
	case <-sigChan:
		s.logger.InfoContext(ctx, "received interrupt signal")
	case <-ctx.Done():
	}

	return s.Stop(context.Background())
}
