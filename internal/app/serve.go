package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"stayscope/internal/config"
	"stayscope/internal/infrastructure"
	customMiddleware "stayscope/internal/middleware"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve [dataset]",
	Short: "Serve a listings dataset as a read-only JSON API",
	Long: `Load a dataset once and serve it over HTTP. Every listing endpoint
accepts the six optional range bounds (min_price, max_price, min_rooms,
max_rooms, min_review, max_review); bounds are applied per request and the
loaded set is never mutated.

Routes:
  GET /api/stats      listing count and average price per room
  GET /api/hosts      listings per host, most listings first
  GET /api/listings   matching listings (limit caps returned rows)
  GET /api/health     dataset and process health
  GET /api/version    build and contract versions
  GET /metrics        Prometheus metrics`,
	Example: `  # Serve on the configured port
  stayscope serve data/listings.csv

  # Serve the newest dataset in the data directory on port 9090
  stayscope serve --port 9090`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default: configured server port)")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	ctx := cmd.Context()

	providers, err := infrastructure.InitializeOTel(otelConfigFor(rt.cfg), rt.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	otelMW, err := customMiddleware.NewOTelMiddleware(providers)
	if err != nil {
		return fmt.Errorf("failed to create OpenTelemetry middleware: %w", err)
	}
	rt.metrics = otelMW.BusinessMetrics()

	pathArg := ""
	if len(args) > 0 {
		pathArg = args[0]
	}
	dataset, _, err := rt.loadDataset(ctx, pathArg)
	if err != nil {
		return err
	}

	if servePort > 0 {
		rt.cfg.Server.Port = servePort
	}

	srv := NewServer(rt.cfg, rt.logger, dataset, providers, otelMW)
	return srv.Run()
}

// otelConfigFor keeps span output out of production logs: the stdout trace
// exporter only runs in development mode.
func otelConfigFor(cfg *config.Config) *infrastructure.OTelConfig {
	otelCfg := infrastructure.DefaultOTelConfig()
	if !cfg.Logging.Development {
		otelCfg.TraceExporter = "none"
	}
	return otelCfg
}
