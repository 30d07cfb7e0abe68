package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stayscope/internal/config"
	"stayscope/internal/files"
	"stayscope/internal/infrastructure"
	"stayscope/internal/menu"
	"stayscope/internal/validation"
	"stayscope/pkg/contracts"
	"stayscope/pkg/contracts/domain"
)

// runtime carries the bootstrapped pieces every command needs. Metrics stay
// nil outside serve mode; the infrastructure recorders treat nil as off.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	paths     *config.Paths
	loader    *files.Loader
	validator *validation.DatasetValidator
	metrics   *infrastructure.BusinessMetrics
}

// newRuntime loads configuration, initializes logging and resolves the
// application directories.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("stayscope starting",
		slog.String("version", contracts.Version),
		slog.String("level", cfg.Logging.Level))

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	return &runtime{
		cfg:       cfg,
		logger:    logger,
		paths:     paths,
		loader:    files.NewLoader(cfg.Dataset),
		validator: validation.NewDatasetValidator(logger),
	}, nil
}

// resolveDatasetPath maps the optional dataset argument to a concrete file.
// A file path is validated and used as-is, a directory is searched for the
// newest dataset candidate, and an empty argument falls back to the
// configured data directory.
func (rt *runtime) resolveDatasetPath(pathArg string) (string, error) {
	if pathArg == "" {
		return rt.discoverIn(rt.paths.DataDir)
	}

	info, err := os.Stat(pathArg)
	if err != nil {
		return "", fmt.Errorf("dataset %s: %w", pathArg, err)
	}
	if info.IsDir() {
		return rt.discoverIn(pathArg)
	}
	if err := rt.validator.ValidateDatasetFile(pathArg); err != nil {
		return "", err
	}
	return pathArg, nil
}

// discoverIn picks the most recently modified dataset candidate in dir.
func (rt *runtime) discoverIn(dir string) (string, error) {
	discovery := files.NewDiscovery(rt.paths.WorkingDir)
	candidates, err := discovery.FindDatasetFiles(dir)
	if err != nil {
		return "", err
	}

	latest, ok := files.GetLatestFile(candidates)
	if !ok {
		return "", fmt.Errorf("no dataset files (%s) in %s",
			strings.Join(config.DatasetExtensions, ", "), dir)
	}

	rt.logger.Info("dataset discovered",
		slog.String("path", latest.Path),
		slog.Int("candidates", len(candidates)))
	return latest.Path, nil
}

// loadDataset resolves and loads the dataset once. The returned path is the
// resolved file, which may differ from the argument when discovery ran.
func (rt *runtime) loadDataset(ctx context.Context, pathArg string) (*domain.Dataset, string, error) {
	path, err := rt.resolveDatasetPath(pathArg)
	if err != nil {
		return nil, "", err
	}

	started := time.Now()
	dataset, err := rt.loader.Load(ctx, path)
	duration := time.Since(started)
	infrastructure.RecordDatasetLoad(ctx, rt.metrics, datasetFormat(path), rowCount(dataset), duration, err)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load dataset: %w", err)
	}

	rt.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", path),
		slog.Int("listings", len(dataset.Listings)),
		slog.Int("columns", len(dataset.Columns)),
		slog.Duration("duration", duration))
	return dataset, path, nil
}

// reloader re-reads the resolved dataset file for the menu's reload option.
func (rt *runtime) reloader(path string) menu.ReloadFunc {
	return func(ctx context.Context) (*domain.Dataset, error) {
		return rt.loader.Load(ctx, path)
	}
}

func datasetFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

func rowCount(dataset *domain.Dataset) int {
	if dataset == nil {
		return 0
	}
	return len(dataset.Listings)
}
