package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stayscope/internal/config"
)

// DatasetValidator runs pre-flight checks on dataset and export paths, so
// command entry points can fail with one clear message before the loader
// or exporter get involved.
type DatasetValidator struct {
	logger *slog.Logger
}

// NewDatasetValidator creates a validator. A nil logger falls back to the
// default slog logger.
func NewDatasetValidator(logger *slog.Logger) *DatasetValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetValidator{logger: logger}
}

// ValidateDatasetFile checks that path names a readable dataset candidate.
// Spreadsheet lock files are rejected: Excel leaves a "~$name.xlsx" behind
// while a workbook is open, and it carries lock bytes rather than rows.
// An extension outside the accepted set is only warned about, because the
// text loader parses any delimited file.
func (v *DatasetValidator) ValidateDatasetFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("dataset file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat dataset file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a dataset file", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		return fmt.Errorf("%s is a spreadsheet lock file, not a dataset", path)
	}

	if !hasAcceptedExtension(path) {
		v.logger.Warn("Unexpected dataset extension, parsing as delimited text",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
	}
	if info.Size() == 0 {
		v.logger.Warn("Dataset file is empty",
			slog.String("file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dataset file %s is not readable: %w", path, err)
	}
	file.Close()

	v.logger.Debug("Dataset file validated",
		slog.String("file", path),
		slog.Int64("size_bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures dir exists, creating it if needed, and
// confirms it is writable with a probe file.
func (v *DatasetValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_check")
	file, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(probe)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

func hasAcceptedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, accepted := range config.DatasetExtensions {
		if ext == accepted {
			return true
		}
	}
	return false
}
