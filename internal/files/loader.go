package files

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"stayscope/internal/config"
	"stayscope/internal/dataprocessing"
	apperrors "stayscope/internal/errors"
	"stayscope/pkg/contracts/domain"
)

// Loader reads a dataset file from disk and hands it to the record builder.
// Delimited text (.csv, .txt or anything else) goes through the delimiter
// split; .xlsx goes through excelize. Both feed the same record-building
// path, so a spreadsheet and its CSV export parse identically.
type Loader struct {
	delimiter rune
	sheet     string
}

// NewLoader creates a loader from the dataset configuration.
func NewLoader(cfg config.DatasetConfig) *Loader {
	return &Loader{
		delimiter: cfg.DelimiterRune(),
		sheet:     cfg.Sheet,
	}
}

// Load reads the dataset at path. The path must name a file; pointing it at
// a directory is the caller's discovery problem. Read failures return typed
// errors; the parse itself never fails.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError("dataset").
			WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to stat dataset", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		return nil, apperrors.NewStorageError("dataset path is a directory", nil).
			WithContext("path", path)
	}

	slog.InfoContext(ctx, "Loading dataset",
		slog.String("path", path),
		slog.Int64("size_bytes", info.Size()))

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return l.loadWorkbook(ctx, path)
	}
	return l.loadText(ctx, path)
}

// loadText reads a delimited text dataset. A leading UTF-8 BOM is stripped
// so Excel-exported CSVs parse the same as plain ones.
func (l *Loader) loadText(ctx context.Context, path string) (*domain.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read dataset", err).
			WithContext("path", path)
	}

	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	dataset := dataprocessing.ParseDataset(path, string(content), l.delimiter)

	slog.InfoContext(ctx, "Dataset loaded",
		slog.String("path", path),
		slog.Int("listings", len(dataset.Listings)))

	return dataset, nil
}

// loadWorkbook reads an .xlsx dataset through excelize. The configured
// sheet is used when set; otherwise the workbook's first sheet.
func (l *Loader) loadWorkbook(ctx context.Context, path string) (*domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).
				WithContext("path", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("path", path)
	}

	dataset := dataprocessing.DatasetFromRows(path, dropEmptyRows(rows))

	slog.InfoContext(ctx, "Dataset loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("listings", len(dataset.Listings)))

	return dataset, nil
}

// dropEmptyRows removes rows whose every cell trims to empty. Spreadsheets
// routinely carry trailing blank rows that delimited text would not.
func dropEmptyRows(rows [][]string) [][]string {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, row)
		}
	}
	return kept
}
