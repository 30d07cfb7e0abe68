package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"stayscope/internal/config"
	"stayscope/pkg/contracts/domain"
)

// ListingsExporter writes the listing views to CSV: the current listings
// set replayed in source column order, and the listings-per-host ranking.
type ListingsExporter struct {
	csvWriter *CSVWriter
	bom       bool
}

// NewListingsExporter creates a listings exporter. The BOM prefix comes
// from the export configuration so spreadsheet-bound and tool-bound output
// can be switched without code changes.
func NewListingsExporter(paths *config.Paths, cfg config.ExportConfig) *ListingsExporter {
	return &ListingsExporter{
		csvWriter: NewCSVWriter(paths),
		bom:       cfg.CSVBOMPrefix,
	}
}

// ExportListings streams the dataset's listings to a CSV file, one row per
// listing in set order. When the dataset carries its source columns the
// output replays that layout; otherwise the canonical four-column layout
// is used.
func (e *ListingsExporter) ExportListings(ctx context.Context, dataset *domain.Dataset, outputPath string) error {
	headers := e.headersFor(dataset.Columns)

	slog.InfoContext(ctx, "Exporting listings view",
		slog.String("output_path", outputPath),
		slog.Int("listing_count", len(dataset.Listings)))

	stream, err := e.csvWriter.CreateStreamWriter(outputPath, headers, e.bom)
	if err != nil {
		return fmt.Errorf("failed to create listings file: %w", err)
	}

	for i, listing := range dataset.Listings {
		if err := stream.WriteRecord(e.listingToCSVRow(headers, listing)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write listing %d: %w", i, err)
		}
	}

	return stream.Close()
}

// ExportStats writes the stats view as a single-row CSV with the same key
// names the JSON export uses.
func (e *ListingsExporter) ExportStats(ctx context.Context, stats domain.DatasetStats, outputPath string) error {
	slog.InfoContext(ctx, "Exporting stats view",
		slog.String("output_path", outputPath),
		slog.Int("listing_count", stats.Count))

	return e.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   []string{"count", "averagePricePerRoom"},
		Records:   [][]string{{formatInt(stats.Count), formatFloat(stats.AveragePricePerRoom)}},
		BOMPrefix: e.bom,
	})
}

// ExportHosts writes the host ranking to a CSV file in ranking order.
func (e *ListingsExporter) ExportHosts(ctx context.Context, ranking []domain.HostCount, outputPath string) error {
	slog.InfoContext(ctx, "Exporting host ranking",
		slog.String("output_path", outputPath),
		slog.Int("host_count", len(ranking)))

	records := make([][]string, 0, len(ranking))
	for _, host := range ranking {
		records = append(records, []string{host.HostID, formatInt(host.Count)})
	}

	return e.csvWriter.WriteCSV(outputPath, WriteOptions{
		Headers:   []string{"host_id", "count"},
		Records:   records,
		BOMPrefix: e.bom,
	})
}

// headersFor returns the dataset's columns, or the canonical layout when
// the source column order is unknown.
func (e *ListingsExporter) headersFor(columns []string) []string {
	if len(columns) > 0 {
		return columns
	}
	return []string{
		config.ColumnHostID,
		config.ColumnPrice,
		config.ColumnBedrooms,
		config.ColumnReviewScores,
	}
}

// listingToCSVRow reconstructs one row in header order. Recognized numeric
// columns render the coerced value; passthrough columns replay verbatim.
func (e *ListingsExporter) listingToCSVRow(headers []string, listing domain.Listing) []string {
	row := make([]string, len(headers))
	for i, name := range headers {
		switch strings.ToLower(name) {
		case config.ColumnHostID:
			row[i] = listing.HostID
		case config.ColumnPrice:
			row[i] = formatFloat(listing.Price)
		case config.ColumnBedrooms, config.ColumnRoomsAlt:
			row[i] = formatFloat(listing.Bedrooms)
		case config.ColumnReviewScores, config.ColumnReviewAlt:
			row[i] = formatFloat(listing.ReviewScore)
		default:
			row[i] = listing.Field(name)
		}
	}
	return row
}
