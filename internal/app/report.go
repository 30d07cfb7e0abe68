package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"stayscope/internal/config"
	"stayscope/internal/dataprocessing"
	"stayscope/internal/exporter"
	"stayscope/internal/infrastructure"
	"stayscope/pkg/contracts/domain"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

var (
	reportMinPrice  float64
	reportMaxPrice  float64
	reportMinRooms  float64
	reportMaxRooms  float64
	reportMinReview float64
	reportMaxReview float64
	reportFormat    string
	reportOut       string
	reportListings  bool
)

var reportCmd = &cobra.Command{
	Use:   "report [dataset]",
	Short: "Write stats and host-ranking views for a dataset",
	Long: `Load a dataset, apply the given bounds once, and write the stats and
listings-per-host views into the output directory. JSON output uses the
export contract key names (count, averagePricePerRoom, host_id); CSV output
writes the same values as spreadsheet-ready tables. With --listings the
matching listings themselves are written as a third file.`,
	Example: `  # Full-dataset report into the configured exports directory
  stayscope report data/listings.csv

  # Listings under $200 with at least two rooms, as CSV
  stayscope report data/listings.csv --max-price 200 --min-rooms 2 --format csv

  # Write the matching listings alongside the two views
  stayscope report data/listings.csv --min-review 90 --listings

  # Write into a specific directory
  stayscope report data/listings.csv --out /tmp/report`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Float64Var(&reportMinPrice, "min-price", 0, "inclusive lower price bound")
	reportCmd.Flags().Float64Var(&reportMaxPrice, "max-price", 0, "inclusive upper price bound")
	reportCmd.Flags().Float64Var(&reportMinRooms, "min-rooms", 0, "inclusive lower room bound")
	reportCmd.Flags().Float64Var(&reportMaxRooms, "max-rooms", 0, "inclusive upper room bound")
	reportCmd.Flags().Float64Var(&reportMinReview, "min-review", 0, "inclusive lower review score bound")
	reportCmd.Flags().Float64Var(&reportMaxReview, "max-review", 0, "inclusive upper review score bound")
	reportCmd.Flags().StringVar(&reportFormat, "format", formatJSON, "output format: json or csv")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output directory (default: the configured exports directory)")
	reportCmd.Flags().BoolVar(&reportListings, "listings", false, "also write the matching listings view")
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat != formatJSON && reportFormat != formatCSV {
		return fmt.Errorf("unknown format %q, expected %s or %s", reportFormat, formatJSON, formatCSV)
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	ctx := cmd.Context()
	pathArg := ""
	if len(args) > 0 {
		pathArg = args[0]
	}

	dataset, path, err := rt.loadDataset(ctx, pathArg)
	if err != nil {
		return err
	}

	outDir := reportOut
	if outDir == "" {
		outDir = rt.paths.ExportsDir
	} else if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(rt.paths.WorkingDir, outDir)
	}
	if err := rt.validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	result, err := writeReport(ctx, rt, dataset, reportCriteria(cmd.Flags()), reportFormat, outDir, reportListings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Report for %s (%s of %s listings matched)\n",
		path, humanize.Comma(int64(result.Matched)), humanize.Comma(int64(result.Total)))
	fmt.Fprintf(out, "  stats: %s (count %d, avg price/room %.2f)\n",
		result.StatsPath, result.Stats.Count, result.Stats.AveragePricePerRoom)
	fmt.Fprintf(out, "  hosts: %s (%s hosts)\n",
		result.HostsPath, humanize.Comma(int64(result.HostCount)))
	if result.ListingsPath != "" {
		fmt.Fprintf(out, "  listings: %s (%s listings)\n",
			result.ListingsPath, humanize.Comma(int64(result.Matched)))
	}
	return nil
}

// reportCriteria converts the bound flags that were explicitly set. An
// untouched flag imposes no constraint, so --min-price 0 and an absent
// --min-price stay distinguishable.
func reportCriteria(flags *pflag.FlagSet) domain.FilterCriteria {
	bound := func(name string, value float64) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		return domain.Bound(value)
	}

	return domain.FilterCriteria{
		MinPrice:  bound("min-price", reportMinPrice),
		MaxPrice:  bound("max-price", reportMaxPrice),
		MinRooms:  bound("min-rooms", reportMinRooms),
		MaxRooms:  bound("max-rooms", reportMaxRooms),
		MinReview: bound("min-review", reportMinReview),
		MaxReview: bound("max-review", reportMaxReview),
	}
}

// reportResult summarizes one written report. ListingsPath is empty unless
// the listings view was requested.
type reportResult struct {
	Matched      int
	Total        int
	Stats        domain.DatasetStats
	HostCount    int
	StatsPath    string
	HostsPath    string
	ListingsPath string
}

// writeReport filters the dataset once and writes the views into outDir,
// which must be an absolute path.
func writeReport(ctx context.Context, rt *runtime, dataset *domain.Dataset,
	criteria domain.FilterCriteria, format, outDir string, includeListings bool) (*reportResult, error) {

	listings := dataprocessing.FilterListings(dataset.Listings, criteria)
	stats := dataprocessing.ComputeStats(ctx, listings)
	ranking := dataprocessing.ComputeListingsByHost(ctx, listings)

	result := &reportResult{
		Matched:   len(listings),
		Total:     len(dataset.Listings),
		Stats:     stats,
		HostCount: len(ranking),
	}

	started := time.Now()
	var err error
	switch format {
	case formatCSV:
		exp := exporter.NewListingsExporter(rt.paths, rt.cfg.Export)
		result.StatsPath = filepath.Join(outDir, config.StatsExportCSV)
		result.HostsPath = filepath.Join(outDir, config.HostsExportCSV)
		if err = exp.ExportStats(ctx, stats, result.StatsPath); err == nil {
			err = exp.ExportHosts(ctx, ranking, result.HostsPath)
		}
		if err == nil && includeListings {
			result.ListingsPath = filepath.Join(outDir, config.ListingsExportCSV)
			view := &domain.Dataset{Source: dataset.Source, Columns: dataset.Columns, Listings: listings}
			err = exp.ExportListings(ctx, view, result.ListingsPath)
		}
	default:
		result.StatsPath = filepath.Join(outDir, config.StatsExportJSON)
		result.HostsPath = filepath.Join(outDir, config.HostsExportJSON)
		if err = exporter.WriteJSON(ctx, result.StatsPath, stats); err == nil {
			err = exporter.WriteJSON(ctx, result.HostsPath, ranking)
		}
		if err == nil && includeListings {
			result.ListingsPath = filepath.Join(outDir, config.ListingsExportJSON)
			err = exporter.WriteJSON(ctx, result.ListingsPath, listings)
		}
	}
	infrastructure.RecordExport(ctx, rt.metrics, format, time.Since(started), err)
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return result, nil
}
