package menu

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"stayscope/internal/config"
	"stayscope/internal/dataprocessing"
	"stayscope/pkg/contracts/domain"
)

// painter is a configured color used for one kind of console output.
type painter = *color.Color

func headerPainter(w io.Writer) painter {
	return newPainter(w, color.FgCyan, color.Bold)
}

func warnPainter(w io.Writer) painter {
	return newPainter(w, color.FgYellow)
}

// newPainter builds a color that degrades to plain text when the output is
// not an interactive terminal.
func newPainter(w io.Writer, attrs ...color.Attribute) painter {
	c := color.New(attrs...)
	if !writerIsTerminal(w) {
		c.DisableColor()
	}
	return c
}

// writerIsTerminal reports whether w is a TTY. NO_COLOR always wins.
func writerIsTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// showStats prints the exported stats pair for the current set.
func (s *Session) showStats(ctx context.Context) {
	stats := dataprocessing.ComputeStats(ctx, s.store.Listings())

	s.header.Fprintln(s.out, "Stats")
	fmt.Fprintf(s.out, "  Listings:               %s\n", humanize.Comma(int64(stats.Count)))
	fmt.Fprintf(s.out, "  Average price per room: %s\n", formatAmount(stats.AveragePricePerRoom))
}

// showExtendedStats prints the richer console-only view.
func (s *Session) showExtendedStats(ctx context.Context) {
	ext := dataprocessing.ComputeExtendedStats(ctx, s.store.Listings())

	s.header.Fprintln(s.out, "Extended stats")
	fmt.Fprintf(s.out, "  Listings:       %s\n", humanize.Comma(int64(ext.Count)))
	fmt.Fprintf(s.out, "  Total bedrooms: %s\n", formatAmount(ext.TotalBedrooms))
	fmt.Fprintf(s.out, "  Price:          min %s, avg %s, max %s\n",
		formatAmount(ext.MinPrice), formatAmount(ext.AveragePrice), formatAmount(ext.MaxPrice))
	fmt.Fprintf(s.out, "  Review average: %s\n", formatAmount(ext.AverageReviewScore))
	fmt.Fprintf(s.out, "  Distinct hosts: %s\n", humanize.Comma(int64(ext.HostCount)))
}

// showHosts prints the listings-per-host ranking.
func (s *Session) showHosts(ctx context.Context) {
	ranking := dataprocessing.ComputeListingsByHost(ctx, s.store.Listings())
	if len(ranking) == 0 {
		fmt.Fprintln(s.out, "No listings in the current set.")
		return
	}

	s.header.Fprintln(s.out, "Listings per host")
	fmt.Fprintln(s.out, renderHostTable(ranking))
}

// showListings prints a bounded preview of the current set in source column
// order.
func (s *Session) showListings() {
	listings := s.store.Listings()
	if len(listings) == 0 {
		fmt.Fprintln(s.out, "No listings in the current set.")
		return
	}

	s.header.Fprintln(s.out, "Listings preview")
	fmt.Fprintln(s.out, renderListingsTable(s.dataset.Columns, listings, s.previewRows))
}

func renderHostTable(ranking []domain.HostCount) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault

	tbl.AppendHeader(table.Row{"Host", "Listings"})
	for _, host := range ranking {
		tbl.AppendRow(table.Row{host.HostID, humanize.Comma(int64(host.Count))})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%s hosts", humanize.Comma(int64(len(ranking))))})

	return tbl.Render()
}

// renderListingsTable renders up to previewRows listings. Datasets without
// recorded columns fall back to the canonical four-column layout.
func renderListingsTable(columns []string, listings []domain.Listing, previewRows int) string {
	headers := columns
	if len(headers) == 0 {
		headers = []string{
			config.ColumnHostID,
			config.ColumnPrice,
			config.ColumnBedrooms,
			config.ColumnReviewScores,
		}
	}

	shown := listings
	if len(shown) > previewRows {
		shown = shown[:previewRows]
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	// Source column names replay verbatim, so no upper-casing.
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault

	headerRow := make(table.Row, len(headers))
	for i, name := range headers {
		headerRow[i] = name
	}
	tbl.AppendHeader(headerRow)

	for _, listing := range shown {
		row := make(table.Row, len(headers))
		for i, name := range headers {
			row[i] = cellValue(name, listing)
		}
		tbl.AppendRow(row)
	}

	if hidden := len(listings) - len(shown); hidden > 0 {
		tbl.AppendFooter(table.Row{fmt.Sprintf("%s more not shown", humanize.Comma(int64(hidden)))})
	}

	return tbl.Render()
}

// cellValue renders one cell the same way the CSV replay does: recognized
// numeric columns show the coerced value, everything else replays verbatim.
func cellValue(name string, listing domain.Listing) string {
	switch strings.ToLower(name) {
	case config.ColumnHostID:
		return listing.HostID
	case config.ColumnPrice:
		return formatAmount(listing.Price)
	case config.ColumnBedrooms, config.ColumnRoomsAlt:
		return formatAmount(listing.Bedrooms)
	case config.ColumnReviewScores, config.ColumnReviewAlt:
		return formatAmount(listing.ReviewScore)
	default:
		return listing.Field(name)
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
