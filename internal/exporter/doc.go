// Package exporter writes the listing views to disk.
//
// This package contains three main components:
//
// WriteJSON: the JSON export path for any view (summary stats, host
// ranking, raw listings), with stable two-space indentation.
//
// CSVWriter: core CSV writing functionality with support for headers,
// appending, streaming, and UTF-8 BOM for Excel compatibility.
//
// ListingsExporter: converts the domain views to CSV, replaying the
// dataset's source column order for the listings view.
//
// Example usage:
//
//	// Export the summary stats view
//	err := exporter.WriteJSON(ctx, "exports/stats.json", stats)
//
//	// Export the listings and host ranking as CSV
//	listingsExporter := exporter.NewListingsExporter(paths, cfg.Export)
//	err = listingsExporter.ExportListings(ctx, dataset, "listings.csv")
//	err = listingsExporter.ExportHosts(ctx, ranking, "hosts.csv")
package exporter
