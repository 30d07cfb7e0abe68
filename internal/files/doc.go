// Package files reads datasets from disk and discovers dataset candidates.
//
// This package contains two main components:
//
// Loader: reads a dataset file and feeds it to the record builder. Delimited
// text and .xlsx workbooks go through the same record-building path, so a
// spreadsheet and its CSV export parse identically.
//
// Discovery: lists dataset candidates in a directory and picks the most
// recently modified one, used when the dataset argument names a directory
// instead of a file.
//
// Example usage:
//
//	loader := files.NewLoader(cfg.Dataset)
//	dataset, err := loader.Load(ctx, "data/listings.csv")
//
//	discovery := files.NewDiscovery(paths.WorkingDir)
//	candidates, err := discovery.FindDatasetFiles("data")
//	newest, ok := files.GetLatestFile(candidates)
package files
