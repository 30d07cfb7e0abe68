// Package dataprocessing implements the listings pipeline core: parsing
// delimited dataset text into listings, holding the working set between
// operations, and computing the aggregate views over it.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Parser: converts raw header-first delimited text into listings
// 2. Store: holds the working set and applies cumulative range filters
// 3. Analytics: computes summary stats and the listings-per-host ranking
//
// # Usage
//
// Basic parsing and filtering:
//
//	listings := dataprocessing.Parse(content)
//	store := dataprocessing.NewStore(listings)
//	store.Filter(domain.FilterCriteria{MinPrice: domain.Bound(150)})
//
// Aggregate views:
//
//	stats := dataprocessing.ComputeStats(ctx, store.Listings())
//	ranking := dataprocessing.ComputeListingsByHost(ctx, store.Listings())
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Dataset text → Parser → Listings → Store (filters) → Analytics → Views
//
// # Error Handling
//
// Parsing never fails: numeric cells that do not parse coerce to 0 and
// short rows read as empty text. Read failures belong to the loader in
// internal/files; export failures belong to internal/exporter. Filtering
// and analytics are total functions over their inputs.
//
// # Concurrency
//
// The Store carries no locks and is not safe for concurrent use; callers
// serialize access. Serve mode works on immutable loaded sets through the
// pure FilterListings helper instead of mutating a store.
package dataprocessing
