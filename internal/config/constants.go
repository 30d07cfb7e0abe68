package config

import (
	"time"

	"stayscope/pkg/contracts"
)

// Application constants
const (
	// Application Info. The version is owned by pkg/contracts; this alias
	// keeps the config surface from drifting.
	AppName    = "stayscope"
	AppVersion = contracts.Version

	// Column names recognized by the dataset parser. The room and review
	// columns each accept two spellings; when a header repeats a role the
	// rightmost column wins.
	ColumnPrice        = "price"
	ColumnHostID       = "host_id"
	ColumnBedrooms     = "bedrooms"
	ColumnRoomsAlt     = "number_of_rooms"
	ColumnReviewScores = "review_scores_rating"
	ColumnReviewAlt    = "review_score"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to working directory)
	DefaultDataDir    = "data"
	DefaultExportsDir = "exports"
	DefaultLogsDir    = "logs"

	// Well-known export names used by report mode
	StatsExportJSON    = "stats.json"
	HostsExportJSON    = "hosts.json"
	ListingsExportJSON = "listings.json"
	StatsExportCSV     = "stats.csv"
	ListingsExportCSV  = "listings.csv"
	HostsExportCSV     = "hosts.csv"
)

// Dataset file extensions accepted by discovery and the loader
var DatasetExtensions = []string{".csv", ".txt", ".xlsx"}
