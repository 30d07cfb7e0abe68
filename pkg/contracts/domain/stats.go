package domain

// DatasetStats is the exported summary of a listing set. The JSON key names
// are part of the export contract and must not change: consumers reload the
// written file and expect exactly this pair.
type DatasetStats struct {
	// Count is the number of listings in the set.
	Count int `json:"count"`

	// AveragePricePerRoom is sum(price) / sum(bedrooms) over the set,
	// defined as 0 when the set is empty or no listing reports a room.
	AveragePricePerRoom float64 `json:"averagePricePerRoom"`
}

// HostCount is one entry of the listings-per-host ranking.
type HostCount struct {
	HostID string `json:"host_id"`
	Count  int    `json:"count"`
}

// ExtendedStats is the richer console/API view of a listing set. It is a
// display companion to DatasetStats and is never part of the stats export.
type ExtendedStats struct {
	Count              int     `json:"count"`
	TotalBedrooms      float64 `json:"total_bedrooms"`
	MinPrice           float64 `json:"min_price"`
	MaxPrice           float64 `json:"max_price"`
	AveragePrice       float64 `json:"average_price"`
	AverageReviewScore float64 `json:"average_review_score"`
	HostCount          int     `json:"host_count"`
}
