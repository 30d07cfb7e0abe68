package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscope/internal/config"
	"stayscope/pkg/contracts/domain"
)

func testListingsExporter(t *testing.T) (*ListingsExporter, *config.Paths) {
	t.Helper()
	paths := testPaths(t)
	return NewListingsExporter(paths, config.ExportConfig{CSVBOMPrefix: true}), paths
}

func TestExportListings_ReplaysSourceColumnOrder(t *testing.T) {
	e, paths := testListingsExporter(t)

	dataset := &domain.Dataset{
		Columns: []string{"name", "host_id", "price", "bedrooms"},
		Listings: []domain.Listing{
			{
				HostID:   "h1",
				Price:    120.5,
				Bedrooms: 2,
				Fields:   map[string]string{"name": "Canal suite"},
			},
			{
				HostID:   "h2",
				Price:    300,
				Bedrooms: 3,
				Fields:   map[string]string{"name": "Sunny, bright loft"},
			},
		},
	}

	require.NoError(t, e.ExportListings(context.Background(), dataset, "listings.csv"))

	hasBOM, records := readCSVFile(t, paths.GetExportPath("listings.csv"))
	assert.True(t, hasBOM)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"name", "host_id", "price", "bedrooms"}, records[0])
	assert.Equal(t, []string{"Canal suite", "h1", "120.50", "2.00"}, records[1])
	assert.Equal(t, []string{"Sunny, bright loft", "h2", "300.00", "3.00"}, records[2])
}

func TestExportListings_CanonicalColumnsWhenSourceUnknown(t *testing.T) {
	e, paths := testListingsExporter(t)

	dataset := &domain.Dataset{
		Listings: []domain.Listing{
			{HostID: "h1", Price: 99, Bedrooms: 1, ReviewScore: 88},
		},
	}

	require.NoError(t, e.ExportListings(context.Background(), dataset, "listings.csv"))

	_, records := readCSVFile(t, paths.GetExportPath("listings.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"host_id", "price", "bedrooms", "review_scores_rating"}, records[0])
	assert.Equal(t, []string{"h1", "99.00", "1.00", "88.00"}, records[1])
}

func TestExportListings_AlternateNumericColumnNames(t *testing.T) {
	e, paths := testListingsExporter(t)

	dataset := &domain.Dataset{
		Columns: []string{"host_id", "number_of_rooms", "review_score"},
		Listings: []domain.Listing{
			{HostID: "h1", Bedrooms: 4, ReviewScore: 92},
		},
	}

	require.NoError(t, e.ExportListings(context.Background(), dataset, "listings.csv"))

	_, records := readCSVFile(t, paths.GetExportPath("listings.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"h1", "4.00", "92.00"}, records[1])
}

func TestExportHosts(t *testing.T) {
	e, paths := testListingsExporter(t)

	ranking := []domain.HostCount{
		{HostID: "A", Count: 12},
		{HostID: "unknown", Count: 3},
		{HostID: "B", Count: 1},
	}

	require.NoError(t, e.ExportHosts(context.Background(), ranking, "hosts.csv"))

	hasBOM, records := readCSVFile(t, paths.GetExportPath("hosts.csv"))
	assert.True(t, hasBOM)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"host_id", "count"}, records[0])
	assert.Equal(t, []string{"A", "12"}, records[1])
	assert.Equal(t, []string{"unknown", "3"}, records[2])
	assert.Equal(t, []string{"B", "1"}, records[3])
}

func TestExportStats(t *testing.T) {
	e, paths := testListingsExporter(t)

	stats := domain.DatasetStats{Count: 3, AveragePricePerRoom: 108.333}

	require.NoError(t, e.ExportStats(context.Background(), stats, "stats.csv"))

	hasBOM, records := readCSVFile(t, paths.GetExportPath("stats.csv"))
	assert.True(t, hasBOM)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"count", "averagePricePerRoom"}, records[0])
	assert.Equal(t, []string{"3", "108.33"}, records[1])
}

func TestExportHosts_BOMOff(t *testing.T) {
	paths := testPaths(t)
	e := NewListingsExporter(paths, config.ExportConfig{CSVBOMPrefix: false})

	require.NoError(t, e.ExportHosts(context.Background(),
		[]domain.HostCount{{HostID: "A", Count: 1}}, "hosts.csv"))

	hasBOM, _ := readCSVFile(t, paths.GetExportPath("hosts.csv"))
	assert.False(t, hasBOM)
}
