package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscope/pkg/contracts/domain"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		listings []domain.Listing
		want     domain.DatasetStats
	}{
		{
			name: "average is total price over total rooms",
			listings: []domain.Listing{
				{Price: 100, Bedrooms: 1},
				{Price: 200, Bedrooms: 2},
				{Price: 300, Bedrooms: 3},
			},
			want: domain.DatasetStats{Count: 3, AveragePricePerRoom: 100},
		},
		{
			name:     "empty set",
			listings: nil,
			want:     domain.DatasetStats{Count: 0, AveragePricePerRoom: 0},
		},
		{
			name: "zero total rooms floors the average at zero",
			listings: []domain.Listing{
				{Price: 100, Bedrooms: 0},
				{Price: 200, Bedrooms: 0},
			},
			want: domain.DatasetStats{Count: 2, AveragePricePerRoom: 0},
		},
		{
			name: "rooms without prices",
			listings: []domain.Listing{
				{Price: 0, Bedrooms: 2},
				{Price: 0, Bedrooms: 3},
			},
			want: domain.DatasetStats{Count: 2, AveragePricePerRoom: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(context.Background(), tt.listings)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeListingsByHost(t *testing.T) {
	listings := []domain.Listing{
		{HostID: "A"},
		{HostID: "A"},
		{HostID: "B"},
	}

	ranking := ComputeListingsByHost(context.Background(), listings)

	require.Len(t, ranking, 2)
	assert.Equal(t, domain.HostCount{HostID: "A", Count: 2}, ranking[0])
	assert.Equal(t, domain.HostCount{HostID: "B", Count: 1}, ranking[1])
}

func TestComputeListingsByHost_MissingHostGroupsAsUnknown(t *testing.T) {
	listings := []domain.Listing{
		{HostID: ""},
		{HostID: ""},
		{HostID: ""},
		{HostID: "h9"},
	}

	ranking := ComputeListingsByHost(context.Background(), listings)

	require.Len(t, ranking, 2)
	assert.Equal(t, domain.UnknownHostID, ranking[0].HostID)
	assert.Equal(t, 3, ranking[0].Count)
	assert.Equal(t, "h9", ranking[1].HostID)
}

func TestComputeListingsByHost_TieBreaksByHostID(t *testing.T) {
	listings := []domain.Listing{
		{HostID: "zeta"},
		{HostID: "alpha"},
		{HostID: "mika"},
	}

	ranking := ComputeListingsByHost(context.Background(), listings)

	require.Len(t, ranking, 3)
	assert.Equal(t, "alpha", ranking[0].HostID)
	assert.Equal(t, "mika", ranking[1].HostID)
	assert.Equal(t, "zeta", ranking[2].HostID)
}

func TestComputeListingsByHost_EmptySet(t *testing.T) {
	ranking := ComputeListingsByHost(context.Background(), nil)
	assert.Empty(t, ranking)
}

func TestComputeExtendedStats(t *testing.T) {
	listings := []domain.Listing{
		{HostID: "h1", Price: 100, Bedrooms: 1, ReviewScore: 90},
		{HostID: "h1", Price: 300, Bedrooms: 3, ReviewScore: 70},
		{HostID: "", Price: 200, Bedrooms: 2, ReviewScore: 80},
	}

	extended := ComputeExtendedStats(context.Background(), listings)

	assert.Equal(t, 3, extended.Count)
	assert.Equal(t, 6.0, extended.TotalBedrooms)
	assert.Equal(t, 100.0, extended.MinPrice)
	assert.Equal(t, 300.0, extended.MaxPrice)
	assert.Equal(t, 200.0, extended.AveragePrice)
	assert.Equal(t, 80.0, extended.AverageReviewScore)
	assert.Equal(t, 2, extended.HostCount) // h1 and unknown
}

func TestComputeExtendedStats_EmptySet(t *testing.T) {
	extended := ComputeExtendedStats(context.Background(), nil)

	assert.Equal(t, 0, extended.Count)
	assert.Equal(t, 0.0, extended.MinPrice)
	assert.Equal(t, 0.0, extended.MaxPrice)
	assert.Equal(t, 0.0, extended.AveragePrice)
	assert.Equal(t, 0, extended.HostCount)
}
