package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"stayscope/pkg/contracts/domain"
)

// ComputeStats returns the summary view of a listing set: the listing count
// and the average price per room, sum(price) / sum(bedrooms). The average
// is 0 when the set is empty or no listing reports a room; a dataset of
// room-less listings is a valid dataset, not an error.
func ComputeStats(ctx context.Context, listings []domain.Listing) domain.DatasetStats {
	stats := domain.DatasetStats{Count: len(listings)}

	var priceSum, roomSum float64
	for _, listing := range listings {
		priceSum += listing.Price
		roomSum += listing.Bedrooms
	}
	if roomSum != 0 {
		stats.AveragePricePerRoom = priceSum / roomSum
	}

	slog.DebugContext(ctx, "stats computed",
		slog.Int("count", stats.Count),
		slog.Float64("average_price_per_room", stats.AveragePricePerRoom))

	return stats
}

// ComputeListingsByHost groups the set by host identifier and ranks hosts
// by listing count. Listings with an empty host_id are grouped under
// domain.UnknownHostID; the substitution happens here and only here, the
// parsed listings keep their raw value. Hosts with equal counts order by
// host_id ascending so the ranking is deterministic.
func ComputeListingsByHost(ctx context.Context, listings []domain.Listing) []domain.HostCount {
	counts := make(map[string]int)
	for _, listing := range listings {
		host := listing.HostID
		if host == "" {
			host = domain.UnknownHostID
		}
		counts[host]++
	}

	ranking := make([]domain.HostCount, 0, len(counts))
	for host, count := range counts {
		ranking = append(ranking, domain.HostCount{HostID: host, Count: count})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return ranking[i].HostID < ranking[j].HostID
	})

	slog.DebugContext(ctx, "host ranking computed",
		slog.Int("listings", len(listings)),
		slog.Int("hosts", len(ranking)))

	return ranking
}

// ComputeExtendedStats returns the richer console view: price spread,
// averages and distinct host count over the set. It is display-only and
// never part of the stats export, which stays the ComputeStats pair.
func ComputeExtendedStats(ctx context.Context, listings []domain.Listing) domain.ExtendedStats {
	extended := domain.ExtendedStats{Count: len(listings)}
	if len(listings) == 0 {
		return extended
	}

	hosts := make(map[string]bool)
	var priceSum, reviewSum float64

	extended.MinPrice = listings[0].Price
	for _, listing := range listings {
		priceSum += listing.Price
		reviewSum += listing.ReviewScore
		extended.TotalBedrooms += listing.Bedrooms

		if listing.Price < extended.MinPrice {
			extended.MinPrice = listing.Price
		}
		if listing.Price > extended.MaxPrice {
			extended.MaxPrice = listing.Price
		}

		host := listing.HostID
		if host == "" {
			host = domain.UnknownHostID
		}
		hosts[host] = true
	}

	extended.AveragePrice = priceSum / float64(len(listings))
	extended.AverageReviewScore = reviewSum / float64(len(listings))
	extended.HostCount = len(hosts)

	slog.DebugContext(ctx, "extended stats computed",
		slog.Int("count", extended.Count),
		slog.Int("hosts", extended.HostCount))

	return extended
}
