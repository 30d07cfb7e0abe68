package dataprocessing

import (
	"stayscope/pkg/contracts/domain"
)

// Store holds the working set of listings between operations. Filtering is
// the only mutation: each call replaces the set with the ordered surviving
// subsequence, so bounds accumulate and the set only ever narrows. Callers
// that need the original data back reload from the source.
//
// A Store is not safe for concurrent use. The interactive loop and the
// batch reporter drive it from a single goroutine, and serve mode never
// mutates a store after load; anything else must serialize access itself.
type Store struct {
	listings []domain.Listing
}

// NewStore creates a store over the parser's output. The slice is adopted,
// not copied.
func NewStore(listings []domain.Listing) *Store {
	return &Store{listings: listings}
}

// Filter narrows the working set to the listings matching every supplied
// bound. Criteria with no bounds set leave the set untouched.
func (s *Store) Filter(criteria domain.FilterCriteria) {
	if criteria.IsZero() {
		return
	}
	s.listings = FilterListings(s.listings, criteria)
}

// Listings returns the current working set. The slice is shared with the
// store; callers that want an independent copy use Snapshot.
func (s *Store) Listings() []domain.Listing {
	return s.listings
}

// Snapshot returns an independent copy of the current set, so the caller
// keeps a stable view across later Filter calls. Listings are value-copied;
// their field maps stay shared, which is safe because listings are never
// mutated after parse.
func (s *Store) Snapshot() []domain.Listing {
	snapshot := make([]domain.Listing, len(s.listings))
	copy(snapshot, s.listings)
	return snapshot
}

// Len reports the size of the current working set.
func (s *Store) Len() int {
	return len(s.listings)
}

// FilterListings applies criteria to a listing slice without a store and
// without mutating the input. Serve mode uses it so per-request bounds
// never touch the shared loaded set.
func FilterListings(listings []domain.Listing, criteria domain.FilterCriteria) []domain.Listing {
	if criteria.IsZero() {
		return listings
	}

	filtered := make([]domain.Listing, 0, len(listings))
	for _, listing := range listings {
		if criteria.Matches(listing) {
			filtered = append(filtered, listing)
		}
	}
	return filtered
}
