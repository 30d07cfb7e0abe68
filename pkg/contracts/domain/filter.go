package domain

// FilterCriteria carries the six optional range bounds understood by the
// listing store. A nil bound is unconstrained; a present bound is inclusive.
// All present bounds must hold for a listing to survive (conjunction).
type FilterCriteria struct {
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	MinRooms  *float64 `json:"min_rooms,omitempty"`
	MaxRooms  *float64 `json:"max_rooms,omitempty"`
	MinReview *float64 `json:"min_review,omitempty"`
	MaxReview *float64 `json:"max_review,omitempty"`
}

// Bound wraps a literal bound value for use in FilterCriteria literals.
func Bound(v float64) *float64 {
	return &v
}

// IsZero reports whether no bound is set. Filtering with a zero criteria is
// a no-op by contract.
func (c FilterCriteria) IsZero() bool {
	return c.MinPrice == nil && c.MaxPrice == nil &&
		c.MinRooms == nil && c.MaxRooms == nil &&
		c.MinReview == nil && c.MaxReview == nil
}

// Matches reports whether l satisfies every bound that is set.
func (c FilterCriteria) Matches(l Listing) bool {
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.MinRooms != nil && l.Bedrooms < *c.MinRooms {
		return false
	}
	if c.MaxRooms != nil && l.Bedrooms > *c.MaxRooms {
		return false
	}
	if c.MinReview != nil && l.ReviewScore < *c.MinReview {
		return false
	}
	if c.MaxReview != nil && l.ReviewScore > *c.MaxReview {
		return false
	}
	return true
}
