// Package api contains the versioned HTTP contract for the stayscope
// explorer. Version v1 represents the current stable API surface.
package api

import (
	"stayscope/pkg/contracts/domain"
)

// BoundsQuery carries the six optional range bounds accepted by every
// listing endpoint. All bounds are inclusive and combined with AND; an
// absent parameter imposes no constraint. A lower bound above its upper
// bound is not an error, it simply matches nothing.
type BoundsQuery struct {
	MinPrice  *float64 `json:"min_price,omitempty" query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice  *float64 `json:"max_price,omitempty" query:"max_price" validate:"omitempty,gte=0"`
	MinRooms  *float64 `json:"min_rooms,omitempty" query:"min_rooms" validate:"omitempty,gte=0"`
	MaxRooms  *float64 `json:"max_rooms,omitempty" query:"max_rooms" validate:"omitempty,gte=0"`
	MinReview *float64 `json:"min_review,omitempty" query:"min_review" validate:"omitempty,gte=0"`
	MaxReview *float64 `json:"max_review,omitempty" query:"max_review" validate:"omitempty,gte=0"`
}

// Criteria converts the bound query into the filter criteria the listing
// store understands.
func (q BoundsQuery) Criteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRooms:  q.MinRooms,
		MaxRooms:  q.MaxRooms,
		MinReview: q.MinReview,
		MaxReview: q.MaxReview,
	}
}

// ListingsQuery extends the shared bounds with a cap on returned rows.
type ListingsQuery struct {
	BoundsQuery
	Limit int `json:"limit,omitempty" query:"limit" validate:"omitempty,min=1,max=10000"`
}
