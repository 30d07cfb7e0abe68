// Package domain contains the data contracts for the stayscope listings
// pipeline. These types are the single source of truth shared by the parser,
// the listing store, analytics, exporters and the transport layer.
package domain

// UnknownHostID is the group key used for listings whose host identifier is
// empty or absent. The substitution happens at aggregation time only; parsed
// listings keep the raw (possibly empty) value.
const UnknownHostID = "unknown"

// Listing is a single short-term rental record produced by the parser.
//
// The numeric fields are always present: source text that cannot be coerced
// to a number becomes 0 rather than failing the row ("$1,200.50" -> 1200.50,
// "abc" -> 0). Every column that is not one of the recognized numeric columns
// or host_id is carried verbatim as text in Fields, keyed by the trimmed
// header name.
type Listing struct {
	// HostID is the raw host identifier from the host_id column. It may be
	// empty; grouping substitutes UnknownHostID in that case.
	HostID string `json:"host_id"`

	// Price is the coerced nightly price.
	Price float64 `json:"price"`

	// Bedrooms is the coerced room count, read from whichever of the
	// bedrooms or number_of_rooms columns the header declares.
	Bedrooms float64 `json:"bedrooms"`

	// ReviewScore is the coerced rating, read from whichever of the
	// review_scores_rating or review_score columns the header declares.
	ReviewScore float64 `json:"review_score"`

	// Fields carries all remaining columns verbatim as text.
	Fields map[string]string `json:"fields,omitempty"`
}

// Field returns the raw text of a passthrough column, or "" when the column
// is absent. Rows shorter than the header store "" for the missing columns,
// so absence and emptiness read the same, which is the intended degradation.
func (l Listing) Field(name string) string {
	return l.Fields[name]
}

// Dataset is a parsed listings document: the source it was loaded from, the
// header columns in their original order, and the listings built from the
// data rows. The column order is only needed by tabular renderers and CSV
// export; everything else operates on Listings alone.
type Dataset struct {
	Source   string    `json:"source,omitempty"`
	Columns  []string  `json:"columns"`
	Listings []Listing `json:"listings"`
}
