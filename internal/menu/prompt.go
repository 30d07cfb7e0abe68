package menu

import (
	"fmt"
	"strconv"

	"stayscope/pkg/contracts/domain"
)

// promptCriteria collects the six optional bounds, one prompt per bound.
// Raw-text validation lives here: the store only ever sees a structured
// criteria value.
func (s *Session) promptCriteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		MinPrice:  s.promptBound("Minimum price"),
		MaxPrice:  s.promptBound("Maximum price"),
		MinRooms:  s.promptBound("Minimum rooms"),
		MaxRooms:  s.promptBound("Maximum rooms"),
		MinReview: s.promptBound("Minimum review score"),
		MaxReview: s.promptBound("Maximum review score"),
	}
}

// promptBound reads one bound. Blank input omits the bound; input that does
// not parse as a number is reported and omitted rather than re-prompted, so
// a mistyped value never blocks the round.
func (s *Session) promptBound(label string) *float64 {
	line, err := s.promptLine(fmt.Sprintf("%s (blank for none): ", label))
	if err != nil || line == "" {
		return nil
	}

	value, parseErr := strconv.ParseFloat(line, 64)
	if parseErr != nil {
		s.warn.Fprintf(s.out, "  %q is not a number, bound skipped\n", line)
		return nil
	}
	return &value
}
