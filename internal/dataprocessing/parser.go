package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"stayscope/internal/config"
	"stayscope/pkg/contracts/domain"
)

// DefaultDelimiter is the field separator the parsing contract assumes.
const DefaultDelimiter = ','

// Parse converts raw delimited text into listings. The first line is the
// header; every later non-empty line becomes exactly one listing. Parse
// never fails: unparseable numeric cells coerce to 0 and short rows read
// as empty text, so the caller always gets one listing per data row.
func Parse(content string) []domain.Listing {
	return ParseWithDelimiter(content, DefaultDelimiter)
}

// ParseWithDelimiter is Parse with a configurable separator rune. A zero
// delimiter falls back to the comma default.
func ParseWithDelimiter(content string, delimiter rune) []domain.Listing {
	return DatasetFromRows("", SplitRows(content, delimiter)).Listings
}

// ParseDataset parses delimited text and keeps the header columns in their
// original order alongside the listings, for renderers that replay the
// source column layout.
func ParseDataset(source, content string, delimiter rune) *domain.Dataset {
	return DatasetFromRows(source, SplitRows(content, delimiter))
}

// SplitRows splits raw text into rows of cells. Lines are separated on \n
// with a trailing \r stripped first, so CRLF input parses the same as LF.
// Lines that are empty after trimming contribute no row.
func SplitRows(content string, delimiter rune) [][]string {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	lines := strings.Split(content, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, string(delimiter)))
	}
	return rows
}

// DatasetFromRows builds a dataset from pre-split rows where the first row
// is the header. It is the single record-building path: delimited text and
// spreadsheet input both end up here.
func DatasetFromRows(source string, rows [][]string) *domain.Dataset {
	dataset := &domain.Dataset{Source: source}
	if len(rows) == 0 {
		return dataset
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}
	dataset.Columns = header

	columnMap := mapColumns(header)
	slog.Debug("resolved dataset columns",
		slog.String("source", source),
		slog.Int("columns", len(header)),
		slog.Any("recognized", columnMap))

	listings := make([]domain.Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		listings = append(listings, buildListing(header, columnMap, row))
	}
	dataset.Listings = listings

	slog.Debug("dataset parsed",
		slog.String("source", source),
		slog.Int("rows", len(listings)))

	return dataset
}

// mapColumns assigns a role to each recognized header position. Header
// names are matched case-insensitively after trimming; when a role appears
// under more than one name the rightmost column wins.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, name := range header {
		switch strings.ToLower(name) {
		case config.ColumnPrice:
			columns["price"] = i
		case config.ColumnBedrooms, config.ColumnRoomsAlt:
			columns["rooms"] = i
		case config.ColumnReviewScores, config.ColumnReviewAlt:
			columns["review"] = i
		case config.ColumnHostID:
			columns["host"] = i
		}
	}
	return columns
}

// buildListing materializes one data row against the header. Cells beyond
// the header are dropped; cells the row is missing read as "".
func buildListing(header []string, columns map[string]int, row []string) domain.Listing {
	cell := func(i int) string {
		if i >= 0 && i < len(row) {
			return row[i]
		}
		return ""
	}

	numeric := func(role string) float64 {
		idx, ok := columns[role]
		if !ok {
			return 0
		}
		return CoerceNumeric(cell(idx))
	}

	listing := domain.Listing{
		Price:       numeric("price"),
		Bedrooms:    numeric("rooms"),
		ReviewScore: numeric("review"),
	}
	if idx, ok := columns["host"]; ok {
		listing.HostID = strings.TrimSpace(cell(idx))
	}

	recognized := make(map[int]bool, len(columns))
	for _, idx := range columns {
		recognized[idx] = true
	}

	fields := make(map[string]string, len(header))
	for i, name := range header {
		if recognized[i] || name == "" {
			continue
		}
		fields[name] = cell(i)
	}
	if len(fields) > 0 {
		listing.Fields = fields
	}

	return listing
}

// CoerceNumeric converts free-form source text to a float64. Every rune
// that is not an ASCII digit or a decimal point is removed before parsing,
// and text that still does not parse becomes 0: "$1,200.50" reads as
// 1200.50, "abc" as 0, "-5" as 5 since the sign is outside the accepted
// alphabet.
func CoerceNumeric(raw string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)

	if cleaned == "" {
		return 0
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
