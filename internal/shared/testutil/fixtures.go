package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stayscope/pkg/contracts/domain"
)

// ListingsHeader is the header row used by generated datasets.
const ListingsHeader = "host_id,price,bedrooms,review_scores_rating"

// ListingsCSV returns a delimited listings document with n generated data
// rows. Values are deterministic so tests can assert on derived figures:
// row i belongs to host "host<i%7>" with price 50+i, 1+i%4 bedrooms and a
// review score of 70+i%30.
func ListingsCSV(n int) string {
	var b strings.Builder
	b.WriteString(ListingsHeader + "\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "host%d,%d,%d,%d\n", i%7, 50+i, 1+i%4, 70+i%30)
	}
	return b.String()
}

// GenerateListings returns n listings carrying the same values ListingsCSV
// encodes, skipping the parse step.
func GenerateListings(n int) []domain.Listing {
	listings := make([]domain.Listing, 0, n)
	for i := 0; i < n; i++ {
		listings = append(listings, domain.Listing{
			HostID:      fmt.Sprintf("host%d", i%7),
			Price:       float64(50 + i),
			Bedrooms:    float64(1 + i%4),
			ReviewScore: float64(70 + i%30),
		})
	}
	return listings
}

// WriteListingsCSV writes a generated dataset file under dir and returns
// its path.
func WriteListingsCSV(t *testing.T, dir, name string, n int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(ListingsCSV(n)), 0o644))
	return path
}
