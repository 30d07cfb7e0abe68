// Package shared holds utilities used across packages that belong to no
// single layer.
//
// The testutil subpackage provides the test helpers: a capturing slog
// handler for asserting on log output, and deterministic listings fixtures
// for tests that need datasets of a given size.
//
// Nothing here may depend on other internal packages except the domain
// contracts, so any package can import it without cycles.
package shared
