package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteJSON writes any JSON-representable view to path with stable two-space
// indentation. Parent directories are created as needed and an existing file
// is truncated. Write failures propagate; there is no retry and no cleanup
// of a partially written file.
func WriteJSON(ctx context.Context, path string, v interface{}) error {
	slog.InfoContext(ctx, "Writing JSON export", slog.String("path", path))

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
