package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscope/internal/shared/testutil"
)

func TestValidateDatasetFile(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T) string
		errorContains string
	}{
		{
			name: "regular csv file",
			setup: func(t *testing.T) string {
				return testutil.WriteListingsCSV(t, t.TempDir(), "listings.csv", 3)
			},
		},
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.csv")
			},
			errorContains: "does not exist",
		},
		{
			name: "directory instead of file",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			errorContains: "is a directory",
		},
		{
			name: "spreadsheet lock file",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				path := filepath.Join(dir, "~$listings.xlsx")
				require.NoError(t, os.WriteFile(path, []byte{0x01}, 0o644))
				return path
			},
			errorContains: "lock file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger()
			v := NewDatasetValidator(logger)

			err := v.ValidateDatasetFile(tt.setup(t))
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestValidateDatasetFileWarnings(t *testing.T) {
	dir := t.TempDir()

	t.Run("unexpected extension", func(t *testing.T) {
		path := filepath.Join(dir, "listings.tsv")
		require.NoError(t, os.WriteFile(path, []byte("host_id\th1\n"), 0o644))

		logger, capture := testutil.NewTestLogger()
		require.NoError(t, NewDatasetValidator(logger).ValidateDatasetFile(path))
		assert.True(t, capture.ContainsMessage("Unexpected dataset extension"))
		assert.True(t, capture.ContainsAttr("extension", ".tsv"))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		logger, capture := testutil.NewTestLogger()
		require.NoError(t, NewDatasetValidator(logger).ValidateDatasetFile(path))
		assert.True(t, capture.ContainsMessage("Dataset file is empty"))
	})

	t.Run("accepted extension stays quiet", func(t *testing.T) {
		path := testutil.WriteListingsCSV(t, dir, "quiet.csv", 1)

		logger, capture := testutil.NewTestLogger()
		require.NoError(t, NewDatasetValidator(logger).ValidateDatasetFile(path))
		assert.False(t, capture.ContainsMessage("Unexpected dataset extension"))
	})
}

func TestValidateOutputDirectory(t *testing.T) {
	logger, _ := testutil.NewTestLogger()
	v := NewDatasetValidator(logger)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "exports", "nested")
		require.NoError(t, v.ValidateOutputDirectory(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory passes", func(t *testing.T) {
		require.NoError(t, v.ValidateOutputDirectory(t.TempDir()))
	})

	t.Run("path through a file fails", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create output directory")
	})

	t.Run("probe file is removed", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, v.ValidateOutputDirectory(dir))

		_, err := os.Stat(filepath.Join(dir, ".write_check"))
		assert.True(t, os.IsNotExist(err))
	})
}
