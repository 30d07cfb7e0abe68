package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayscope/internal/config"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	return &config.Paths{
		WorkingDir: dir,
		DataDir:    filepath.Join(dir, "data"),
		ExportsDir: filepath.Join(dir, "exports"),
		LogsDir:    filepath.Join(dir, "logs"),
	}
}

// readCSVFile reads a written file, reports whether it starts with the UTF-8
// BOM, and parses the remaining content as CSV.
func readCSVFile(t *testing.T, path string) (bool, [][]string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	hasBOM := bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if hasBOM {
		data = data[3:]
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return hasBOM, records
}

func TestWriteCSV_WithBOM(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	err := writer.WriteCSV("out.csv", WriteOptions{
		Headers:   []string{"host_id", "count"},
		Records:   [][]string{{"A", "2"}, {"B", "1"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	hasBOM, records := readCSVFile(t, paths.GetExportPath("out.csv"))
	assert.True(t, hasBOM)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"host_id", "count"}, records[0])
	assert.Equal(t, []string{"A", "2"}, records[1])
	assert.Equal(t, []string{"B", "1"}, records[2])
}

func TestWriteCSV_WithoutBOM(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	err := writer.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	})
	require.NoError(t, err)

	hasBOM, records := readCSVFile(t, paths.GetExportPath("out.csv"))
	assert.False(t, hasBOM)
	require.Len(t, records, 2)
}

func TestWriteCSV_ResolvesRelativeIntoExportsDir(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteCSV("report.csv", WriteOptions{
		Headers: []string{"x"},
	}))

	assert.FileExists(t, filepath.Join(paths.ExportsDir, "report.csv"))
}

func TestWriteCSV_AbsolutePathPassesThrough(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	target := filepath.Join(t.TempDir(), "elsewhere", "report.csv")
	require.NoError(t, writer.WriteCSV(target, WriteOptions{
		Headers: []string{"x"},
		Records: [][]string{{"1"}},
	}))

	assert.FileExists(t, target)
}

func TestAppendToCSV(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteSimpleCSV("grow.csv",
		[]string{"host_id"}, [][]string{{"A"}}))
	require.NoError(t, writer.AppendToCSV("grow.csv", [][]string{{"B"}, {"C"}}))

	_, records := readCSVFile(t, paths.GetExportPath("grow.csv"))
	require.Len(t, records, 4)
	assert.Equal(t, []string{"A"}, records[1])
	assert.Equal(t, []string{"C"}, records[3])
}

func TestCreateStreamWriter(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"host_id", "price"}, true)
	require.NoError(t, err)

	require.NoError(t, stream.WriteRecord([]string{"A", "100.00"}))
	require.NoError(t, stream.WriteRecord([]string{"B", "250.00"}))
	require.NoError(t, stream.Close())

	hasBOM, records := readCSVFile(t, paths.GetExportPath("stream.csv"))
	assert.True(t, hasBOM)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"B", "250.00"}, records[2])
}

func TestCreateStreamWriter_NoBOM(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"host_id"}, false)
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"A"}))
	require.NoError(t, stream.Close())

	hasBOM, records := readCSVFile(t, paths.GetExportPath("stream.csv"))
	assert.False(t, hasBOM)
	require.Len(t, records, 2)
}

func TestWriteCSV_QuotesCellsWithDelimiters(t *testing.T) {
	paths := testPaths(t)
	writer := NewCSVWriter(paths)

	require.NoError(t, writer.WriteCSV("quoted.csv", WriteOptions{
		Headers: []string{"name", "note"},
		Records: [][]string{{"Sunny, bright loft", `has "view"`}},
	}))

	_, records := readCSVFile(t, paths.GetExportPath("quoted.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, "Sunny, bright loft", records[1][0])
	assert.Equal(t, `has "view"`, records[1][1])
}
