package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stayscope/internal/config"
	apperrors "stayscope/internal/errors"
)

func testLoader() *Loader {
	return NewLoader(config.DatasetConfig{Delimiter: ","})
}

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DelimitedText(t *testing.T) {
	path := writeDataset(t, "listings.csv",
		"host_id,price,bedrooms\nh1,100,2\nh2,200,3\n")

	dataset, err := testLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, dataset.Source)
	assert.Equal(t, []string{"host_id", "price", "bedrooms"}, dataset.Columns)
	require.Len(t, dataset.Listings, 2)
	assert.Equal(t, 100.0, dataset.Listings[0].Price)
	assert.Equal(t, "h2", dataset.Listings[1].HostID)
}

func TestLoad_TxtExtensionParsesAsText(t *testing.T) {
	path := writeDataset(t, "listings.txt", "price,bedrooms\n50,1\n")

	dataset, err := testLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, dataset.Listings, 1)
	assert.Equal(t, 50.0, dataset.Listings[0].Price)
}

func TestLoad_StripsUTF8BOM(t *testing.T) {
	content := string([]byte{0xEF, 0xBB, 0xBF}) + "price,bedrooms\n75,1\n"
	path := writeDataset(t, "bom.csv", content)

	dataset, err := testLoader().Load(context.Background(), path)
	require.NoError(t, err)

	// The BOM must not glue itself onto the first header name.
	assert.Equal(t, []string{"price", "bedrooms"}, dataset.Columns)
	require.Len(t, dataset.Listings, 1)
	assert.Equal(t, 75.0, dataset.Listings[0].Price)
}

func TestLoad_ConfiguredDelimiter(t *testing.T) {
	loader := NewLoader(config.DatasetConfig{Delimiter: ";"})
	path := writeDataset(t, "semi.csv", "price;bedrooms\n120;2\n")

	dataset, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, dataset.Listings, 1)
	assert.Equal(t, 120.0, dataset.Listings[0].Price)
	assert.Equal(t, 2.0, dataset.Listings[0].Bedrooms)
}

func TestLoad_MissingFileIsNotFound(t *testing.T) {
	_, err := testLoader().Load(context.Background(),
		filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestLoad_DirectoryIsStorageError(t *testing.T) {
	_, err := testLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]interface{}{"host_id", "price", "bedrooms"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]interface{}{"h1", "$1,200.50", 2}))
	// Row 3 left blank on purpose; spreadsheets carry such gaps.
	require.NoError(t, f.SetSheetRow("Sheet1", "A4",
		&[]interface{}{"h2", "300", 3}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	dataset, err := testLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"host_id", "price", "bedrooms"}, dataset.Columns)
	require.Len(t, dataset.Listings, 2)
	assert.Equal(t, "h1", dataset.Listings[0].HostID)
	assert.Equal(t, 1200.50, dataset.Listings[0].Price)
	assert.Equal(t, 300.0, dataset.Listings[1].Price)
	assert.Equal(t, 3.0, dataset.Listings[1].Bedrooms)
}

func TestLoad_WorkbookNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("listings")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("listings", "A1", &[]interface{}{"price", "bedrooms"}))
	require.NoError(t, f.SetSheetRow("listings", "A2", &[]interface{}{"80", "1"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loader := NewLoader(config.DatasetConfig{Delimiter: ",", Sheet: "listings"})
	dataset, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, dataset.Listings, 1)
	assert.Equal(t, 80.0, dataset.Listings[0].Price)
}

func TestLoad_WorkbookUnknownSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loader := NewLoader(config.DatasetConfig{Delimiter: ",", Sheet: "missing"})
	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestLoad_CorruptWorkbook(t *testing.T) {
	path := writeDataset(t, "broken.xlsx", "this is not a zip archive")

	_, err := testLoader().Load(context.Background(), path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}
