package tabfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"solarqc/domain/core"
	"solarqc/domain/table"
	"solarqc/ports"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDatasetCSV(t *testing.T) {
	r := NewReader()

	ds, err := r.ReadDataset(context.Background(),
		filepath.Join("testdata", "station_sample.csv"), ports.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "station_sample", ds.Name)
	assert.Equal(t, []string{
		"Timestamp", "GHI", "DNI", "DHI", "ModA", "ModB", "Tamb",
		"RH", "WS", "WSgust", "WD", "BP", "Cleaning", "Comments",
	}, ds.Columns)
	assert.Equal(t, 5, ds.RowCount())
	assert.Equal(t, "Timestamp", ds.TimeColumn)
	assert.Equal(t, "2006-01-02 15:04", ds.TimeLayout)

	assert.Equal(t, table.ValueTypeFloat, ds.ColumnType("GHI"))
	assert.Equal(t, table.ValueTypeInteger, ds.ColumnType("Cleaning"))
	assert.Equal(t, table.ValueTypeMissing, ds.ColumnType("Comments"))

	assert.Equal(t, 1, ds.MissingCount("GHI"), "the na cell should read as missing")
	assert.Equal(t, 5, ds.MissingCount("Comments"))

	ts, positions := ds.Times()
	require.Len(t, ts, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, positions)
	assert.True(t, ts[4].After(ts[0]))

	ghi, ghiRows := ds.NumericColumn("GHI")
	assert.Equal(t, []float64{-1.2, -1.1, -1.1, -1}, ghi)
	assert.Equal(t, []int{0, 1, 2, 4}, ghiRows)
}

func TestReadDatasetTSV(t *testing.T) {
	path := writeTempFile(t, "station.tsv",
		"Timestamp\tGHI\n2021-08-09 00:01\t-1.2\n2021-08-09 00:02\t-1.1\n")
	r := NewReader()

	ds, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "Timestamp", ds.TimeColumn)
	assert.Equal(t, table.ValueTypeFloat, ds.ColumnType("GHI"))
}

func TestReadDatasetXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station.xlsx")
	f := excelize.NewFile()
	cells := [][]interface{}{
		{"Timestamp", "GHI", "Cleaning"},
		{"2021-08-09 00:01", -1.2, 0},
		{"2021-08-09 00:02", -1.1, 1},
	}
	for i, row := range cells {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", ref, cell))
		}
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	r := NewReader()
	ds, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "Timestamp", ds.TimeColumn)
	assert.Equal(t, table.ValueTypeFloat, ds.ColumnType("GHI"))
	assert.Equal(t, table.ValueTypeInteger, ds.ColumnType("Cleaning"))
}

func TestReadDatasetMissingFile(t *testing.T) {
	r := NewReader()

	_, err := r.ReadDataset(context.Background(),
		filepath.Join(t.TempDir(), "nope.csv"), ports.ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadDatasetUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "notes.txt", "Timestamp,GHI\n2021-08-09 00:01,-1.2\n")
	r := NewReader()

	_, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.True(t, core.IsFileError(err))
}

func TestReadDatasetHeaderOnly(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "Timestamp,GHI\n")
	r := NewReader()

	_, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	assert.ErrorIs(t, err, core.ErrNoHeader)
}

func TestReadDatasetTimestampOverride(t *testing.T) {
	r := NewReader()

	ds, err := r.ReadDataset(context.Background(),
		filepath.Join("testdata", "station_sample.csv"),
		ports.ReadOptions{TimestampColumn: "timestamp"})
	require.NoError(t, err)
	assert.Equal(t, "Timestamp", ds.TimeColumn, "override matches case-insensitively")

	_, err = r.ReadDataset(context.Background(),
		filepath.Join("testdata", "station_sample.csv"),
		ports.ReadOptions{TimestampColumn: "RecordedAt"})
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestReadDatasetNoTimestampColumn(t *testing.T) {
	path := writeTempFile(t, "plain.csv", "GHI,DNI\n-1.2,-0.2\n-1.1,-0.2\n")
	r := NewReader()

	_, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	assert.ErrorIs(t, err, core.ErrNoTimestampColumn)
}

func TestReadDatasetContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewReader()

	_, err := r.ReadDataset(ctx,
		filepath.Join("testdata", "station_sample.csv"), ports.ReadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadDatasetShortRows(t *testing.T) {
	// Trailing cells dropped by the logger leave short records; the
	// absent cells should read as missing rather than erroring.
	path := writeTempFile(t, "ragged.csv",
		"Timestamp,GHI,DNI\n2021-08-09 00:01,-1.2,-0.2\n2021-08-09 00:02,-1.1\n")
	r := NewReader()

	ds, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.RowCount())
	assert.Equal(t, 1, ds.MissingCount("DNI"))
}

func TestSampleIndices(t *testing.T) {
	all := sampleIndices(5, 10)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, all)

	some := sampleIndices(100, 10)
	assert.Len(t, some, 10)
	assert.Equal(t, 0, some[0])
	for i := 1; i < len(some); i++ {
		assert.Greater(t, some[i], some[i-1])
	}
}
