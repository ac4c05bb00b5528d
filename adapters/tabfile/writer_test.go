package tabfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarqc/domain/core"
	"solarqc/domain/table"
	"solarqc/ports"
)

func TestWriteDatasetGolden(t *testing.T) {
	ds := table.New("mini", []string{"Timestamp", "GHI", "Flag", "Note"})
	ds.TimeColumn = "Timestamp"
	ds.TimeLayout = "2006-01-02 15:04"
	ds.AppendRow(table.Row{
		"Timestamp": table.NewTimestampValue(time.Date(2021, 8, 9, 10, 0, 0, 0, time.UTC)),
		"GHI":       table.NewFloatValue(520.5),
		"Flag":      table.NewBooleanValue(true),
		"Note":      table.NewStringValue("panel wash"),
	})
	ds.AppendRow(table.Row{
		"Timestamp": table.NewTimestampValue(time.Date(2021, 8, 9, 10, 1, 0, 0, time.UTC)),
		"GHI":       table.NewMissingValue(),
		"Flag":      table.NewBooleanValue(false),
		"Note":      table.NewMissingValue(),
	})

	path := filepath.Join(t.TempDir(), "mini.csv")
	w := NewWriter()
	require.NoError(t, w.WriteDataset(context.Background(), ds, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "Timestamp,GHI,Flag,Note\n" +
		"2021-08-09 10:00,520.5,true,panel wash\n" +
		"2021-08-09 10:01,,false,\n"
	assert.Equal(t, want, string(raw))
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	r := NewReader()
	original, err := r.ReadDataset(context.Background(),
		filepath.Join("testdata", "station_sample.csv"), ports.ReadOptions{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roundtrip.csv")
	w := NewWriter()
	require.NoError(t, w.WriteDataset(context.Background(), original, path))

	reread, err := r.ReadDataset(context.Background(), path, ports.ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, original.Columns, reread.Columns)
	assert.Equal(t, original.TimeColumn, reread.TimeColumn)
	assert.Equal(t, original.TimeLayout, reread.TimeLayout)
	require.Equal(t, original.RowCount(), reread.RowCount())

	for i := range original.Rows {
		for _, col := range original.Columns {
			want := original.Rows[i][col]
			got := reread.Rows[i][col]
			assert.True(t, want.Equal(got),
				"row %d column %s: want %s, got %s", i, col, want, got)
		}
	}
}

func TestWriteDatasetCreatesDirectories(t *testing.T) {
	ds := table.New("mini", []string{"GHI"})
	ds.AppendRow(table.Row{"GHI": table.NewFloatValue(1.5)})

	path := filepath.Join(t.TempDir(), "nested", "out", "mini.csv")
	w := NewWriter()
	require.NoError(t, w.WriteDataset(context.Background(), ds, path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteDatasetRejectsEmpty(t *testing.T) {
	w := NewWriter()

	err := w.WriteDataset(context.Background(), nil, "never.csv")
	assert.ErrorIs(t, err, core.ErrEmptyDataset)

	err = w.WriteDataset(context.Background(), &table.Dataset{}, "never.csv")
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}
