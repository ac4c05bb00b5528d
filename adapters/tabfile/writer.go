package tabfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"solarqc/domain/core"
	"solarqc/domain/table"
	"solarqc/internal"
	"solarqc/ports"
)

// Writer persists datasets as CSV with the source column order and
// timestamp layout
type Writer struct {
	log *internal.Logger
}

// NewWriter creates a CSV writer
func NewWriter() *Writer {
	return &Writer{log: internal.DefaultLogger.WithComponent("TabWriter")}
}

var _ ports.DatasetWriter = (*Writer)(nil)

// WriteDataset writes the dataset to path, creating parent directories
// as needed. Missing cells come out as empty fields.
func (w *Writer) WriteDataset(ctx context.Context, ds *table.Dataset, path string) error {
	if ds == nil || len(ds.Columns) == 0 {
		return core.ErrEmptyDataset
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writeStart := time.Now()
	cw := csv.NewWriter(file)
	if err := cw.Write(ds.Columns); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for i, row := range ds.Rows {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				file.Close()
				return err
			}
		}
		for j, col := range ds.Columns {
			record[j] = formatCell(row[col], ds.TimeLayout)
		}
		if err := cw.Write(record); err != nil {
			file.Close()
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	w.log.Info("dataset %s written to %s in %.2fms (%d rows)",
		ds.Name, path, float64(time.Since(writeStart).Nanoseconds())/1e6, ds.RowCount())
	return nil
}

// formatCell renders a cell the way the source file spelled it: shortest
// float form, bare integers, the ingest timestamp layout.
func formatCell(v table.Value, timeLayout string) string {
	switch v.Type {
	case table.ValueTypeFloat:
		if v.FloatVal != nil {
			return strconv.FormatFloat(*v.FloatVal, 'g', -1, 64)
		}
	case table.ValueTypeInteger:
		if v.IntVal != nil {
			return strconv.FormatInt(*v.IntVal, 10)
		}
	case table.ValueTypeBoolean:
		if v.BooleanVal != nil {
			return strconv.FormatBool(*v.BooleanVal)
		}
	case table.ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case table.ValueTypeTimestamp:
		if v.TimestampVal != nil {
			if timeLayout == "" {
				timeLayout = time.RFC3339
			}
			return v.TimestampVal.Format(timeLayout)
		}
	}
	return ""
}
