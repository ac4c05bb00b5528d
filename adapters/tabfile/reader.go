// Package tabfile reads and writes the delimited station exports the
// pipeline runs on. Cells arrive as strings; a sampling pass votes each
// column into a storage type before the full coercion happens.
package tabfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"solarqc/domain/core"
	"solarqc/domain/table"
	"solarqc/internal"
	"solarqc/ports"
)

const defaultSampleRows = 1000

// fallbackTimeLayout is used when a forced timestamp column never
// parses during sampling.
const fallbackTimeLayout = "2006-01-02 15:04:05"

// Reader handles reading CSV, TSV and Excel station files
type Reader struct {
	coercer *Coercer
	log     *internal.Logger
}

// NewReader creates a reader with default coercion rules
func NewReader() *Reader {
	return &Reader{
		coercer: NewCoercer(DefaultCoercionConfig()),
		log:     internal.DefaultLogger.WithComponent("TabReader"),
	}
}

var _ ports.DatasetReader = (*Reader)(nil)

// ReadDataset reads a source file into a typed dataset
func (r *Reader) ReadDataset(ctx context.Context, path string, opts ports.ReadOptions) (*table.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("source file not found: %s", path)
	}

	var rows [][]string
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".tsv":
		rows, err = r.readDelimited(path, ext)
	case ".xlsx":
		rows, err = r.readWorkbook(path)
	default:
		return nil, core.NewUnsupportedFormatError(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, core.ErrNoHeader
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.buildDataset(path, rows, opts)
}

// readDelimited reads CSV or TSV data into raw string rows
func (r *Reader) readDelimited(path, ext string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", strings.TrimPrefix(ext, "."), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if ext == ".tsv" {
		reader.Comma = '\t'
	}
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", strings.TrimPrefix(ext, "."), err)
	}
	r.log.Info("%s file read in %.2fms (%d rows)",
		strings.ToUpper(strings.TrimPrefix(ext, ".")),
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readWorkbook reads the first sheet of an Excel file into raw string rows
func (r *Reader) readWorkbook(path string) ([][]string, error) {
	openStart := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	r.log.Debug("Excel file opened in %.2fms", float64(time.Since(openStart).Nanoseconds())/1e6)

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets: %s", path)
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	r.log.Info("sheet %s read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// buildDataset turns raw string rows into a typed dataset: trim the
// header, vote each column into a type from a sample, locate the
// timestamp column, then coerce every cell.
func (r *Reader) buildDataset(path string, rows [][]string, opts ports.ReadOptions) (*table.Dataset, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	data := rows[1:]

	sampleRows := opts.SampleRows
	if sampleRows <= 0 {
		sampleRows = defaultSampleRows
	}
	sample := sampleIndices(len(data), sampleRows)

	analyses := make([]ColumnAnalysis, len(headers))
	types := make([]table.ValueType, len(headers))
	for j := range headers {
		cells := make([]string, 0, len(sample))
		for _, i := range sample {
			if j < len(data[i]) {
				cells = append(cells, data[i][j])
			}
		}
		analyses[j] = r.coercer.AnalyzeColumn(cells)
		types[j] = analyses[j].Recommended
		r.log.Debug("column %s voted %s (numeric %.2f, boolean %.2f, timestamp %.2f)",
			headers[j], types[j], analyses[j].NumericRatio(),
			analyses[j].BooleanRatio(), analyses[j].TimestampRatio())
	}

	timeIdx, err := r.locateTimeColumn(headers, analyses, opts.TimestampColumn)
	if err != nil {
		return nil, err
	}
	types[timeIdx] = table.ValueTypeTimestamp
	layout := analyses[timeIdx].Layout
	if layout == "" {
		layout = fallbackTimeLayout
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds := table.New(name, headers)
	ds.TimeColumn = headers[timeIdx]
	ds.TimeLayout = layout

	coerceStart := time.Now()
	for _, raw := range data {
		row := make(table.Row, len(headers))
		for j, header := range headers {
			if j >= len(raw) {
				break
			}
			row[header] = r.coercer.CoerceCell(raw[j], types[j], layout)
		}
		ds.AppendRow(row)
	}
	r.log.Info("dataset %s coerced in %.2fms (%d columns, %d rows, time column %s)",
		name, float64(time.Since(coerceStart).Nanoseconds())/1e6,
		len(headers), ds.RowCount(), ds.TimeColumn)

	return ds, nil
}

// locateTimeColumn resolves the timestamp column, honoring an explicit
// override before falling back to detection in header order.
func (r *Reader) locateTimeColumn(headers []string, analyses []ColumnAnalysis, forced string) (int, error) {
	if forced != "" {
		for i, h := range headers {
			if strings.EqualFold(h, forced) {
				return i, nil
			}
		}
		return -1, core.NewColumnNotFoundError(forced)
	}

	for i, a := range analyses {
		if a.Recommended == table.ValueTypeTimestamp {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w in %v", core.ErrNoTimestampColumn, headers)
}

// sampleIndices returns evenly distributed row indices across the data
func sampleIndices(totalRows, sampleSize int) []int {
	if sampleSize >= totalRows {
		indices := make([]int, totalRows)
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	indices := make([]int, 0, sampleSize)
	step := float64(totalRows) / float64(sampleSize)
	for i := 0; i < sampleSize; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx < totalRows {
			indices = append(indices, idx)
		}
	}
	return indices
}
