package ports

import (
	"context"

	"solarqc/domain/table"
)

// ReadOptions tunes how a source file is ingested.
type ReadOptions struct {
	// TimestampColumn names the time column explicitly. Empty means
	// detect it from the header and cell contents.
	TimestampColumn string
	// SampleRows caps how many rows the type analyzer inspects per
	// column. Zero means the adapter default.
	SampleRows int
}

// DatasetReader loads a delimited or spreadsheet source file into a
// typed dataset
type DatasetReader interface {
	ReadDataset(ctx context.Context, path string, opts ReadOptions) (*table.Dataset, error)
}
