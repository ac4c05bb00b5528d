package ports

import (
	"context"

	"solarqc/domain/table"
)

// DatasetWriter persists a dataset back to disk in the source format,
// preserving column order and the original timestamp layout
type DatasetWriter interface {
	WriteDataset(ctx context.Context, ds *table.Dataset, path string) error
}
