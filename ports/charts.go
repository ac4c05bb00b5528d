package ports

import (
	"context"

	"solarqc/domain/table"
	"solarqc/internal/analysis"
)

// ChartKind identifies one rendered figure type.
type ChartKind string

const (
	ChartTimeseries ChartKind = "timeseries"
	ChartHistogram  ChartKind = "histogram"
	ChartScatter    ChartKind = "scatter"
	ChartHeatmap    ChartKind = "heatmap"
	ChartWindRose   ChartKind = "windrose"
	ChartBubble     ChartKind = "bubble"
)

// ChartRequest carries everything the chart layer may draw from. Raw is
// the dataset as ingested, Cleaned the post-cleaning view; renderers
// that need a column the dataset lacks skip themselves instead of
// failing the batch.
type ChartRequest struct {
	Raw     *table.Dataset
	Cleaned *table.Dataset
	Columns []string
	Matrix  *analysis.Matrix
	OutDir  string
}

// ChartArtifact describes one figure written to disk.
type ChartArtifact struct {
	Kind  ChartKind
	Title string
	Path  string
}

// ChartRenderer draws the full figure set for a run
type ChartRenderer interface {
	RenderAll(ctx context.Context, req ChartRequest) ([]ChartArtifact, error)
}
