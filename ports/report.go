package ports

import (
	"context"

	"solarqc/domain/cleaning"
	"solarqc/internal/analysis"
	"solarqc/internal/profiling"
)

// ReportBundle aggregates everything a rendered report can draw on.
// Any field except Report may be nil; renderers omit the matching
// section.
type ReportBundle struct {
	Report   *cleaning.Report
	Profile  *profiling.ProfilingResult
	Pearson  *analysis.Matrix
	Spearman *analysis.Matrix
	Charts   []ChartArtifact
}

// ReportRenderer writes run reports in the formats the CLI exposes
type ReportRenderer interface {
	RenderMarkdown(ctx context.Context, bundle ReportBundle, path string) error
	RenderHTML(ctx context.Context, bundle ReportBundle, path string) error
	RenderWorkbook(ctx context.Context, bundle ReportBundle, path string) error
}
