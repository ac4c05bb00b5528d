// Package charts renders the run's figure set as PNG files with
// gonum/plot. Each figure degrades gracefully: a renderer that needs a
// column the dataset lacks drops out of the plan instead of failing
// the batch.
package charts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/plotter"

	"solarqc/domain/table"
	"solarqc/internal"
	"solarqc/internal/config"
	"solarqc/ports"
)

// Renderer draws the standard figure set for a cleaning run
type Renderer struct {
	cfg config.ChartConfig
	log *internal.Logger
}

// NewRenderer creates a renderer with the given chart configuration
func NewRenderer(cfg config.ChartConfig) *Renderer {
	return &Renderer{
		cfg: cfg,
		log: internal.DefaultLogger.WithComponent("Charts"),
	}
}

var _ ports.ChartRenderer = (*Renderer)(nil)

type figure struct {
	kind     ports.ChartKind
	title    string
	filename string
	render   func(path string) error
}

// RenderAll draws every applicable figure concurrently and returns the
// written artifacts in plan order.
func (r *Renderer) RenderAll(ctx context.Context, req ports.ChartRequest) ([]ports.ChartArtifact, error) {
	figures := r.plan(req)
	if len(figures) == 0 {
		r.log.Warn("no figures applicable to dataset, skipping chart rendering")
		return nil, nil
	}
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	artifacts := make([]ports.ChartArtifact, len(figures))
	g, ctx := errgroup.WithContext(ctx)
	for i, fig := range figures {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(req.OutDir, fig.filename)
			if err := fig.render(path); err != nil {
				return fmt.Errorf("failed to render %s: %w", fig.kind, err)
			}
			artifacts[i] = ports.ChartArtifact{Kind: fig.kind, Title: fig.title, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.log.Info("rendered %d figures to %s", len(artifacts), req.OutDir)
	return artifacts, nil
}

// plan decides which figures the request supports
func (r *Renderer) plan(req ports.ChartRequest) []figure {
	var figures []figure

	targets := numericTargets(req.Cleaned, req.Columns)
	if req.Cleaned != nil && req.Cleaned.TimeColumn != "" && len(targets) > 0 {
		figures = append(figures, figure{
			kind:     ports.ChartTimeseries,
			title:    "Cleaned series over time",
			filename: "timeseries.png",
			render:   func(path string) error { return r.renderTimeseries(req.Cleaned, targets, path) },
		})
	}

	for _, col := range numericTargets(req.Raw, req.Columns) {
		figures = append(figures, figure{
			kind:     ports.ChartHistogram,
			title:    col + " distribution before and after cleaning",
			filename: "histogram_" + sanitizeName(col) + ".png",
			render:   func(path string) error { return r.renderHistogram(req.Raw, req.Cleaned, col, path) },
		})
	}

	if len(targets) >= 2 {
		x, y := targets[0], targets[1]
		figures = append(figures, figure{
			kind:     ports.ChartScatter,
			title:    fmt.Sprintf("%s vs %s", x, y),
			filename: "scatter_" + sanitizeName(x) + "_" + sanitizeName(y) + ".png",
			render:   func(path string) error { return r.renderScatter(req.Cleaned, x, y, path) },
		})
	}

	if req.Matrix != nil && req.Matrix.Size() >= 2 {
		figures = append(figures, figure{
			kind:     ports.ChartHeatmap,
			title:    "Correlation heatmap",
			filename: "correlation_heatmap.png",
			render:   func(path string) error { return r.renderHeatmap(req.Matrix, path) },
		})
	}

	speedCol := findColumn(req.Raw, "WS")
	dirCol := findColumn(req.Raw, "WD")
	if speedCol != "" && dirCol != "" {
		figures = append(figures, figure{
			kind:     ports.ChartWindRose,
			title:    "Wind speed by direction",
			filename: "windrose.png",
			render:   func(path string) error { return r.renderWindRose(req.Raw, speedCol, dirCol, path) },
		})
	}

	ghiCol := findColumn(req.Raw, "GHI")
	tambCol := findColumn(req.Raw, "Tamb")
	rhCol := findColumn(req.Raw, "RH")
	if ghiCol != "" && tambCol != "" && rhCol != "" {
		figures = append(figures, figure{
			kind:     ports.ChartBubble,
			title:    "GHI vs ambient temperature, sized by relative humidity",
			filename: "ghi_tamb_rh_bubble.png",
			render:   func(path string) error { return r.renderBubble(req.Raw, ghiCol, tambCol, rhCol, path) },
		})
	}

	return figures
}

// numericTargets filters the requested columns down to those present
// and numeric in the dataset
func numericTargets(ds *table.Dataset, columns []string) []string {
	if ds == nil {
		return nil
	}
	var out []string
	for _, col := range columns {
		if !ds.HasColumn(col) {
			continue
		}
		switch ds.ColumnType(col) {
		case table.ValueTypeFloat, table.ValueTypeInteger:
			out = append(out, col)
		}
	}
	return out
}

// findColumn resolves a conventional column name case-insensitively,
// returning the actual header or empty when absent
func findColumn(ds *table.Dataset, name string) string {
	if ds == nil {
		return ""
	}
	for _, col := range ds.Columns {
		if strings.EqualFold(col, name) {
			return col
		}
	}
	return ""
}

// pairedSeries extracts the rows where both columns hold numbers
func pairedSeries(ds *table.Dataset, xCol, yCol string) plotter.XYs {
	var pts plotter.XYs
	for _, row := range ds.Rows {
		x, okX := row[xCol].AsFloat64()
		y, okY := row[yCol].AsFloat64()
		if okX && okY {
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
	}
	return pts
}

func sanitizeName(col string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(col) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
