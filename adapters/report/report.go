// Package report renders a cleaning run as markdown, HTML and an Excel
// workbook. The markdown document is the source of truth; the HTML
// rendition is the same document pushed through gomarkdown with a small
// page shell around it.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"solarqc/domain/table"
	"solarqc/internal"
	"solarqc/internal/analysis"
	"solarqc/ports"
)

// Renderer writes run reports to disk
type Renderer struct {
	log *internal.Logger
}

// NewRenderer creates a report renderer
func NewRenderer() *Renderer {
	return &Renderer{log: internal.DefaultLogger.WithComponent("Report")}
}

var _ ports.ReportRenderer = (*Renderer)(nil)

// RenderMarkdown writes the markdown report to path
func (r *Renderer) RenderMarkdown(ctx context.Context, bundle ports.ReportBundle, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeFile(path, buildMarkdown(bundle)); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	r.log.Info("markdown report written to %s", path)
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// buildMarkdown assembles the full report document
func buildMarkdown(bundle ports.ReportBundle) []byte {
	var b strings.Builder
	rep := bundle.Report

	title := "Data cleaning report"
	if rep != nil && rep.Source != "" {
		title = fmt.Sprintf("Data cleaning report: %s", filepath.Base(rep.Source))
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if rep != nil {
		fmt.Fprintf(&b, "- Run: `%s`\n", rep.RunID)
		fmt.Fprintf(&b, "- Created: %s\n", rep.CreatedAt)
		if rep.Source != "" && rep.SourceHash != "" {
			fmt.Fprintf(&b, "- Source: `%s` (sha256 %s)\n", rep.Source, rep.SourceHash.Short())
		} else if rep.Source != "" {
			fmt.Fprintf(&b, "- Source: `%s`\n", rep.Source)
		}
		fmt.Fprintf(&b, "- Z-score threshold: %g\n", rep.Threshold)
		fmt.Fprintf(&b, "- Rows: %d in, %d out (%d dropped missing, %d dropped as outliers)\n\n",
			rep.RowsIn, rep.RowsOut, rep.RowsDroppedMissing, rep.RowsDroppedOutlier)

		writeColumnTable(&b, bundle)
		writeWarnings(&b, bundle)
	}

	writeProfileSection(&b, bundle)
	writeCorrelationSection(&b, bundle)
	writeFigureSection(&b, bundle)

	return []byte(b.String())
}

func writeColumnTable(b *strings.Builder, bundle ports.ReportBundle) {
	rep := bundle.Report
	if len(rep.Columns) == 0 {
		return
	}
	b.WriteString("## Target columns\n\n")
	b.WriteString("| Column | Missing | Missing % | Outliers | Imputed | Mean | Std dev | Median |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, c := range rep.Columns {
		fmt.Fprintf(b, "| %s | %d | %.1f%% | %d | %d | %.2f | %.2f | %.2f |\n",
			c.Column, c.Missing, c.MissingPct, c.Outliers, c.Imputed,
			c.Mean, c.StdDev, c.Median)
	}
	b.WriteString("\n")
}

func writeWarnings(b *strings.Builder, bundle ports.ReportBundle) {
	rep := bundle.Report
	if len(rep.Warnings) == 0 {
		return
	}
	b.WriteString("## Warnings\n\n")
	for _, w := range rep.Warnings {
		fmt.Fprintf(b, "- **%s** `%s`: %s\n", w.Kind, w.Column, w.Detail)
	}
	b.WriteString("\n")
}

func writeProfileSection(b *strings.Builder, bundle ports.ReportBundle) {
	prof := bundle.Profile
	if prof == nil || len(prof.Profiles) == 0 {
		return
	}
	b.WriteString("## Column profiles\n\n")
	b.WriteString("| Column | Type | Count | Missing % | Min | Q25 | Median | Q75 | Max | Skewness | Kurtosis |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|---|---|---|\n")
	for _, p := range prof.Profiles {
		if p.Type == table.ValueTypeFloat || p.Type == table.ValueTypeInteger {
			fmt.Fprintf(b, "| %s | %s | %d | %.1f%% | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
				p.Column, p.Type, p.Count, p.MissingRate*100,
				p.Summary.Min, p.Summary.Q25, p.Summary.Median,
				p.Summary.Q75, p.Summary.Max, p.Shape.Skewness, p.Shape.Kurtosis)
			continue
		}
		fmt.Fprintf(b, "| %s | %s | %d | %.1f%% | | | | | | | |\n",
			p.Column, p.Type, p.Count, p.MissingRate*100)
	}
	b.WriteString("\n")
}

func writeCorrelationSection(b *strings.Builder, bundle ports.ReportBundle) {
	m := bundle.Pearson
	if m == nil || m.Size() < 2 {
		return
	}
	b.WriteString("## Correlations\n\n")
	b.WriteString("### Pearson\n\n")
	writeMatrixTable(b, m)

	if a, c, r, ok := m.StrongestPair(); ok {
		fmt.Fprintf(b, "Strongest pair: %s and %s (r = %.2f).\n\n", a, c, r)
	}

	if s := bundle.Spearman; s != nil && s.Size() >= 2 {
		b.WriteString("### Spearman\n\n")
		writeMatrixTable(b, s)
	}
}

func writeMatrixTable(b *strings.Builder, m *analysis.Matrix) {
	b.WriteString("| |")
	for _, col := range m.Columns {
		fmt.Fprintf(b, " %s |", col)
	}
	b.WriteString("\n|---|")
	for range m.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, col := range m.Columns {
		fmt.Fprintf(b, "| **%s** |", col)
		for j := range m.Columns {
			fmt.Fprintf(b, " %.2f |", m.At(i, j))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeFigureSection(b *strings.Builder, bundle ports.ReportBundle) {
	if len(bundle.Charts) == 0 {
		return
	}
	b.WriteString("## Figures\n\n")
	for _, chart := range bundle.Charts {
		fmt.Fprintf(b, "![%s](%s)\n\n", chart.Title, filepath.Base(chart.Path))
	}
}
