package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"solarqc/domain/cleaning"
	"solarqc/domain/core"
	"solarqc/domain/table"
	"solarqc/internal/analysis"
	"solarqc/internal/profiling"
	"solarqc/ports"
)

func reportFixture(t *testing.T) ports.ReportBundle {
	t.Helper()

	ds := table.New("station", []string{"Timestamp", "GHI", "DNI"})
	ds.TimeColumn = "Timestamp"
	base := time.Date(2021, 8, 9, 6, 0, 0, 0, time.UTC)
	ghi := []float64{10, 12, 11, 1000}
	for i, g := range ghi {
		ds.AppendRow(table.Row{
			"Timestamp": table.NewTimestampValue(base.Add(time.Duration(i) * time.Minute)),
			"GHI":       table.NewFloatValue(g),
			"DNI":       table.NewFloatValue(g * 0.8),
		})
	}
	ds.AppendRow(table.Row{
		"Timestamp": table.NewTimestampValue(base.Add(4 * time.Minute)),
		"GHI":       table.NewMissingValue(),
		"DNI":       table.NewFloatValue(9),
	})

	_, rep, err := cleaning.Clean(ds, []string{"GHI", "DNI", "Absent"}, cleaning.Config{ZThreshold: 1.5})
	require.NoError(t, err)
	rep.Source = "station.csv"
	rep.SourceHash = core.NewSourceHash([]byte("station bytes"))

	profiler := profiling.NewProfiler(profiling.DefaultProfilingConfig())
	prof, err := profiler.ProfileDataset(ds, nil)
	require.NoError(t, err)

	pearson, err := analysis.CorrelationMatrix(ds, []string{"GHI", "DNI"})
	require.NoError(t, err)
	spearman, err := analysis.SpearmanMatrix(ds, []string{"GHI", "DNI"})
	require.NoError(t, err)

	return ports.ReportBundle{
		Report:   rep,
		Profile:  prof,
		Pearson:  pearson,
		Spearman: spearman,
		Charts: []ports.ChartArtifact{
			{Kind: ports.ChartTimeseries, Title: "Cleaned series over time", Path: "/tmp/out/timeseries.png"},
		},
	}
}

func TestBuildMarkdownSections(t *testing.T) {
	bundle := reportFixture(t)

	md := string(buildMarkdown(bundle))

	assert.Contains(t, md, "# Data cleaning report: station.csv")
	assert.Contains(t, md, "## Target columns")
	assert.Contains(t, md, "| GHI |")
	assert.Contains(t, md, "## Warnings")
	assert.Contains(t, md, "missing_column")
	assert.Contains(t, md, "## Column profiles")
	assert.Contains(t, md, "## Correlations")
	assert.Contains(t, md, "### Pearson")
	assert.Contains(t, md, "### Spearman")
	assert.Contains(t, md, "Strongest pair")
	assert.Contains(t, md, "## Figures")
	assert.Contains(t, md, "![Cleaned series over time](timeseries.png)")
	assert.Contains(t, md, "sha256 "+bundle.Report.SourceHash.Short())
}

func TestRenderMarkdownWritesFile(t *testing.T) {
	bundle := reportFixture(t)
	path := filepath.Join(t.TempDir(), "out", "report.md")

	r := NewRenderer()
	require.NoError(t, r.RenderMarkdown(context.Background(), bundle, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# Data cleaning report"))
}

func TestRenderHTML(t *testing.T) {
	bundle := reportFixture(t)
	path := filepath.Join(t.TempDir(), "report.html")

	r := NewRenderer()
	require.NoError(t, r.RenderHTML(context.Background(), bundle, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(raw)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>station.csv</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<img")
	assert.Contains(t, page, "Target columns")
}

func TestRenderWorkbook(t *testing.T) {
	bundle := reportFixture(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	r := NewRenderer()
	require.NoError(t, r.RenderWorkbook(context.Background(), bundle, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Profiles", "Correlation", "Spearman"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Run", v)

	v, err = f.GetCellValue("Correlation", "B1")
	require.NoError(t, err)
	assert.Equal(t, "GHI", v)

	v, err = f.GetCellValue("Spearman", "B1")
	require.NoError(t, err)
	assert.Equal(t, "GHI", v)
}

func TestRenderMarkdownMinimalBundle(t *testing.T) {
	_, rep, err := cleaning.Clean(miniDataset(), []string{"GHI"}, cleaning.DefaultConfig())
	require.NoError(t, err)

	md := string(buildMarkdown(ports.ReportBundle{Report: rep}))

	assert.Contains(t, md, "# Data cleaning report")
	assert.NotContains(t, md, "## Column profiles")
	assert.NotContains(t, md, "## Correlations")
	assert.NotContains(t, md, "## Figures")
}

func miniDataset() *table.Dataset {
	ds := table.New("mini", []string{"GHI"})
	for _, g := range []float64{10, 11, 12} {
		ds.AppendRow(table.Row{"GHI": table.NewFloatValue(g)})
	}
	return ds
}
