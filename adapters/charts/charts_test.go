package charts

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solarqc/domain/table"
	"solarqc/internal/analysis"
	"solarqc/internal/config"
	"solarqc/ports"
)

func chartFixture() *table.Dataset {
	ds := table.New("station", []string{"Timestamp", "GHI", "DNI", "Tamb", "RH", "WS", "WD"})
	ds.TimeColumn = "Timestamp"
	ds.TimeLayout = "2006-01-02 15:04"
	base := time.Date(2021, 8, 9, 6, 0, 0, 0, time.UTC)
	ghi := []float64{5, 120, 340, 560, 610, 580, 420, 210}
	for i, g := range ghi {
		ds.AppendRow(table.Row{
			"Timestamp": table.NewTimestampValue(base.Add(time.Duration(i) * time.Hour)),
			"GHI":       table.NewFloatValue(g),
			"DNI":       table.NewFloatValue(g * 0.8),
			"Tamb":      table.NewFloatValue(22 + float64(i)),
			"RH":        table.NewFloatValue(90 - float64(i)*3),
			"WS":        table.NewFloatValue(float64(i) * 1.1),
			"WD":        table.NewFloatValue(float64(i) * 45),
		})
	}
	return ds
}

func testChartConfig() config.ChartConfig {
	return config.ChartConfig{WidthInches: 6, HeightInches: 4, HistogramBins: 10}
}

func TestRenderAllWritesFigures(t *testing.T) {
	ds := chartFixture()
	m, err := analysis.CorrelationMatrix(ds, []string{"GHI", "DNI", "Tamb"})
	require.NoError(t, err)

	r := NewRenderer(testChartConfig())
	artifacts, err := r.RenderAll(context.Background(), ports.ChartRequest{
		Raw:     ds,
		Cleaned: ds,
		Columns: []string{"GHI", "DNI"},
		Matrix:  m,
		OutDir:  t.TempDir(),
	})
	require.NoError(t, err)
	require.Len(t, artifacts, 7)

	kinds := map[ports.ChartKind]int{}
	for _, a := range artifacts {
		kinds[a.Kind]++
		info, statErr := os.Stat(a.Path)
		require.NoError(t, statErr, "artifact %s missing", a.Kind)
		assert.Greater(t, info.Size(), int64(0), "artifact %s empty", a.Kind)
	}
	assert.Equal(t, 1, kinds[ports.ChartTimeseries])
	assert.Equal(t, 2, kinds[ports.ChartHistogram])
	assert.Equal(t, 1, kinds[ports.ChartScatter])
	assert.Equal(t, 1, kinds[ports.ChartHeatmap])
	assert.Equal(t, 1, kinds[ports.ChartWindRose])
	assert.Equal(t, 1, kinds[ports.ChartBubble])
}

func TestRenderAllSkipsUnavailableFigures(t *testing.T) {
	ds := table.New("minimal", []string{"Timestamp", "GHI"})
	ds.TimeColumn = "Timestamp"
	base := time.Date(2021, 8, 9, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		ds.AppendRow(table.Row{
			"Timestamp": table.NewTimestampValue(base.Add(time.Duration(i) * time.Hour)),
			"GHI":       table.NewFloatValue(float64(100 * i)),
		})
	}

	r := NewRenderer(testChartConfig())
	artifacts, err := r.RenderAll(context.Background(), ports.ChartRequest{
		Raw:     ds,
		Cleaned: ds,
		Columns: []string{"GHI"},
		OutDir:  t.TempDir(),
	})
	require.NoError(t, err)

	kinds := make([]ports.ChartKind, 0, len(artifacts))
	for _, a := range artifacts {
		kinds = append(kinds, a.Kind)
	}
	assert.ElementsMatch(t, []ports.ChartKind{ports.ChartTimeseries, ports.ChartHistogram}, kinds)
}

func TestRenderAllNothingApplicable(t *testing.T) {
	r := NewRenderer(testChartConfig())

	artifacts, err := r.RenderAll(context.Background(), ports.ChartRequest{OutDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestRenderAllContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRenderer(testChartConfig())
	_, err := r.RenderAll(ctx, ports.ChartRequest{
		Raw:     chartFixture(),
		Cleaned: chartFixture(),
		Columns: []string{"GHI"},
		OutDir:  t.TempDir(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSectorOf(t *testing.T) {
	tests := []struct {
		degrees float64
		want    int
	}{
		{0, 0},
		{11.2, 0},
		{11.3, 1},
		{45, 2},
		{180, 8},
		{350, 0},
		{-90, 12},
		{720, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sectorOf(tt.degrees), "degrees %v", tt.degrees)
	}
}

func TestSpeedClassOf(t *testing.T) {
	assert.Equal(t, 0, speedClassOf(0))
	assert.Equal(t, 0, speedClassOf(1.9))
	assert.Equal(t, 1, speedClassOf(2))
	assert.Equal(t, 2, speedClassOf(5))
	assert.Equal(t, 3, speedClassOf(6))
	assert.Equal(t, 3, speedClassOf(30))
}

func TestNumericTargetsFiltersColumns(t *testing.T) {
	ds := chartFixture()

	got := numericTargets(ds, []string{"GHI", "Timestamp", "Nope", "WS"})
	assert.Equal(t, []string{"GHI", "WS"}, got)
}

func TestFindColumnCaseInsensitive(t *testing.T) {
	ds := chartFixture()

	assert.Equal(t, "WS", findColumn(ds, "ws"))
	assert.Equal(t, "", findColumn(ds, "gusts"))
}
