package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3.0, cfg.Cleaning.ZThreshold)
	assert.Equal(t, []string{"GHI", "DNI", "DHI"}, cfg.Data.TargetColumns)
	assert.Equal(t, "", cfg.Data.TimestampColumn)
	assert.Equal(t, 1000, cfg.Data.SampleRows)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 40, cfg.Charts.HistogramBins)
	assert.True(t, cfg.Output.ReportHTML)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATA_FILE", "data/togo-dapaong_qc.csv")
	t.Setenv("TARGET_COLUMNS", "GHI, DNI ,Tamb")
	t.Setenv("Z_THRESHOLD", "2.5")
	t.Setenv("OUTPUT_DIR", "artifacts")
	t.Setenv("REPORT_WORKBOOK", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/togo-dapaong_qc.csv", cfg.Data.File)
	assert.Equal(t, []string{"GHI", "DNI", "Tamb"}, cfg.Data.TargetColumns)
	assert.Equal(t, 2.5, cfg.Cleaning.ZThreshold)
	assert.Equal(t, "artifacts", cfg.Output.Dir)
	assert.False(t, cfg.Output.Workbook)
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("Z_THRESHOLD", "-3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Z_THRESHOLD")
}

func TestLoadIgnoresUnparseableOverrides(t *testing.T) {
	t.Setenv("Z_THRESHOLD", "not-a-number")
	t.Setenv("HISTOGRAM_BINS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Cleaning.ZThreshold)
	assert.Equal(t, 40, cfg.Charts.HistogramBins)
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "GHI,DNI,DHI", []string{"GHI", "DNI", "DHI"}},
		{"spaces", " GHI , DNI ", []string{"GHI", "DNI"}},
		{"empty entries", "GHI,,DNI,", []string{"GHI", "DNI"}},
		{"blank", "   ", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, splitColumns(test.input))
		})
	}
}
