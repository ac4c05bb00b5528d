package profiling

import (
	"time"

	"solarqc/domain/core"
	"solarqc/domain/table"
)

// SummaryStats holds the basic descriptive statistics of a numeric column
type SummaryStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// DistributionShape describes higher moments and a normality approximation
type DistributionShape struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}

// FieldProfile is the per-column profiling output. Numeric columns carry
// the full summary; boolean and timestamp columns only the counts (plus
// the observed time range for timestamps).
type FieldProfile struct {
	Column      string            `json:"column"`
	Type        table.ValueType   `json:"type"`
	Count       int               `json:"count"`
	Missing     int               `json:"missing"`
	MissingRate float64           `json:"missing_rate"`
	Summary     SummaryStats      `json:"summary"`
	Shape       DistributionShape `json:"shape"`

	ZeroCount     int `json:"zero_count"`
	NegativeCount int `json:"negative_count"`
	IQROutliers   int `json:"iqr_outliers"`

	First *time.Time `json:"first,omitempty"`
	Last  *time.Time `json:"last,omitempty"`
}

// ProfilingConfig controls profiling behavior
type ProfilingConfig struct {
	// MinSampleForNormality is the smallest sample the normality
	// approximation runs on.
	MinSampleForNormality int `json:"min_sample_for_normality"`
	// NormalityAlpha is the p-value cutoff for calling a column normal.
	NormalityAlpha float64 `json:"normality_alpha"`
}

// DefaultProfilingConfig returns sensible profiling defaults
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		MinSampleForNormality: 8,
		NormalityAlpha:        0.05,
	}
}

// ProfilingResult is the dataset-level profiling output
type ProfilingResult struct {
	Dataset     string         `json:"dataset"`
	Rows        int            `json:"rows"`
	Profiles    []FieldProfile `json:"profiles"`
	GeneratedAt core.Timestamp `json:"generated_at"`
}

// ProfileFor returns the profile of one column, nil when absent
func (r *ProfilingResult) ProfileFor(name string) *FieldProfile {
	for i := range r.Profiles {
		if r.Profiles[i].Column == name {
			return &r.Profiles[i]
		}
	}
	return nil
}

// NumericColumns lists the profiled columns that carry full summaries
func (r *ProfilingResult) NumericColumns() []string {
	var out []string
	for _, p := range r.Profiles {
		if p.Type == table.ValueTypeFloat || p.Type == table.ValueTypeInteger {
			out = append(out, p.Column)
		}
	}
	return out
}
