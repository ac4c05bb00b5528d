package profiling

import (
	"time"

	"solarqc/domain/core"
	"solarqc/domain/table"
)

// Profiler computes per-column statistical profiles of a dataset
type Profiler struct {
	cfg ProfilingConfig
}

// NewProfiler creates a profiler with the given configuration
func NewProfiler(cfg ProfilingConfig) *Profiler {
	return &Profiler{cfg: cfg}
}

// ProfileDataset analyzes the named columns, or every column when the list
// is nil. Requested columns absent from the dataset are skipped.
func (p *Profiler) ProfileDataset(ds *table.Dataset, columns []string) (*ProfilingResult, error) {
	if ds.RowCount() == 0 {
		return nil, core.ErrEmptyDataset
	}
	if columns == nil {
		columns = ds.Columns
	}

	result := &ProfilingResult{
		Dataset:     ds.Name,
		Rows:        ds.RowCount(),
		GeneratedAt: core.Now(),
	}
	for _, col := range columns {
		if !ds.HasColumn(col) {
			continue
		}
		result.Profiles = append(result.Profiles, p.profileColumn(ds, col))
	}
	return result, nil
}

func (p *Profiler) profileColumn(ds *table.Dataset, name string) FieldProfile {
	profile := FieldProfile{
		Column:  name,
		Type:    ds.ColumnType(name),
		Missing: ds.MissingCount(name),
	}
	n := ds.RowCount()
	profile.Count = n - profile.Missing
	profile.MissingRate = float64(profile.Missing) / float64(n)

	switch profile.Type {
	case table.ValueTypeFloat, table.ValueTypeInteger:
		sample, _ := ds.NumericColumn(name)
		if len(sample) == 0 {
			break
		}
		summary, shape, err := analyzeDistribution(sample, p.cfg)
		if err != nil {
			break
		}
		profile.Summary = summary
		profile.Shape = shape
		profile.IQROutliers = iqrOutliers(sample, summary.Q25, summary.Q75)
		for _, v := range sample {
			if v == 0 {
				profile.ZeroCount++
			}
			if v < 0 {
				profile.NegativeCount++
			}
		}
	case table.ValueTypeTimestamp:
		ts := timestampRange(ds, name)
		if len(ts) > 0 {
			first, last := ts[0], ts[0]
			for _, t := range ts[1:] {
				if t.Before(first) {
					first = t
				}
				if t.After(last) {
					last = t
				}
			}
			profile.First, profile.Last = &first, &last
		}
	}
	return profile
}

func timestampRange(ds *table.Dataset, name string) []time.Time {
	var out []time.Time
	for _, row := range ds.Rows {
		if t, ok := row[name].AsTime(); ok {
			out = append(out, t)
		}
	}
	return out
}
