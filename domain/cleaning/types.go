package cleaning

import (
	"solarqc/domain/core"
)

// Config holds the cleaning pipeline tunables
type Config struct {
	// ZThreshold is the absolute z-score above which a value flags its row
	// as an outlier.
	ZThreshold float64 `json:"z_threshold"`
}

// DefaultConfig returns the standard cleaning configuration
func DefaultConfig() Config {
	return Config{ZThreshold: 3.0}
}

// WarningKind classifies non-fatal conditions recorded in the report
type WarningKind string

const (
	// WarningMissingColumn marks a target column absent from the dataset.
	WarningMissingColumn WarningKind = "missing_column"
	// WarningDegenerateColumn marks a zero-variance column whose z-scores
	// are undefined; it contributes no outliers.
	WarningDegenerateColumn WarningKind = "degenerate_column"
	// WarningEmptyColumn marks a column with no non-missing values.
	WarningEmptyColumn WarningKind = "empty_column"
	// WarningNonNumericColumn marks a boolean or timestamp target column,
	// which is skipped for z-scores and imputation.
	WarningNonNumericColumn WarningKind = "non_numeric_column"
)

// Warning records a skipped or degraded step for one column
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Column string      `json:"column"`
	Detail string      `json:"detail"`
}

// ColumnReport carries the pre-cleaning diagnostics for one present target
// column. Mean, StdDev and Median are the statistics the z-scores and
// imputation used, recorded so cleaned output can be checked against them.
type ColumnReport struct {
	Column     string  `json:"column"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missing_pct"`
	Outliers   int     `json:"outliers"`
	Imputed    int     `json:"imputed"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Median     float64 `json:"median"`
}

// Report summarizes one cleaning pass
type Report struct {
	RunID         core.RunID      `json:"run_id"`
	CreatedAt     core.Timestamp  `json:"created_at"`
	Source        string          `json:"source,omitempty"`
	SourceHash    core.SourceHash `json:"source_hash,omitempty"`
	Threshold     float64         `json:"threshold"`
	TargetColumns []string        `json:"target_columns"`
	Columns       []ColumnReport  `json:"columns"`
	Warnings      []Warning       `json:"warnings,omitempty"`

	RowsIn             int `json:"rows_in"`
	RowsOut            int `json:"rows_out"`
	RowsDroppedMissing int `json:"rows_dropped_missing"`
	RowsDroppedOutlier int `json:"rows_dropped_outlier"`
}

func (r *Report) warn(kind WarningKind, column, detail string) {
	r.Warnings = append(r.Warnings, Warning{Kind: kind, Column: column, Detail: detail})
}

func (r *Report) columnsWithWarning(kind WarningKind) []string {
	var out []string
	for _, w := range r.Warnings {
		if w.Kind == kind {
			out = append(out, w.Column)
		}
	}
	return out
}

// MissingColumns lists requested columns that were absent from the dataset
func (r *Report) MissingColumns() []string {
	return r.columnsWithWarning(WarningMissingColumn)
}

// DegenerateColumns lists zero-variance columns
func (r *Report) DegenerateColumns() []string {
	return r.columnsWithWarning(WarningDegenerateColumn)
}

// EmptyColumns lists entirely-missing columns
func (r *Report) EmptyColumns() []string {
	return r.columnsWithWarning(WarningEmptyColumn)
}

// ColumnReportFor returns the report entry for one column, nil when the
// column was not present in the dataset.
func (r *Report) ColumnReportFor(name string) *ColumnReport {
	for i := range r.Columns {
		if r.Columns[i].Column == name {
			return &r.Columns[i]
		}
	}
	return nil
}

// TotalOutliers sums outlier counts across target columns
func (r *Report) TotalOutliers() int {
	total := 0
	for _, c := range r.Columns {
		total += c.Outliers
	}
	return total
}

// TotalMissing sums pre-clean missing counts across target columns
func (r *Report) TotalMissing() int {
	total := 0
	for _, c := range r.Columns {
		total += c.Missing
	}
	return total
}
