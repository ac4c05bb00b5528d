// Package cleaning repairs sensor tables: z-score outlier detection on the
// raw values, median imputation of missing cells, then row drops for
// whatever remains missing or flagged.
package cleaning

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"solarqc/domain/core"
	"solarqc/domain/table"
)

// columnPass holds the imputation work left for one target column
type columnPass struct {
	name   string
	median float64
}

// Clean runs the full pipeline over the dataset and returns a new dataset
// plus the diagnostic report. Z-scores are computed against each column's
// pre-imputation mean and standard deviation (population form) over
// non-missing values; missing cells are then imputed with the column
// median; rows still missing a target value are dropped, and finally rows
// flagged as outliers are dropped. The input dataset is never mutated.
func Clean(ds *table.Dataset, targets []string, cfg Config) (*table.Dataset, *Report, error) {
	if ds.RowCount() == 0 {
		return nil, nil, core.ErrEmptyDataset
	}
	if len(targets) == 0 {
		return nil, nil, core.ErrNoTargetColumns
	}
	if cfg.ZThreshold <= 0 {
		return nil, nil, fmt.Errorf("%w: got %v", core.ErrInvalidThreshold, cfg.ZThreshold)
	}

	report := &Report{
		RunID:         core.NewRunID(),
		CreatedAt:     core.Now(),
		Source:        ds.Name,
		Threshold:     cfg.ZThreshold,
		TargetColumns: dedupe(targets),
		RowsIn:        ds.RowCount(),
	}

	n := ds.RowCount()
	outlier := make([]bool, n)
	var passes []columnPass
	var present []string

	for _, col := range report.TargetColumns {
		if !ds.HasColumn(col) {
			report.warn(WarningMissingColumn, col, "not in dataset")
			continue
		}
		present = append(present, col)

		cr := ColumnReport{Column: col}
		vals := ds.ColumnValues(col)
		sample := make([]float64, 0, n)
		positions := make([]int, 0, n)
		numeric := true
		for i, v := range vals {
			if v.IsMissing() {
				cr.Missing++
				continue
			}
			f, ok := v.AsFloat64()
			if !ok {
				numeric = false
				continue
			}
			sample = append(sample, f)
			positions = append(positions, i)
		}
		cr.MissingPct = 100 * float64(cr.Missing) / float64(n)

		switch {
		case cr.Missing == n:
			report.warn(WarningEmptyColumn, col, "all values missing")
		case !numeric:
			report.warn(WarningNonNumericColumn, col, string(ds.ColumnType(col))+" column, z-scores and imputation skipped")
		default:
			mean, sd, median, err := columnStats(sample)
			if err != nil {
				report.warn(WarningDegenerateColumn, col, err.Error())
				break
			}
			cr.Mean, cr.StdDev, cr.Median = mean, sd, median
			if sd == 0 {
				report.warn(WarningDegenerateColumn, col, "zero variance, no outliers")
			} else {
				for k, f := range sample {
					if math.Abs((f-mean)/sd) > cfg.ZThreshold {
						outlier[positions[k]] = true
						cr.Outliers++
					}
				}
			}
			if cr.Missing > 0 {
				passes = append(passes, columnPass{name: col, median: median})
				cr.Imputed = cr.Missing
			}
		}
		report.Columns = append(report.Columns, cr)
	}

	// Impute medians copy-on-write so the input rows stay untouched.
	rows := make([]table.Row, n)
	copy(rows, ds.Rows)
	for _, p := range passes {
		for i, row := range rows {
			if row[p.name].IsMissing() {
				clone := table.CloneRow(row)
				clone[p.name] = table.NewFloatValue(p.median)
				rows[i] = clone
			}
		}
	}

	// Drop rows still missing a target value, then drop outlier rows.
	kept := make([]table.Row, 0, n)
	for i, row := range rows {
		if missingAny(row, present) {
			report.RowsDroppedMissing++
			continue
		}
		if outlier[i] {
			report.RowsDroppedOutlier++
			continue
		}
		kept = append(kept, row)
	}

	report.RowsOut = len(kept)
	return ds.WithRows(kept), report, nil
}

func columnStats(sample []float64) (mean, sd, median float64, err error) {
	mean, err = stats.Mean(sample)
	if err != nil {
		return 0, 0, 0, err
	}
	sd, err = stats.StandardDeviation(sample)
	if err != nil {
		return 0, 0, 0, err
	}
	median, err = stats.Median(sample)
	if err != nil {
		return 0, 0, 0, err
	}
	return mean, sd, median, nil
}

func missingAny(row table.Row, columns []string) bool {
	for _, col := range columns {
		if row[col].IsMissing() {
			return true
		}
	}
	return false
}

func dedupe(columns []string) []string {
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
