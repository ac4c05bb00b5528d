// Package analysis computes cross-column relationships used by the
// report and chart layers.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"solarqc/domain/core"
	"solarqc/domain/table"
)

// Matrix is a symmetric correlation matrix over a fixed column set.
// R holds coefficients and N the pairwise-complete observation counts
// each coefficient was computed from.
type Matrix struct {
	Columns []string
	R       [][]float64
	N       [][]int
}

// At returns the coefficient for a column pair by index.
func (m *Matrix) At(i, j int) float64 {
	return m.R[i][j]
}

// IndexOf returns the matrix index of a column, or -1 if absent.
func (m *Matrix) IndexOf(column string) int {
	for i, c := range m.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Size returns the number of columns in the matrix.
func (m *Matrix) Size() int {
	return len(m.Columns)
}

// StrongestPair returns the off-diagonal pair with the largest absolute
// coefficient. ok is false when the matrix has fewer than two columns or
// no defined off-diagonal coefficient.
func (m *Matrix) StrongestPair() (a, b string, r float64, ok bool) {
	best := 0.0
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			if m.N[i][j] < 2 {
				continue
			}
			if math.Abs(m.R[i][j]) >= math.Abs(best) {
				a, b, r = m.Columns[i], m.Columns[j], m.R[i][j]
				best = r
				ok = true
			}
		}
	}
	return a, b, r, ok
}

// CorrelationMatrix computes Pearson coefficients for every pair of the
// given numeric columns. Each pair uses only rows where both cells hold a
// numeric value, so missing data shrinks N rather than poisoning R.
// Undefined coefficients (fewer than two shared observations, or a
// zero-variance column) are reported as 0.
func CorrelationMatrix(ds *table.Dataset, columns []string) (*Matrix, error) {
	return matrixOf(ds, columns, false)
}

// SpearmanMatrix computes rank correlations for every pair of the given
// numeric columns. Values are replaced by their average ranks before the
// Pearson computation, which makes the coefficient robust to the skewed,
// spike-heavy distributions irradiance columns tend to have.
func SpearmanMatrix(ds *table.Dataset, columns []string) (*Matrix, error) {
	return matrixOf(ds, columns, true)
}

func matrixOf(ds *table.Dataset, columns []string, ranked bool) (*Matrix, error) {
	if ds == nil || ds.RowCount() == 0 {
		return nil, core.ErrEmptyDataset
	}

	present := make([]string, 0, len(columns))
	for _, col := range columns {
		if ds.HasColumn(col) {
			present = append(present, col)
		}
	}
	if len(present) == 0 {
		return nil, core.ErrNoTargetColumns
	}

	n := len(present)
	m := &Matrix{
		Columns: present,
		R:       make([][]float64, n),
		N:       make([][]int, n),
	}
	for i := range m.R {
		m.R[i] = make([]float64, n)
		m.N[i] = make([]int, n)
	}

	cells := make([][]float64, n)
	have := make([][]bool, n)
	rows := ds.RowCount()
	for i, col := range present {
		cells[i] = make([]float64, rows)
		have[i] = make([]bool, rows)
		for r, row := range ds.Rows {
			if f, ok := row[col].AsFloat64(); ok {
				cells[i][r] = f
				have[i][r] = true
			}
		}
	}

	for i := 0; i < n; i++ {
		m.R[i][i] = 1
		m.N[i][i] = count(have[i])
		for j := i + 1; j < n; j++ {
			xs, ys := pairwise(cells[i], cells[j], have[i], have[j])
			m.N[i][j] = len(xs)
			m.N[j][i] = len(xs)
			if len(xs) < 2 {
				continue
			}
			if ranked {
				xs = ranks(xs)
				ys = ranks(ys)
			}
			r := stat.Correlation(xs, ys, nil)
			if math.IsNaN(r) {
				r = 0
			}
			m.R[i][j] = r
			m.R[j][i] = r
		}
	}
	return m, nil
}

// pairwise extracts the rows where both columns hold a value.
func pairwise(x, y []float64, haveX, haveY []bool) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for r := range x {
		if haveX[r] && haveY[r] {
			xs = append(xs, x[r])
			ys = append(ys, y[r])
		}
	}
	return xs, ys
}

// ranks maps values to 1-based ranks, averaging ties.
func ranks(data []float64) []float64 {
	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	out := make([]float64, len(data))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && data[idx[j+1]] == data[idx[i]] {
			j++
		}
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}

func count(flags []bool) int {
	total := 0
	for _, f := range flags {
		if f {
			total++
		}
	}
	return total
}
