package table

import (
	"time"
)

// Row maps column names to typed cell values
type Row map[string]Value

// Dataset is an ordered table of rows over a fixed column set. The column
// set and order never change after construction; cleaning derives new
// datasets instead of mutating rows in place.
type Dataset struct {
	Name       string   `json:"name"`
	Columns    []string `json:"columns"`
	Rows       []Row    `json:"rows"`
	TimeColumn string   `json:"time_column,omitempty"`
	TimeLayout string   `json:"time_layout,omitempty"`
}

// New creates an empty dataset with the given column order
func New(name string, columns []string) *Dataset {
	return &Dataset{
		Name:    name,
		Columns: append([]string(nil), columns...),
	}
}

// RowCount returns the number of rows
func (d *Dataset) RowCount() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// ColumnCount returns the number of columns
func (d *Dataset) ColumnCount() int {
	if d == nil {
		return 0
	}
	return len(d.Columns)
}

// HasColumn reports whether the column exists
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of a column, -1 when absent
func (d *Dataset) ColumnIndex(name string) int {
	if d == nil {
		return -1
	}
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AppendRow adds a row. Cells for columns not present in the row read as
// missing.
func (d *Dataset) AppendRow(r Row) {
	d.Rows = append(d.Rows, r)
}

// ColumnValues returns the cells of one column in row order. Absent cells
// come back as missing values, so the slice length always equals RowCount.
func (d *Dataset) ColumnValues(name string) []Value {
	vals := make([]Value, d.RowCount())
	for i, row := range d.Rows {
		v, ok := row[name]
		if !ok {
			v = NewMissingValue()
		}
		vals[i] = v
	}
	return vals
}

// NumericColumn returns the non-missing numeric cells of a column along
// with their row positions.
func (d *Dataset) NumericColumn(name string) ([]float64, []int) {
	var vals []float64
	var positions []int
	for i, row := range d.Rows {
		if f, ok := row[name].AsFloat64(); ok {
			vals = append(vals, f)
			positions = append(positions, i)
		}
	}
	return vals, positions
}

// Times returns the non-missing timestamps of the time column along with
// their row positions.
func (d *Dataset) Times() ([]time.Time, []int) {
	var ts []time.Time
	var positions []int
	if d.TimeColumn == "" {
		return ts, positions
	}
	for i, row := range d.Rows {
		if t, ok := row[d.TimeColumn].AsTime(); ok {
			ts = append(ts, t)
			positions = append(positions, i)
		}
	}
	return ts, positions
}

// MissingCount counts missing cells in a column
func (d *Dataset) MissingCount(name string) int {
	count := 0
	for _, row := range d.Rows {
		v, ok := row[name]
		if !ok || v.IsMissing() {
			count++
		}
	}
	return count
}

// ColumnType infers the storage type of a column from its non-missing
// cells. Mixed integer/float columns read as float; a column with no
// values reads as missing.
func (d *Dataset) ColumnType(name string) ValueType {
	var sawInt, sawBool, sawTime, sawString bool
	for _, row := range d.Rows {
		v, ok := row[name]
		if !ok || v.IsMissing() {
			continue
		}
		switch v.Type {
		case ValueTypeFloat:
			return ValueTypeFloat
		case ValueTypeInteger:
			sawInt = true
		case ValueTypeBoolean:
			sawBool = true
		case ValueTypeTimestamp:
			sawTime = true
		case ValueTypeString:
			sawString = true
		}
	}
	switch {
	case sawInt:
		return ValueTypeInteger
	case sawBool:
		return ValueTypeBoolean
	case sawTime:
		return ValueTypeTimestamp
	case sawString:
		return ValueTypeString
	}
	return ValueTypeMissing
}

// WithRows derives a dataset sharing this dataset's columns and time
// metadata over a different row slice.
func (d *Dataset) WithRows(rows []Row) *Dataset {
	return &Dataset{
		Name:       d.Name,
		Columns:    append([]string(nil), d.Columns...),
		Rows:       rows,
		TimeColumn: d.TimeColumn,
		TimeLayout: d.TimeLayout,
	}
}

// CloneRow copies a row so imputation can replace cells without touching
// the source dataset.
func CloneRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
