package tabfile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"solarqc/domain/table"
)

// CoercionConfig defines the vote thresholds a column must clear before
// its cells are stored under a type
type CoercionConfig struct {
	NumericThreshold   float64 `json:"numeric_threshold"`   // % of values that must parse as numbers
	BooleanThreshold   float64 `json:"boolean_threshold"`   // % of values that must parse as booleans
	TimestampThreshold float64 `json:"timestamp_threshold"` // % of values that must parse as timestamps
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold:   0.8,
		BooleanThreshold:   0.9,
		TimestampThreshold: 0.8,
	}
}

// missingTokens are the cell spellings that read as absent values,
// matched case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"-":    {},
}

// timestampLayouts are tried in order during detection. Station loggers
// emit minute-resolution local times, so the dash layouts come first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// IsMissingToken reports whether a raw cell spells an absent value
func IsMissingToken(cell string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

// Coercer handles deterministic cell coercion with fixed rules
type Coercer struct {
	config CoercionConfig
}

// NewCoercer creates a coercer with the given config
func NewCoercer(config CoercionConfig) *Coercer {
	return &Coercer{config: config}
}

// ColumnAnalysis summarizes how a sample of cells parses under each
// candidate type
type ColumnAnalysis struct {
	TotalCount     int
	ValidCount     int
	NumericCount   int
	BooleanCount   int
	TimestampCount int
	IntegerOnly    bool
	Layout         string
	Recommended    table.ValueType
}

// NumericRatio is the share of non-missing cells that parse as numbers.
func (a ColumnAnalysis) NumericRatio() float64 {
	return ratio(a.NumericCount, a.ValidCount)
}

// BooleanRatio is the share of non-missing cells that parse as booleans.
func (a ColumnAnalysis) BooleanRatio() float64 {
	return ratio(a.BooleanCount, a.ValidCount)
}

// TimestampRatio is the share of non-missing cells that parse as timestamps.
func (a ColumnAnalysis) TimestampRatio() float64 {
	return ratio(a.TimestampCount, a.ValidCount)
}

func ratio(count, valid int) float64 {
	if valid == 0 {
		return 0
	}
	return float64(count) / float64(valid)
}

// AnalyzeColumn counts how a sample of cells parses under each type and
// recommends a storage type. Numeric wins over boolean so 0/1 flag
// columns stay numeric and survive the cleaning math. A column whose
// sample is entirely missing recommends the missing type.
func (c *Coercer) AnalyzeColumn(cells []string) ColumnAnalysis {
	analysis := ColumnAnalysis{
		TotalCount:  len(cells),
		IntegerOnly: true,
	}

	for _, cell := range cells {
		if IsMissingToken(cell) {
			continue
		}
		analysis.ValidCount++

		if f, ok := parseNumeric(cell); ok {
			analysis.NumericCount++
			if f != math.Trunc(f) {
				analysis.IntegerOnly = false
			}
		}
		if _, ok := parseBoolean(cell); ok {
			analysis.BooleanCount++
		}
		if _, layout, ok := parseTimestamp(cell, analysis.Layout); ok {
			analysis.TimestampCount++
			if analysis.Layout == "" {
				analysis.Layout = layout
			}
		}
	}

	if analysis.NumericCount == 0 {
		analysis.IntegerOnly = false
	}
	analysis.Recommended = c.recommend(analysis)
	return analysis
}

// CoerceCell converts one raw cell into a typed value under the
// column's decided type. Cells that fail the column's parse read as
// missing so a stray sensor glitch degrades to a gap instead of
// poisoning the column.
func (c *Coercer) CoerceCell(cell string, colType table.ValueType, layout string) table.Value {
	if IsMissingToken(cell) {
		return table.NewMissingValue()
	}

	switch colType {
	case table.ValueTypeFloat:
		if f, ok := parseNumeric(cell); ok {
			return table.NewFloatValue(f)
		}
	case table.ValueTypeInteger:
		if f, ok := parseNumeric(cell); ok {
			if f == math.Trunc(f) {
				return table.NewIntegerValue(int64(f))
			}
			return table.NewFloatValue(f)
		}
	case table.ValueTypeBoolean:
		if b, ok := parseBoolean(cell); ok {
			return table.NewBooleanValue(b)
		}
	case table.ValueTypeTimestamp:
		if t, _, ok := parseTimestamp(cell, layout); ok {
			return table.NewTimestampValue(t)
		}
	case table.ValueTypeString:
		return table.NewStringValue(strings.TrimSpace(cell))
	}
	return table.NewMissingValue()
}

// recommend chooses the best type, most restrictive first
func (c *Coercer) recommend(analysis ColumnAnalysis) table.ValueType {
	if analysis.ValidCount == 0 {
		return table.ValueTypeMissing
	}
	if analysis.NumericRatio() >= c.config.NumericThreshold {
		if analysis.IntegerOnly {
			return table.ValueTypeInteger
		}
		return table.ValueTypeFloat
	}
	if analysis.BooleanRatio() >= c.config.BooleanThreshold {
		return table.ValueTypeBoolean
	}
	if analysis.TimestampRatio() >= c.config.TimestampThreshold {
		return table.ValueTypeTimestamp
	}
	return table.ValueTypeString
}

// parseNumeric attempts a strict float parse. Thousands separators are
// tolerated, infinity and NaN are not.
func parseNumeric(cell string) (float64, bool) {
	cleanVal := strings.TrimSpace(cell)
	if cleanVal == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(cleanVal, 64); err == nil {
		if !math.IsInf(val, 0) && !math.IsNaN(val) {
			return val, true
		}
		return 0, false
	}

	// Retry with thousands separators stripped: 1,234.5 style
	if strings.Contains(cleanVal, ",") {
		stripped := strings.ReplaceAll(cleanVal, ",", "")
		if val, err := strconv.ParseFloat(stripped, 64); err == nil {
			if !math.IsInf(val, 0) && !math.IsNaN(val) {
				return val, true
			}
		}
	}
	return 0, false
}

// parseBoolean accepts the common textual spellings. Bare 0/1 is left
// to the numeric parser so flag columns keep their arithmetic meaning.
func parseBoolean(cell string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "yes", "y", "on":
		return true, true
	case "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

// parseTimestamp tries the preferred layout first, then the full list.
// It returns the layout that matched so later cells skip the scan.
func parseTimestamp(cell string, preferred string) (time.Time, string, bool) {
	cleanVal := strings.TrimSpace(cell)
	if cleanVal == "" {
		return time.Time{}, "", false
	}

	if preferred != "" {
		if t, err := time.Parse(preferred, cleanVal); err == nil {
			return t, preferred, true
		}
	}
	for _, layout := range timestampLayouts {
		if layout == preferred {
			continue
		}
		if t, err := time.Parse(layout, cleanVal); err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}
