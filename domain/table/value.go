package table

import (
	"strconv"
	"time"
)

// Value represents a typed cell with deterministic coercion
type Value struct {
	Type         ValueType  `json:"type"`
	FloatVal     *float64   `json:"float_val,omitempty"`
	IntVal       *int64     `json:"int_val,omitempty"`
	BooleanVal   *bool      `json:"boolean_val,omitempty"`
	StringVal    *string    `json:"string_val,omitempty"`
	TimestampVal *time.Time `json:"timestamp_val,omitempty"`
}

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeFloat     ValueType = "float"
	ValueTypeInteger   ValueType = "integer"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeString    ValueType = "string"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// NewFloatValue creates a float value
func NewFloatValue(f float64) Value {
	return Value{Type: ValueTypeFloat, FloatVal: &f}
}

// NewIntegerValue creates an integer value
func NewIntegerValue(i int64) Value {
	return Value{Type: ValueTypeInteger, IntVal: &i}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewStringValue creates a string value. Text columns ride along through
// cleaning untouched.
func NewStringValue(s string) Value {
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewTimestampValue creates a timestamp value
func NewTimestampValue(t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, TimestampVal: &t}
}

// NewMissingValue creates a missing value
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing reports whether the cell holds no value. The zero Value reads
// as missing so absent row keys behave like empty cells.
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing || v.Type == ""
}

// IsNumeric reports whether the cell holds a float or integer
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeFloat || v.Type == ValueTypeInteger
}

// AsFloat64 returns the numeric content of the cell. The second return is
// false for missing and non-numeric values.
func (v Value) AsFloat64() (float64, bool) {
	switch v.Type {
	case ValueTypeFloat:
		if v.FloatVal != nil {
			return *v.FloatVal, true
		}
	case ValueTypeInteger:
		if v.IntVal != nil {
			return float64(*v.IntVal), true
		}
	}
	return 0, false
}

// AsTime returns the timestamp content of the cell
func (v Value) AsTime() (time.Time, bool) {
	if v.Type == ValueTypeTimestamp && v.TimestampVal != nil {
		return *v.TimestampVal, true
	}
	return time.Time{}, false
}

// AsBool returns the boolean content of the cell
func (v Value) AsBool() (bool, bool) {
	if v.Type == ValueTypeBoolean && v.BooleanVal != nil {
		return *v.BooleanVal, true
	}
	return false, false
}

// AsString returns the string content of the cell
func (v Value) AsString() (string, bool) {
	if v.Type == ValueTypeString && v.StringVal != nil {
		return *v.StringVal, true
	}
	return "", false
}

// Equal compares two values by type and content
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case ValueTypeFloat:
		return v.FloatVal != nil && o.FloatVal != nil && *v.FloatVal == *o.FloatVal
	case ValueTypeInteger:
		return v.IntVal != nil && o.IntVal != nil && *v.IntVal == *o.IntVal
	case ValueTypeBoolean:
		return v.BooleanVal != nil && o.BooleanVal != nil && *v.BooleanVal == *o.BooleanVal
	case ValueTypeString:
		return v.StringVal != nil && o.StringVal != nil && *v.StringVal == *o.StringVal
	case ValueTypeTimestamp:
		return v.TimestampVal != nil && o.TimestampVal != nil && v.TimestampVal.Equal(*o.TimestampVal)
	case ValueTypeMissing:
		return true
	}
	return false
}

// String returns the string representation of the value
func (v Value) String() string {
	switch v.Type {
	case ValueTypeFloat:
		if v.FloatVal != nil {
			return strconv.FormatFloat(*v.FloatVal, 'g', -1, 64)
		}
	case ValueTypeInteger:
		if v.IntVal != nil {
			return strconv.FormatInt(*v.IntVal, 10)
		}
	case ValueTypeBoolean:
		if v.BooleanVal != nil {
			return strconv.FormatBool(*v.BooleanVal)
		}
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeTimestamp:
		if v.TimestampVal != nil {
			return v.TimestampVal.Format(time.RFC3339)
		}
	case ValueTypeMissing:
		return "<missing>"
	}
	return "<invalid>"
}
