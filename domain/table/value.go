package table

import (
	"strconv"
	"time"
)

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// Value represents a typed cell value with an explicit missing marker
type Value struct {
	Type         ValueType  `json:"type"`
	StringVal    *string    `json:"string_val,omitempty"`
	NumericVal   *float64   `json:"numeric_val,omitempty"`
	BooleanVal   *bool      `json:"boolean_val,omitempty"`
	TimestampVal *time.Time `json:"timestamp_val,omitempty"`
}

// NewStringValue creates a string value; empty strings are treated as missing
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewBooleanValue creates a boolean value
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewTimestampValue creates a timestamp value
func NewTimestampValue(t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, TimestampVal: &t}
}

// NewMissingValue creates an explicit missing marker
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing}
}

// IsMissing reports whether the cell carries no value
func (v Value) IsMissing() bool {
	return v.Type == ValueTypeMissing
}

// AsFloat returns the numeric interpretation of the value.
// Booleans coerce to 0/1; strings and timestamps do not coerce.
func (v Value) AsFloat() (float64, bool) {
	switch v.Type {
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return *v.NumericVal, true
		}
	case ValueTypeBoolean:
		if v.BooleanVal != nil {
			if *v.BooleanVal {
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// AsTime returns the timestamp interpretation of the value
func (v Value) AsTime() (time.Time, bool) {
	if v.Type == ValueTypeTimestamp && v.TimestampVal != nil {
		return *v.TimestampVal, true
	}
	return time.Time{}, false
}

// Display returns the canonical string form used for frequency counting,
// duplicate detection and sample rendering. Missing cells render empty.
func (v Value) Display() string {
	switch v.Type {
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'g', -1, 64)
		}
	case ValueTypeBoolean:
		if v.BooleanVal != nil {
			return strconv.FormatBool(*v.BooleanVal)
		}
	case ValueTypeTimestamp:
		if v.TimestampVal != nil {
			return v.TimestampVal.Format(time.RFC3339)
		}
	}
	return ""
}
