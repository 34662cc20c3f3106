package loader

import (
	"math"
	"strconv"
	"strings"
	"time"

	"tabprof/domain/table"
)

// missingMarkers are raw cell contents treated as missing after trimming
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// timestampLayouts are tried in order when parsing date cells
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// ParseCell deterministically coerces a raw cell string to a typed value.
// Numeric parsing is tried first (most restrictive), then boolean, then
// timestamp; everything else stays a string.
func ParseCell(raw string) table.Value {
	trimmed := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(trimmed)] {
		return table.NewMissingValue()
	}
	if v, ok := tryParseNumeric(trimmed); ok {
		return v
	}
	if v, ok := tryParseBoolean(trimmed); ok {
		return v
	}
	if v, ok := tryParseTimestamp(trimmed); ok {
		return v
	}
	return table.NewStringValue(trimmed)
}

// tryParseNumeric handles plain decimals, thousands separators, currency
// prefixes, percent suffixes and parenthesized negatives.
func tryParseNumeric(s string) (table.Value, bool) {
	if s == "" {
		return table.Value{}, false
	}

	clean := s
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}
	for _, symbol := range []string{"$", "€", "£", "¥"} {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.ReplaceAll(clean, "%", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)
	if negative {
		clean = "-" + clean
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return table.Value{}, false
	}
	return table.NewNumericValue(val), true
}

func tryParseBoolean(s string) (table.Value, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y":
		return table.NewBooleanValue(true), true
	case "false", "no", "n":
		return table.NewBooleanValue(false), true
	}
	return table.Value{}, false
}

func tryParseTimestamp(s string) (table.Value, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return table.NewTimestampValue(t), true
		}
	}
	return table.Value{}, false
}
