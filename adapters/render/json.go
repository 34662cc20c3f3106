package render

import (
	"encoding/json"
	"io"

	"tabprof/domain/report"
	"tabprof/internal/errors"
)

// Version is the tool version stamped into JSON exports
const Version = "0.2.0"

// SchemaVersion tracks the JSON document shape, bumped on breaking changes
const SchemaVersion = "1"

// jsonEnvelope wraps a report with export metadata
type jsonEnvelope struct {
	Tool          string          `json:"tool"`
	ToolVersion   string          `json:"tool_version"`
	SchemaVersion string          `json:"schema_version"`
	Report        *report.Report  `json:"report"`
}

type jsonCompareEnvelope struct {
	Tool          string             `json:"tool"`
	ToolVersion   string             `json:"tool_version"`
	SchemaVersion string             `json:"schema_version"`
	Comparison    *report.Comparison `json:"comparison"`
}

// WriteJSON exports the full report data as an indented JSON document.
// The envelope carries tool and schema versions so downstream consumers
// can detect shape changes.
func WriteJSON(w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	env := jsonEnvelope{
		Tool:          "tabprof",
		ToolVersion:   Version,
		SchemaVersion: SchemaVersion,
		Report:        rep,
	}
	if err := enc.Encode(env); err != nil {
		return errors.RenderFailed("failed to encode report JSON", err)
	}
	return nil
}

// WriteComparisonJSON exports a two-table comparison as JSON
func WriteComparisonJSON(w io.Writer, cmp *report.Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	env := jsonCompareEnvelope{
		Tool:          "tabprof",
		ToolVersion:   Version,
		SchemaVersion: SchemaVersion,
		Comparison:    cmp,
	}
	if err := enc.Encode(env); err != nil {
		return errors.RenderFailed("failed to encode comparison JSON", err)
	}
	return nil
}
