package report

import "fmt"

// VarType represents the classified type of a profiled column.
// The set is closed; every consumer switches exhaustively over it.
type VarType string

const (
	TypeNumeric     VarType = "numeric"
	TypeCategorical VarType = "categorical"
	TypeBoolean     VarType = "boolean"
	TypeDate        VarType = "date"
	TypeText        VarType = "text"
)

// AllVarTypes returns the closed set in display order
func AllVarTypes() []VarType {
	return []VarType{TypeNumeric, TypeCategorical, TypeBoolean, TypeDate, TypeText}
}

// ParseVarType parses a string into a VarType
func ParseVarType(s string) (VarType, error) {
	switch VarType(s) {
	case TypeNumeric, TypeCategorical, TypeBoolean, TypeDate, TypeText:
		return VarType(s), nil
	}
	return "", fmt.Errorf("unknown variable type %q", s)
}
