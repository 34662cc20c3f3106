package report

import "fmt"

// Section is a named, independently toggleable unit of the report
type Section string

const (
	SectionOverview     Section = "overview"
	SectionVariables    Section = "variables"
	SectionCorrelations Section = "correlations"
	SectionMissing      Section = "missing"
	SectionDuplicates   Section = "duplicates"
	SectionOutliers     Section = "outliers"
	SectionSample       Section = "sample"
)

// AllSections returns the recognized sections in report order
func AllSections() []Section {
	return []Section{
		SectionOverview,
		SectionVariables,
		SectionCorrelations,
		SectionMissing,
		SectionDuplicates,
		SectionOutliers,
		SectionSample,
	}
}

// ParseSection validates a section identifier
func ParseSection(s string) (Section, error) {
	for _, sec := range AllSections() {
		if Section(s) == sec {
			return sec, nil
		}
	}
	return "", fmt.Errorf("unknown section %q", s)
}

// SectionSet is the active section configuration of one report
type SectionSet map[Section]bool

// Has reports whether a section is active
func (s SectionSet) Has(sec Section) bool { return s[sec] }

// Ordered returns the active sections in report order
func (s SectionSet) Ordered() []Section {
	var out []Section
	for _, sec := range AllSections() {
		if s[sec] {
			out = append(out, sec)
		}
	}
	return out
}

// ResolveSections computes the active set from include/exclude lists.
// An empty include list means all sections. Exclude always wins on
// conflict: explicit deny beats explicit allow.
func ResolveSections(include, exclude []Section) SectionSet {
	active := make(SectionSet, len(AllSections()))
	if len(include) == 0 {
		for _, sec := range AllSections() {
			active[sec] = true
		}
	} else {
		for _, sec := range include {
			active[sec] = true
		}
	}
	for _, sec := range exclude {
		delete(active, sec)
	}
	return active
}
