package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSections_EmptyIncludeMeansAll(t *testing.T) {
	active := ResolveSections(nil, nil)
	for _, sec := range AllSections() {
		assert.True(t, active.Has(sec), "section %s should be active", sec)
	}
}

func TestResolveSections_IncludeOnly(t *testing.T) {
	active := ResolveSections([]Section{SectionOverview, SectionVariables}, nil)
	assert.True(t, active.Has(SectionOverview))
	assert.True(t, active.Has(SectionVariables))
	assert.False(t, active.Has(SectionCorrelations))
	assert.False(t, active.Has(SectionSample))
}

func TestResolveSections_ExcludeWins(t *testing.T) {
	// A section both included and excluded stays out.
	active := ResolveSections(
		[]Section{SectionOverview, SectionMissing},
		[]Section{SectionMissing},
	)
	assert.True(t, active.Has(SectionOverview))
	assert.False(t, active.Has(SectionMissing))
}

func TestResolveSections_ExcludeFromAll(t *testing.T) {
	active := ResolveSections(nil, []Section{SectionDuplicates})
	assert.False(t, active.Has(SectionDuplicates))
	assert.True(t, active.Has(SectionOverview))
}

func TestSectionSet_Ordered(t *testing.T) {
	active := ResolveSections([]Section{SectionSample, SectionOverview}, nil)
	assert.Equal(t, []Section{SectionOverview, SectionSample}, active.Ordered())
}

func TestParseSection(t *testing.T) {
	sec, err := ParseSection("correlations")
	assert.NoError(t, err)
	assert.Equal(t, SectionCorrelations, sec)

	_, err = ParseSection("statistics")
	assert.Error(t, err)
}

func TestOmittedPlot(t *testing.T) {
	p := OmittedPlot("Some chart", "not enough data")
	assert.True(t, p.IsOmitted())
	assert.Equal(t, "Some chart", p.Title)
	assert.Equal(t, "not enough data", p.Note)

	assert.False(t, PlotSpec{Kind: PlotBar}.IsOmitted())
}
