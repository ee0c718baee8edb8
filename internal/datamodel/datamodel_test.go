package datamodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danmuck/rtectl/internal/validate"
)

func TestParseIsPure(t *testing.T) {
	p := MustNew(Scorm2004)
	names := []string{
		"cmi.completion_status",
		"cmi.interactions.3.correct_responses.1.pattern",
		"cmi.objectives.0.score.scaled",
		"adl.nav.request_valid.choice.{target=sco-2}",
	}
	for _, name := range names {
		a, ok := p.Parse(name)
		require.Truef(t, ok, "parse %s", name)
		b, _ := p.Parse(name)
		require.Equal(t, a, b)
	}
}

func TestParseClampsOverlongIndex(t *testing.T) {
	d, ok := MustNew(Scorm2004).Parse("cmi.interactions.99999999999999999999.id")
	require.True(t, ok)
	require.Len(t, d.IndexRequirements, 1)
	require.Equal(t, math.MaxInt, d.IndexRequirements[0].Index)

	_, ok = MustNew(Scorm2004).Parse("cmi.interactions.-1.id")
	require.False(t, ok)
}

func TestParseReturnsIndependentCopies(t *testing.T) {
	p := MustNew(Scorm2004)
	a, ok := p.Parse("cmi.interactions.0.objectives.1.id")
	require.True(t, ok)
	a.Dependencies[0] = "mutated"
	b, _ := p.Parse("cmi.interactions.0.objectives.1.id")
	require.Equal(t, "cmi.interactions.0.id", b.Dependencies[0])
}

func TestScorm2004CorrectResponseDescriptor(t *testing.T) {
	d, ok := MustNew(Scorm2004).Parse("cmi.interactions.3.correct_responses.1.pattern")
	require.True(t, ok)
	require.True(t, d.CanRead)
	require.True(t, d.CanWrite)
	require.True(t, d.Type.Derived())
	require.Equal(t, "cmi.interactions.3.type", d.Type.Sibling)
	require.Equal(t, validate.PatternPrefix+"choice", d.Type.Resolve("choice"))
	require.Equal(t, []IndexRequirement{
		{Collection: "cmi.interactions", Index: 3},
		{Collection: "cmi.interactions.3.correct_responses", Index: 1},
	}, d.IndexRequirements)
	require.Equal(t, []string{"cmi.interactions.3.id", "cmi.interactions.3.type"}, d.Dependencies)
}

func TestScorm2004Uniqueness(t *testing.T) {
	p := MustNew(Scorm2004)
	d, ok := p.Parse("cmi.objectives.2.id")
	require.True(t, ok)
	require.Equal(t, "cmi.objectives", d.UniqueIn)
	idx, ok := d.IndexIn(d.UniqueIn)
	require.True(t, ok)
	require.Equal(t, 2, idx)

	d, ok = p.Parse("cmi.interactions.1.objectives.0.id")
	require.True(t, ok)
	require.Equal(t, "cmi.interactions.1.objectives", d.UniqueIn)
}

func TestIndexSegmentsRejectLeadingZeros(t *testing.T) {
	p := MustNew(Scorm2004)
	_, ok := p.Parse("cmi.interactions.01.id")
	require.False(t, ok)
	_, ok = p.Parse("cmi.interactions.-1.id")
	require.False(t, ok)
	_, ok = p.Parse("cmi.interactions.10.id")
	require.True(t, ok)
}

func TestVendorExtensionsArePermissive(t *testing.T) {
	d, ok := MustNew(Scorm2004).Parse("vendor.custom.field")
	require.True(t, ok)
	require.True(t, d.CanRead)
	require.True(t, d.CanWrite)
	require.Equal(t, validate.TagCharacterString, d.Type.Tag)

	_, ok = MustNew(Scorm2004).Parse("adl.unknown")
	require.False(t, ok)
	_, ok = MustNew(Scorm12).Parse("cmi.core.nothing")
	require.False(t, ok)
	_, ok = MustNew(Scorm12).Parse("adl.nav.request")
	require.True(t, ok, "adl is not reserved in 1.2")
}

func TestScorm12Table(t *testing.T) {
	p := MustNew(Scorm12)

	d, ok := p.Parse("cmi.core.lesson_status")
	require.True(t, ok)
	require.Equal(t, validate.TagCMIVocabularyStatusSet, d.Type.Tag)
	require.Equal(t, "not attempted", d.Default)

	d, ok = p.Parse("cmi.core.exit")
	require.True(t, ok)
	require.False(t, d.CanRead)
	require.True(t, d.CanWrite)

	d, ok = p.Parse("cmi.core._children")
	require.True(t, ok)
	require.True(t, d.IsKeyword)
	require.False(t, d.CanWrite)

	d, ok = p.Parse("cmi.interactions.4.objectives.2.id")
	require.True(t, ok)
	require.Equal(t, []IndexRequirement{
		{Collection: "cmi.interactions", Index: 4},
		{Collection: "cmi.interactions.4.objectives", Index: 2},
	}, d.IndexRequirements)

	d, ok = p.Parse("cmi._version")
	require.True(t, ok)
	require.Equal(t, "3.4", d.Default)
}

func TestClassifyUnknown(t *testing.T) {
	p12 := MustNew(Scorm12)
	require.Equal(t, CountKeyword, p12.ClassifyUnknown("cmi.core._count"))
	require.Equal(t, ChildrenKeyword, p12.ClassifyUnknown("cmi.core.student_id._children"))
	require.Equal(t, CountKeyword, p12.ClassifyUnknown("cmi.core.score._count"))
	require.Equal(t, NotKeyword, p12.ClassifyUnknown("cmi.core.nothing"))
	require.Equal(t, NotKeyword, p12.ClassifyUnknown("cmi.bogus._count"))

	p04 := MustNew(Scorm2004)
	require.Equal(t, CountKeyword, p04.ClassifyUnknown("cmi.learner_id._count"))
	require.Equal(t, ChildrenKeyword, p04.ClassifyUnknown("cmi.mode._children"))
	require.Equal(t, VersionKeyword, p04.ClassifyUnknown("cmi.score._version"))
	require.Equal(t, NotKeyword, p04.ClassifyUnknown("cmi.learner_id"))
}

func TestChoiceTarget(t *testing.T) {
	id, ok := ChoiceTarget("adl.nav.request_valid.choice.{target=intro}")
	require.True(t, ok)
	require.Equal(t, "intro", id)
	_, ok = ChoiceTarget(NavRequestValidContinue)
	require.False(t, ok)
}

func TestNewRejectsUnknownVersion(t *testing.T) {
	_, err := New(Version("3.0"))
	require.ErrorIs(t, err, ErrUnknownVersion)
}
