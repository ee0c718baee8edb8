package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealLexicalForms(t *testing.T) {
	require.True(t, IsReal("1.5e3"))
	require.True(t, IsReal("-0.25"))
	require.True(t, IsReal(".5"))
	require.True(t, IsReal("10."))
	require.False(t, IsReal("abc"))
	require.False(t, IsReal(""))
	require.False(t, IsReal("1e400"))
	require.False(t, IsReal("NaN"))
}

func TestCMIDecimalRejectsExponent(t *testing.T) {
	require.True(t, IsCMIDecimal("85.5"))
	require.True(t, IsCMIDecimal("-1"))
	require.False(t, IsCMIDecimal("1e2"))
	require.False(t, IsCMIDecimal(""))
}

func TestTimeInterval(t *testing.T) {
	cases := map[string]bool{
		"P":              false,
		"PT":             false,
		"P1DT":           false,
		"PT1H30M":        true,
		"P1Y2M3DT4H5M6S": true,
		"PT0.25S":        true,
		"PT1.234S":       false,
		"1H":             false,
	}
	for v, want := range cases {
		require.Equalf(t, want, IsTimeInterval(v), "interval %q", v)
	}
}

func TestTimeBoundsAndCalendar(t *testing.T) {
	require.True(t, IsTime("2004"))
	require.True(t, IsTime("2024-02-29T10:00:00.5Z"))
	require.True(t, IsTime("2010-07-01T08:30:00.25+05:30"))
	require.False(t, IsTime("2023-02-29"))
	require.False(t, IsTime("1969-12-31"))
	require.False(t, IsTime("2039-01-01"))
	require.False(t, IsTime("2010-13-01"))
	require.False(t, IsTime("2010-01-01T25:00"))
	require.True(t, IsLeapYear(2000))
	require.False(t, IsLeapYear(1900))
}

func TestCMITimeAndTimespan(t *testing.T) {
	require.True(t, IsCMITime("09:30:15"))
	require.True(t, IsCMITime("23:59:59.9"))
	require.False(t, IsCMITime("24:00:00"))
	require.True(t, IsCMITimespan("0000:01:30.25"))
	require.True(t, IsCMITimespan("12:00:00"))
	require.False(t, IsCMITimespan("1:00:00"))
}

func TestIdentifiers(t *testing.T) {
	require.True(t, IsShortIdentifier("obj-1"))
	require.True(t, IsShortIdentifier("urn:ADL:obj%20one"))
	require.False(t, IsShortIdentifier(""))
	require.False(t, IsShortIdentifier("has space"))
	require.False(t, IsShortIdentifier("bad%zz"))
	require.False(t, IsShortIdentifier(strings.Repeat("a", 251)))
	require.True(t, IsLongIdentifier(strings.Repeat("a", 4000)))
	require.False(t, IsLongIdentifier("URN:"))
	require.True(t, IsCMIIdentifier("q_1"))
	require.False(t, IsCMIIdentifier("q 1"))
}

func TestLocalizedStringAndLanguage(t *testing.T) {
	require.True(t, IsLanguage("en-US"))
	require.True(t, IsLanguage("i-klingon"))
	require.False(t, IsLanguage("english"))
	require.True(t, IsLocalizedString("plain text"))
	require.True(t, IsLocalizedString("{lang=fr}bonjour"))
	require.False(t, IsLocalizedString("{lang=???}x"))
}

func TestNavRequests(t *testing.T) {
	require.True(t, IsNavRequest("continue"))
	require.True(t, IsNavRequest("_none_"))
	require.True(t, IsNavRequest("{target=sco-2}choice"))
	require.False(t, IsNavRequest("{target=}choice"))
	require.False(t, IsNavRequest("jump"))

	target, verb, ok := NavTarget("{target=sco-2}jump")
	require.True(t, ok)
	require.Equal(t, "sco-2", target)
	require.Equal(t, "jump", verb)
}

func TestScorm12Table(t *testing.T) {
	v := Scorm12()
	cases := []struct {
		tag   string
		value string
		want  bool
	}{
		{TagCMIVocabularyStatusSet, "not attempted", false},
		{TagCMIVocabularyStatus, "not attempted", true},
		{TagCMIDecimalOrBlank, "", true},
		{TagCMISInteger, "-32768", true},
		{TagCMISInteger, "40000", false},
		{TagCMIInteger, "-1", false},
		{TagCMIVocabularyResult, "75", true},
		{TagCMIVocabularyResult, "incorrect", false},
		{TagKeyword, "anything", false},
	}
	for _, tc := range cases {
		got, err := v.Validate(tc.value, tc.tag)
		require.NoError(t, err)
		require.Equalf(t, tc.want, got, "%s(%q)", tc.tag, tc.value)
	}

	_, err := v.Validate("x", TagReal)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestScorm2004InteractionGrammars(t *testing.T) {
	v := Scorm2004()
	cases := []struct {
		tag   string
		value string
		want  bool
	}{
		{ResponsePrefix + KindTrueFalse, "true", true},
		{ResponsePrefix + KindTrueFalse, "t", false},
		{ResponsePrefix + KindChoice, "a[,]b", true},
		{ResponsePrefix + KindChoice, "a[,]a", false},
		{ResponsePrefix + KindChoice, "", true},
		{PatternPrefix + KindFillIn, "{case_matters=true}{lang=en}red[,]blue", true},
		{PatternPrefix + KindFillIn, "{case_matters=yes}red", false},
		{PatternPrefix + KindFillIn, "{case_matters=true}{case_matters=false}red", false},
		{PatternPrefix + KindLongFillIn, "{order_matters=true}text", true},
		{PatternPrefix + KindMatching, "a[.]1[,]b[.]2", true},
		{PatternPrefix + KindMatching, "a[.]", false},
		{PatternPrefix + KindPerformance, "{order_matters=false}step1[.]5[:]10[,][.]done", true},
		{PatternPrefix + KindPerformance, "[.]", false},
		{PatternPrefix + KindPerformance, "s[.]9[:]1", false},
		{PatternPrefix + KindSequencing, "", false},
		{ResponsePrefix + KindSequencing, "", true},
		{PatternPrefix + KindNumeric, "1[:]5", true},
		{PatternPrefix + KindNumeric, "[:]5", true},
		{PatternPrefix + KindNumeric, "5[:]1", false},
		{PatternPrefix + KindNumeric, "3.5", true},
		{ResponsePrefix + KindNumeric, "1[:]5", false},
		{ResponsePrefix + KindLikert, "agree", true},
		{ResponsePrefix + KindOther, strings.Repeat("x", 4001), false},
	}
	for _, tc := range cases {
		got, err := v.Validate(tc.value, tc.tag)
		require.NoError(t, err)
		require.Equalf(t, tc.want, got, "%s(%q)", tc.tag, tc.value)
	}
}

func TestSortedTokens(t *testing.T) {
	require.Equal(t, SortedTokens("c[,]a[,]b"), SortedTokens("b[,]c[,]a"))
}

func TestInRange(t *testing.T) {
	require.True(t, InRange("0.5", RangeZeroToOne))
	require.False(t, InRange("1.01", RangeZeroToOne))
	require.True(t, InRange("-1", RangeNegativeOneToOne))
	require.False(t, InRange("-0.1", RangePositiveAndZero))
	require.True(t, InRange("1000", RangePositiveAndZero))
	require.False(t, InRange("101", RangeZeroToHundred))
	require.True(t, InRange("-1", RangeAudio))
	require.False(t, InRange("2", RangeText))
	require.True(t, InRange("", RangeZeroToOne))
	require.True(t, InRange("anything", RangeNone))
}
