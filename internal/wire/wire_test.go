package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffRoundTripWithMarkers(t *testing.T) {
	values := map[string]string{
		"cmi.location":                    "page@3<b>",
		"cmi.suspend_data":                "@A@L@G@N@E literal",
		"cmi.interactions.0.id":           "q<1>",
		"cmi.learner_preference.language": "",
	}
	got, err := Decode(Encode(values))
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodeIsOrderedAndEscaped(t *testing.T) {
	out := Encode(map[string]string{"b": "x>y", "a": "1@2"})
	require.Equal(t, "a@E1@A2@Nb@Ex@Gy@N", out)
}

func TestEncodeCommitSkipsCounts(t *testing.T) {
	out := EncodeCommit(map[string]string{
		"cmi.interactions._count": "1",
		"cmi.interactions.0.id":   "q1",
	})
	require.Equal(t, "cmi.interactions.0.id@Eq1@N", out)
}

func TestUnescapeOrder(t *testing.T) {
	require.Equal(t, "@G", Unescape("@AG"))
	require.Equal(t, "@<", Unescape("@A@L"))
	require.Equal(t, ">@", Unescape("@G@A"))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := Decode("a@E1")
	require.ErrorIs(t, err, ErrMalformed)
	_, err = Decode("novalue@N")
	require.ErrorIs(t, err, ErrMalformed)
	got, err := Decode("")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestNavValidity(t *testing.T) {
	raw := EncodeNavValidity(map[string]bool{NavContinue: true, NavPrevious: false, ChoiceKey("sco-2"): true})
	got, err := DecodeNavValidity(raw + "X@Emaybe@N")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"N": "true", "P": "false", "C,sco-2": "true"}, got)

	id, ok := ChoiceTarget("C,sco-2")
	require.True(t, ok)
	require.Equal(t, "sco-2", id)
	_, ok = ChoiceTarget("N")
	require.False(t, ok)
}

func TestSlots(t *testing.T) {
	data := "act<42>"
	joined := JoinSlots([]*string{nil, &data})
	require.Equal(t, "@Cact@L42@G@C", joined)
	require.Equal(t, []string{"", "act<42>"}, SplitSlots(joined))
	require.Nil(t, SplitSlots(""))
}

func TestPageRoundTrip(t *testing.T) {
	page := Page{
		ActivityID:   "sco-1",
		AttemptID:    "a1",
		View:         "Execute",
		RteRequired:  true,
		RteVersion:   "2004",
		DataModel:    Encode(map[string]string{"cmi.mode": "normal"}),
		NavValidity:  EncodeNavValidity(map[string]bool{NavContinue: true}),
		ContentURL:   "/content/sco-1/index.html?x=1&y=2",
		ShowNext:     true,
		ShowPrevious: false,
	}
	got, err := ParsePage(page.Encode())
	require.NoError(t, err)
	require.Equal(t, page, got)

	_, err = ParsePage(FieldClose + "=perhaps")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestPostFieldsOmitModelOutsideExecute(t *testing.T) {
	fields := PostFields{Command: "N;", CommandData: "@C", AttemptID: "a1", DataModel: "x@Ey@N"}
	v := fields.Values()
	require.Equal(t, "N;", v.Get(FieldCommand))
	require.False(t, v.Has(FieldDataModel))

	fields.IncludeModel = true
	require.Equal(t, "x@Ey@N", fields.Values().Get(FieldDataModel))
}
