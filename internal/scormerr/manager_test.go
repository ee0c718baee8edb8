package scormerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetFormatsDiagnostic(t *testing.T) {
	m := NewManager(Table2004)
	require.NoError(t, m.Set(GeneralSetFailure, "351-4", "cmi.interactions.0.correct_responses.1.pattern", "b[,]a"))
	require.Equal(t, "351", m.LastError())
	require.Equal(t, "General Set Failure", m.ErrorString("351"))
	require.Equal(t,
		"The correct response pattern b[,]a is already defined for cmi.interactions.0.correct_responses.1.pattern.",
		m.Diagnostic(""))
	require.Equal(t, m.Diagnostic(""), m.Diagnostic("351"))
	require.Equal(t, "Data Model Element Is Read Only", m.Diagnostic("404"))
}

func TestSetRejectsUnknownCodes(t *testing.T) {
	m := NewManager(Table12)
	require.ErrorIs(t, m.Set(Code(999), ""), ErrUnknownCode)
	require.ErrorIs(t, m.Set(LMSNotInitialized, "301-9"), ErrUnknownCode)
	require.Equal(t, "0", m.LastError(), "failed Set must not change state")
}

func TestVersionTablesDiffer(t *testing.T) {
	m12 := NewManager(Table12)
	m04 := NewManager(Table2004)
	require.Equal(t, "Not initialized", m12.ErrorString("301"))
	require.Equal(t, "General Get Failure", m04.ErrorString("301"))
	require.Equal(t, "No error", m12.ErrorString("0"))
	require.Equal(t, "No Error", m04.ErrorString("0"))
	require.Equal(t, "", m04.ErrorString("202"))
	require.Equal(t, "", m04.ErrorString("abc"))
}

func TestClearResetsDiagnostic(t *testing.T) {
	m := NewManager(Table12)
	require.NoError(t, m.Set(LMSNotInitialized, "301-1", "LMSGetValue"))
	require.Equal(t, "LMSGetValue was called before LMSInitialize.", m.Diagnostic(""))
	m.Clear()
	require.Equal(t, NoError, m.Code())
	require.Equal(t, "", m.Diagnostic(""))
}

func TestDiagnosticIdsMatchCodes(t *testing.T) {
	for name, table := range map[string]Table{"1.2": Table12, "2004": Table2004} {
		for code, entry := range table {
			require.NotEmptyf(t, entry.Message, "%s %d", name, code)
			for id := range entry.Diagnostics {
				require.Truef(t, len(id) > 4 && id[:3] == code.String(), "%s diagnostic %s under %d", name, id, code)
			}
		}
	}
}
