package command

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueEncoding(t *testing.T) {
	var q Queue
	q.SetCommand(Next)
	q.SetCommandWithData(Choice, "act_42")

	require.True(t, q.HasCommands())
	require.Equal(t, "N;C;", q.Commands())
	require.Equal(t, "@C"+"act_42@C", q.CommandData())

	q.Clear()
	require.False(t, q.HasCommands())
	require.Equal(t, "", q.Commands())
	require.Equal(t, "", q.CommandData())
}

func TestCommandDataEscapes(t *testing.T) {
	var q Queue
	q.SetCommandWithData(Save, "a@b<c>")
	q.SetCommandWithData(Choice, "")
	require.Equal(t, "a@Ab@Lc@G@C@C", q.CommandData())
}

func TestParseCommandsRoundTrip(t *testing.T) {
	var q Queue
	q.SetCommand(Save)
	q.SetCommandWithData(IsChoiceValid, "sco<2>")
	q.SetCommand(Terminate)

	entries, err := ParseCommands(q.Commands(), q.CommandData())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, Save, entries[0].Command)
	require.Nil(t, entries[0].Data)
	require.Equal(t, "sco<2>", *entries[1].Data)
	require.Equal(t, Terminate, entries[2].Command)
}

func TestParseCommandsRejectsMismatch(t *testing.T) {
	_, err := ParseCommands("N;P;", "@C")
	require.ErrorIs(t, err, ErrMalformedCommands)
	_, err = ParseCommands("N", "")
	require.ErrorIs(t, err, ErrMalformedCommands)
	entries, err := ParseCommands("", "")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseDatasourceCommand(t *testing.T) {
	cmd, err := ParseDatasourceCommand("3|save,draft")
	require.NoError(t, err)
	require.Equal(t, 3, cmd.Index)
	require.Equal(t, []string{"save", "draft"}, cmd.Args)
	require.Equal(t, "3|save,draft", cmd.String())

	cmd, err = ParseDatasourceCommand("0")
	require.NoError(t, err)
	require.Empty(t, cmd.Args)

	_, err = ParseDatasourceCommand("x|a")
	require.ErrorIs(t, err, ErrMalformedDatasource)
}

func TestReservedCommands(t *testing.T) {
	for _, c := range []string{Next, Previous, Choice, TOCChoice, Save, Terminate, IsChoiceValid, IsNavValid, Submit} {
		require.True(t, IsReserved(c), c)
	}
	require.False(t, IsReserved("Refresh"))
}

func TestAppendKeepsDataWithCommand(t *testing.T) {
	var held Queue
	held.SetCommandWithData(Choice, "quiz")

	var q Queue
	q.SetCommand(Terminate)
	q.Append(held.Entries()...)
	require.Equal(t, "T;C;", q.Commands())
	require.Equal(t, "@C"+"quiz@C", q.CommandData())
}
