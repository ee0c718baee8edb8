package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/rtectl/internal/wire"
)

var (
	ErrMalformedCommands   = errors.New("command: malformed command stream")
	ErrMalformedDatasource = errors.New("command: malformed datasource command")
)

// IsReserved reports whether cmd is handled by the frameset rather than dispatched to a
// datasource.
func IsReserved(cmd string) bool {
	switch cmd {
	case Next, Previous, Choice, TOCChoice, Save, Terminate, IsChoiceValid, IsNavValid, Submit:
		return true
	default:
		return false
	}
}

// ParseCommands decodes a posted hidCommand/hidCommandData pair.
func ParseCommands(cmds, data string) ([]Entry, error) {
	if cmds == "" {
		return nil, nil
	}
	if !strings.HasSuffix(cmds, separator) {
		return nil, fmt.Errorf("%w: missing trailing %q", ErrMalformedCommands, separator)
	}
	names := strings.Split(strings.TrimSuffix(cmds, separator), separator)
	slots := wire.SplitSlots(data)
	if len(slots) != 0 && len(slots) != len(names) {
		return nil, fmt.Errorf("%w: %d commands, %d data slots", ErrMalformedCommands, len(names), len(slots))
	}
	entries := make([]Entry, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty command at %d", ErrMalformedCommands, i)
		}
		entries[i] = Entry{Command: name}
		if i < len(slots) && slots[i] != "" {
			d := slots[i]
			entries[i].Data = &d
		}
	}
	return entries, nil
}

// Datasource is a non-reserved command addressed to a datasource: index|arg,arg.
type Datasource struct {
	Index int
	Args  []string
}

func ParseDatasourceCommand(s string) (Datasource, error) {
	rawIndex, rawArgs, _ := strings.Cut(s, "|")
	idx, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil || idx < 0 {
		return Datasource{}, fmt.Errorf("%w: index %q", ErrMalformedDatasource, rawIndex)
	}
	cmd := Datasource{Index: idx}
	if rawArgs != "" {
		cmd.Args = strings.Split(rawArgs, ",")
	}
	return cmd, nil
}

func (d Datasource) String() string {
	return strconv.Itoa(d.Index) + "|" + strings.Join(d.Args, ",")
}
