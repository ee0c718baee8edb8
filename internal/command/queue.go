// Package command queues navigation and session commands for the next post.
package command

import (
	"strings"

	"github.com/danmuck/rtectl/internal/wire"
)

// Commands understood by the frameset and the LMS.
const (
	Next          = "N"
	Previous      = "P"
	Choice        = "C"
	TOCChoice     = "TC"
	Save          = "S"
	Terminate     = "T"
	IsChoiceValid = "V"
	IsNavValid    = "NV"
	Submit        = "DS"
)

const separator = ";"

// Entry pairs a command with its optional data so the two can never drift apart.
type Entry struct {
	Command string
	Data    *string
}

// Queue is the ordered set of commands waiting to be posted. The zero value is empty and
// ready to use.
type Queue struct {
	entries []Entry
}

func (q *Queue) SetCommand(cmd string) {
	q.entries = append(q.entries, Entry{Command: cmd})
}

func (q *Queue) SetCommandWithData(cmd, data string) {
	q.entries = append(q.entries, Entry{Command: cmd, Data: &data})
}

// Commands joins the queued commands, each followed by ';'.
func (q *Queue) Commands() string {
	var b strings.Builder
	for _, e := range q.entries {
		b.WriteString(e.Command)
		b.WriteString(separator)
	}
	return b.String()
}

// CommandData joins the escaped data slots, one per command.
func (q *Queue) CommandData() string {
	slots := make([]*string, len(q.entries))
	for i, e := range q.entries {
		slots[i] = e.Data
	}
	return wire.JoinSlots(slots)
}

// Append queues entries after the ones already waiting.
func (q *Queue) Append(entries ...Entry) {
	q.entries = append(q.entries, entries...)
}

func (q *Queue) HasCommands() bool {
	return len(q.entries) > 0
}

func (q *Queue) Len() int {
	return len(q.entries)
}

func (q *Queue) Entries() []Entry {
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

func (q *Queue) Clear() {
	q.entries = nil
}
