// Package scormerr keeps the last SCORM error of an API instance.
package scormerr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCode is returned for a code or diagnostic id missing from the table.
var ErrUnknownCode = errors.New("scormerr: unknown error code")

// Manager records the last error code and its formatted diagnostic.
type Manager struct {
	table      Table
	code       Code
	diagnostic string
}

func NewManager(table Table) *Manager {
	return &Manager{table: table}
}

// Set records code with the diagnostic diagID formatted with args. An empty diagID uses the
// code's message as the diagnostic.
func (m *Manager) Set(code Code, diagID string, args ...any) error {
	entry, ok := m.table[code]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	diagnostic := entry.Message
	if diagID != "" {
		tmpl, ok := entry.Diagnostics[diagID]
		if !ok {
			return fmt.Errorf("%w: diagnostic %s", ErrUnknownCode, diagID)
		}
		diagnostic = format(tmpl, args...)
	}
	m.code = code
	m.diagnostic = diagnostic
	return nil
}

func (m *Manager) Clear() {
	m.code = NoError
	m.diagnostic = ""
}

func (m *Manager) Code() Code {
	return m.code
}

// LastError is the GetLastError result.
func (m *Manager) LastError() string {
	return m.code.String()
}

// ErrorString returns the standard message for a code, or "" when unknown.
func (m *Manager) ErrorString(raw string) string {
	code, ok := ParseCode(raw)
	if !ok {
		return ""
	}
	return m.table[code].Message
}

// Diagnostic returns the last diagnostic when raw is empty or names the last error,
// otherwise the code's message.
func (m *Manager) Diagnostic(raw string) string {
	if raw == "" || raw == m.code.String() {
		if m.code == NoError {
			return ""
		}
		return m.diagnostic
	}
	return m.ErrorString(raw)
}

func format(tmpl string, args ...any) string {
	if len(args) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
