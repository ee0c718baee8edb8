// Package wire holds the text encodings exchanged between the player and the LMS.
//
// A data-model diff is a run of name@Evalue@N records. Inside names and values a literal
// @ is written @A, < is written @L and > is written @G.
package wire

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrMalformed = errors.New("wire: malformed record")

const (
	markEquals = "@E"
	markNext   = "@N"
	markSlot   = "@C"
)

var (
	escaper   = strings.NewReplacer("@", "@A", "<", "@L", ">", "@G")
	unescapeG = strings.NewReplacer("@G", ">")
	unescapeL = strings.NewReplacer("@L", "<")
	unescapeA = strings.NewReplacer("@A", "@")
)

func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape, applying @G, @L then @A.
func Unescape(s string) string {
	return unescapeA.Replace(unescapeL.Replace(unescapeG.Replace(s)))
}

// Encode writes every pair in name order.
func Encode(values map[string]string) string {
	return encode(values, func(string) bool { return true })
}

// EncodeCommit writes the pairs a commit carries: _count names are recomputed by the LMS.
func EncodeCommit(values map[string]string) string {
	return encode(values, func(name string) bool { return !strings.HasSuffix(name, "_count") })
}

func encode(values map[string]string, keep func(string) bool) string {
	names := make([]string, 0, len(values))
	for name := range values {
		if keep(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	var b strings.Builder
	for _, name := range names {
		b.WriteString(Escape(name))
		b.WriteString(markEquals)
		b.WriteString(Escape(values[name]))
		b.WriteString(markNext)
	}
	return b.String()
}

// Decode parses a diff. An empty string is an empty map.
func Decode(s string) (map[string]string, error) {
	out := make(map[string]string)
	if s == "" {
		return out, nil
	}
	records := strings.Split(s, markNext)
	if records[len(records)-1] != "" {
		return nil, fmt.Errorf("%w: missing %s terminator", ErrMalformed, markNext)
	}
	for i, rec := range records[:len(records)-1] {
		name, value, ok := strings.Cut(rec, markEquals)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: record %d %q", ErrMalformed, i, rec)
		}
		out[Unescape(name)] = Unescape(value)
	}
	return out, nil
}
