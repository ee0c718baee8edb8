package wire

import "strings"

// JoinSlots escapes each slot and terminates it with @C. A nil slot is written empty.
func JoinSlots(slots []*string) string {
	var b strings.Builder
	for _, s := range slots {
		if s != nil {
			b.WriteString(Escape(*s))
		}
		b.WriteString(markSlot)
	}
	return b.String()
}

// SplitSlots reverses JoinSlots. Empty slots come back as "".
func SplitSlots(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, markSlot)
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return parts
}
