package validate

import (
	"slices"
	"strings"
)

// Delimiters used by interaction responses and patterns.
const (
	ItemSeparator  = "[,]"
	PairSeparator  = "[.]"
	RangeSeparator = "[:]"
)

const (
	tagCaseMatters  = "case_matters"
	tagOrderMatters = "order_matters"
)

var responseGrammars = map[string]predicate{
	KindTrueFalse:   oneOf("true", "false"),
	KindChoice:      func(v string) bool { return v == "" || uniqueIdentifiers(v) },
	KindFillIn:      localizedList,
	KindLongFillIn:  IsLocalizedString,
	KindLikert:      IsShortIdentifier,
	KindMatching:    func(v string) bool { return v == "" || matchingPairs(v) },
	KindPerformance: func(v string) bool { return v == "" || performanceSteps(v, false) },
	KindSequencing:  func(v string) bool { return v == "" || identifierList(v) },
	KindNumeric:     IsReal,
	KindOther:       func(v string) bool { return len(v) <= longIdentifierMax },
}

var patternGrammars = map[string]predicate{
	KindTrueFalse: oneOf("true", "false"),
	KindChoice:    func(v string) bool { return v == "" || uniqueIdentifiers(v) },
	KindFillIn: func(v string) bool {
		rest, ok := stripTags(v, tagCaseMatters, tagOrderMatters)
		return ok && localizedList(rest)
	},
	KindLongFillIn: func(v string) bool {
		rest, ok := stripTags(v, tagCaseMatters)
		return ok && IsLocalizedString(rest)
	},
	KindLikert:   IsShortIdentifier,
	KindMatching: matchingPairs,
	KindPerformance: func(v string) bool {
		rest, ok := stripTags(v, tagOrderMatters)
		return ok && performanceSteps(rest, true)
	},
	KindSequencing: identifierList,
	KindNumeric:    numericRange,
	KindOther:      func(v string) bool { return len(v) <= longIdentifierMax },
}

// stripTags removes leading {name=true|false} tags, each allowed once and in any order.
func stripTags(v string, allowed ...string) (string, bool) {
	seen := make(map[string]bool, len(allowed))
	for strings.HasPrefix(v, "{") {
		end := strings.IndexByte(v, '}')
		if end < 0 {
			return "", false
		}
		name, value, ok := strings.Cut(v[1:end], "=")
		if !ok || !slices.Contains(allowed, name) {
			// Not a pattern tag, e.g. a {lang=..} prefix on the first item.
			return v, true
		}
		if seen[name] || (value != "true" && value != "false") {
			return "", false
		}
		seen[name] = true
		v = v[end+1:]
	}
	return v, true
}

func identifierList(v string) bool {
	if v == "" {
		return false
	}
	for _, item := range strings.Split(v, ItemSeparator) {
		if !IsShortIdentifier(item) {
			return false
		}
	}
	return true
}

func uniqueIdentifiers(v string) bool {
	if !identifierList(v) {
		return false
	}
	items := strings.Split(v, ItemSeparator)
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			return false
		}
		seen[item] = struct{}{}
	}
	return true
}

func localizedList(v string) bool {
	if v == "" {
		return true
	}
	for _, item := range strings.Split(v, ItemSeparator) {
		if !IsLocalizedString(item) {
			return false
		}
	}
	return true
}

func matchingPairs(v string) bool {
	if v == "" {
		return false
	}
	for _, item := range strings.Split(v, ItemSeparator) {
		parts := strings.Split(item, PairSeparator)
		if len(parts) != 2 || !IsShortIdentifier(parts[0]) || !IsShortIdentifier(parts[1]) {
			return false
		}
	}
	return true
}

// performanceSteps validates step_name[.]step_answer records. Either side may be empty,
// not both. Correct-response patterns additionally accept min[:]max numeric answers.
func performanceSteps(v string, pattern bool) bool {
	if v == "" {
		return false
	}
	for _, item := range strings.Split(v, ItemSeparator) {
		parts := strings.Split(item, PairSeparator)
		if len(parts) != 2 {
			return false
		}
		name, answer := parts[0], parts[1]
		if name == "" && answer == "" {
			return false
		}
		if name != "" && !IsShortIdentifier(name) {
			return false
		}
		if pattern && strings.Contains(answer, RangeSeparator) && !numericRange(answer) {
			return false
		}
	}
	return true
}

// numericRange validates min[:]max where either bound may be empty; a single real is
// accepted as an exact match.
func numericRange(v string) bool {
	if !strings.Contains(v, RangeSeparator) {
		return IsReal(v)
	}
	parts := strings.Split(v, RangeSeparator)
	if len(parts) != 2 {
		return false
	}
	lo, hi := parts[0], parts[1]
	if lo != "" && !IsReal(lo) {
		return false
	}
	if hi != "" && !IsReal(hi) {
		return false
	}
	if lo != "" && hi != "" {
		return parseFloat(lo) <= parseFloat(hi)
	}
	return true
}

// SortedTokens returns the [,] separated items of v in sorted order joined by [,].
// Two choice patterns with the same token set produce the same key.
func SortedTokens(v string) string {
	items := strings.Split(v, ItemSeparator)
	slices.Sort(items)
	return strings.Join(items, ItemSeparator)
}
