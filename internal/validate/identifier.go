package validate

import (
	"regexp"
	"strings"
)

const (
	shortIdentifierMax = 250
	longIdentifierMax  = 4000
	cmiIdentifierMax   = 255
)

var (
	// URI characters plus %HH escapes; a bare % is rejected.
	identifierPattern    = regexp.MustCompile(`^([A-Za-z0-9\-_.!~*'();/?:@&=+$,#\[\]]|%[0-9A-Fa-f]{2})+$`)
	cmiIdentifierPattern = regexp.MustCompile(`^[\x21-\x7E]+$`)
	languagePattern      = regexp.MustCompile(`^([A-Za-z]{2,3}|[iIxX])(-[A-Za-z0-9]{1,8})*$`)
	localizedPattern     = regexp.MustCompile(`(?s)^\{lang=([^}]*)\}(.*)$`)
)

// IsShortIdentifier reports whether v is a SCORM 2004 short_identifier_type.
func IsShortIdentifier(v string) bool {
	return len(v) <= shortIdentifierMax && identifierPattern.MatchString(v)
}

// IsLongIdentifier reports whether v is a SCORM 2004 long_identifier_type.
// A urn with no namespace identifier is rejected.
func IsLongIdentifier(v string) bool {
	if strings.EqualFold(v, "urn:") {
		return false
	}
	return len(v) <= longIdentifierMax && identifierPattern.MatchString(v)
}

// IsCMIIdentifier reports whether v is a SCORM 1.2 CMIIdentifier.
func IsCMIIdentifier(v string) bool {
	return len(v) <= cmiIdentifierMax && cmiIdentifierPattern.MatchString(v)
}

// IsLanguage reports whether v is an RFC 3066 style language tag.
func IsLanguage(v string) bool {
	return languagePattern.MatchString(v)
}

// IsLocalizedString accepts any string, validating an optional {lang=xx} prefix.
func IsLocalizedString(v string) bool {
	if !strings.HasPrefix(v, "{lang=") {
		return true
	}
	m := localizedPattern.FindStringSubmatch(v)
	if m == nil {
		return false
	}
	return IsLanguage(m[1])
}

var navRequests = oneOf("continue", "previous", "exit", "exitAll", "abandon", "abandonAll", "suspendAll", "_none_")

var navTargetPattern = regexp.MustCompile(`^\{target=([^}]+)\}(choice|jump)$`)

// IsNavRequest reports whether v is a valid adl.nav.request value.
func IsNavRequest(v string) bool {
	if navRequests(v) {
		return true
	}
	m := navTargetPattern.FindStringSubmatch(v)
	return m != nil && IsShortIdentifier(m[1])
}

// NavTarget extracts the activity id from a {target=ID}choice or {target=ID}jump request.
func NavTarget(v string) (target, verb string, ok bool) {
	m := navTargetPattern.FindStringSubmatch(v)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
