package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// YYYY[-MM[-DD[Thh[:mm[:ss[.s[TZD]]]]]]]
	timePattern = regexp.MustCompile(
		`^(\d{4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2})(?:\.(\d{1,2})(Z|[+-]\d{2}(?::\d{2})?)?)?)?)?)?)?)?$`,
	)
	// P[nY][nM][nD][T[nH][nM][n[.f]S]]
	intervalPattern = regexp.MustCompile(
		`^P(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d{1,2})?S)?)?$`,
	)
	cmiTimePattern     = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(\.\d{1,2})?$`)
	cmiTimespanPattern = regexp.MustCompile(`^(\d{2,4}):(\d{2}):(\d{2})(\.\d{1,2})?$`)
)

const (
	minYear = 1970
	maxYear = 2038
)

// IsTime reports whether v is a SCORM 2004 time (ISO 8601 subset, years 1970-2038).
func IsTime(v string) bool {
	m := timePattern.FindStringSubmatch(v)
	if m == nil {
		return false
	}
	year := atoi(m[1])
	if year < minYear || year > maxYear {
		return false
	}
	if m[2] == "" {
		return true
	}
	month := atoi(m[2])
	if month < 1 || month > 12 {
		return false
	}
	if m[3] != "" {
		day := atoi(m[3])
		if day < 1 || day > daysIn(year, month) {
			return false
		}
	}
	if m[4] != "" && atoi(m[4]) > 23 {
		return false
	}
	if m[5] != "" && atoi(m[5]) > 59 {
		return false
	}
	if m[6] != "" && atoi(m[6]) > 59 {
		return false
	}
	return validZone(m[8])
}

func validZone(tzd string) bool {
	if tzd == "" || tzd == "Z" {
		return true
	}
	hh, mm, hasMinutes := strings.Cut(tzd[1:], ":")
	if atoi(hh) > 23 {
		return false
	}
	return !hasMinutes || atoi(mm) <= 59
}

// IsLeapYear applies the Gregorian leap rule.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysIn(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsTimeInterval reports whether v is a SCORM 2004 time interval (ISO 8601 duration).
func IsTimeInterval(v string) bool {
	if v == "P" || v == "PT" || strings.HasSuffix(v, "T") {
		return false
	}
	return intervalPattern.MatchString(v)
}

// IsCMITime reports whether v is a SCORM 1.2 CMITime (HH:MM:SS[.SS]).
func IsCMITime(v string) bool {
	m := cmiTimePattern.FindStringSubmatch(v)
	if m == nil {
		return false
	}
	return atoi(m[1]) < 24 && atoi(m[2]) < 60 && atoi(m[3]) < 60
}

// IsCMITimespan reports whether v is a SCORM 1.2 CMITimespan (HHHH:MM:SS[.SS]).
func IsCMITimespan(v string) bool {
	m := cmiTimespanPattern.FindStringSubmatch(v)
	if m == nil {
		return false
	}
	return atoi(m[2]) < 60 && atoi(m[3]) < 60
}

// atoi is only called on regexp-matched digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
