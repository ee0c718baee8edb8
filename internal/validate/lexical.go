package validate

import (
	"math"
	"regexp"
	"strconv"
)

var (
	realPattern       = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
	integerPattern    = regexp.MustCompile(`^[-+]?\d+$`)
	cmiDecimalPattern = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)$`)
)

// IsReal reports whether v is a finite real number. Exponent notation is accepted.
func IsReal(v string) bool {
	if !realPattern.MatchString(v) {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// IsInteger reports whether v is a signed decimal integer.
func IsInteger(v string) bool {
	if !integerPattern.MatchString(v) {
		return false
	}
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

// IsCMIDecimal reports whether v is a SCORM 1.2 CMIDecimal (no exponent).
func IsCMIDecimal(v string) bool {
	return cmiDecimalPattern.MatchString(v)
}

func intRange(min, max int64) predicate {
	return func(v string) bool {
		if !integerPattern.MatchString(v) {
			return false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return false
		}
		return n >= min && n <= max
	}
}
