package validate

import "strconv"

// Range names a numeric constraint applied after the type check passes.
type Range string

const (
	RangeNone             Range = ""
	RangeZeroToOne        Range = "ZeroToOne"
	RangeNegativeOneToOne Range = "NegativeOneToOne"
	RangePositiveAndZero  Range = "PositiveAndZero"
	RangeZeroToHundred    Range = "ZeroToHundred"
	RangeAudio            Range = "Audio"
	RangeSpeed            Range = "Speed"
	RangeText             Range = "Text"
)

type bounds struct {
	min, max       float64
	hasMin, hasMax bool
}

var rangeBounds = map[Range]bounds{
	RangeZeroToOne:        {min: 0, max: 1, hasMin: true, hasMax: true},
	RangeNegativeOneToOne: {min: -1, max: 1, hasMin: true, hasMax: true},
	RangePositiveAndZero:  {min: 0, hasMin: true},
	RangeZeroToHundred:    {min: 0, max: 100, hasMin: true, hasMax: true},
	RangeAudio:            {min: -1, max: 100, hasMin: true, hasMax: true},
	RangeSpeed:            {min: -100, max: 100, hasMin: true, hasMax: true},
	RangeText:             {min: -1, max: 1, hasMin: true, hasMax: true},
}

// InRange reports whether v satisfies r. A blank value or RangeNone always passes;
// blankness is decided by the type check.
func InRange(v string, r Range) bool {
	if r == RangeNone || v == "" {
		return true
	}
	b, ok := rangeBounds[r]
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	if b.hasMin && f < b.min {
		return false
	}
	if b.hasMax && f > b.max {
		return false
	}
	return true
}

func parseFloat(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}
