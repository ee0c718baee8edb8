package datamodel

import (
	"regexp"

	v "github.com/danmuck/rtectl/internal/validate"
)

const version2004 = "1.0"

// Names under adl.nav.request_valid are answered by the site's navigation cache.
const (
	NavRequest              = "adl.nav.request"
	NavRequestValidContinue = "adl.nav.request_valid.continue"
	NavRequestValidPrevious = "adl.nav.request_valid.previous"
	NavRequestValidChoice   = "adl.nav.request_valid.choice"
)

var navChoicePattern = regexp.MustCompile(`^adl\.nav\.request_valid\.choice\.\{target=([^}]+)\}$`)

// ChoiceTarget extracts the activity id from adl.nav.request_valid.choice.{target=ID}.
func ChoiceTarget(name string) (string, bool) {
	m := navChoicePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var scorm2004Parser = &Parser{
	version:  Scorm2004,
	roots:    []string{"cmi", "adl"},
	static:   scorm2004Static,
	fallback: readWrite(v.TagCharacterString),
	rules: []rule{
		{regexp.MustCompile(`^cmi\.comments_from_learner\.` + indexSegment + `\.(.+)$`), comment2004("cmi.comments_from_learner", true)},
		{regexp.MustCompile(`^cmi\.comments_from_lms\.` + indexSegment + `\.(.+)$`), comment2004("cmi.comments_from_lms", false)},
		{regexp.MustCompile(`^cmi\.interactions\.` + indexSegment + `\.objectives\.` + indexSegment + `\.id$`), interactionObjective2004},
		{regexp.MustCompile(`^cmi\.interactions\.` + indexSegment + `\.correct_responses\.` + indexSegment + `\.pattern$`), correctResponse2004},
		{regexp.MustCompile(`^cmi\.interactions\.` + indexSegment + `\.(.+)$`), interaction2004},
		{regexp.MustCompile(`^cmi\.objectives\.` + indexSegment + `\.(.+)$`), objective2004},
		{navChoicePattern, navChoice2004},
	},
}

var scorm2004Static = map[string]Descriptor{
	"cmi._version": version(version2004),

	"cmi.comments_from_learner._children": children("comment,location,timestamp"),
	"cmi.comments_from_learner._count":    count(),
	"cmi.comments_from_lms._children":     children("comment,location,timestamp"),
	"cmi.comments_from_lms._count":        count(),

	"cmi.completion_status":    readWrite(v.TagCompletionStatus).withDefault("unknown"),
	"cmi.completion_threshold": readOnly(v.TagReal).withRange(v.RangeZeroToOne),
	"cmi.credit":               readOnly(v.TagCredit).withDefault("credit"),
	"cmi.entry":                readOnly(v.TagEntry).withDefault("ab-initio"),
	"cmi.exit":                 writeOnly(v.TagExit),

	"cmi.interactions._children": children("id,type,objectives,timestamp,correct_responses,weighting,learner_response,result,latency,description"),
	"cmi.interactions._count":    count(),

	"cmi.launch_data":  readOnly(v.TagCharacterString),
	"cmi.learner_id":   readOnly(v.TagLongIdentifier).withDefault(""),
	"cmi.learner_name": readOnly(v.TagLocalizedString).withDefault(""),

	"cmi.learner_preference._children":        children("audio_level,language,delivery_speed,audio_captioning"),
	"cmi.learner_preference.audio_level":      readWrite(v.TagReal).withRange(v.RangePositiveAndZero).withDefault("1"),
	"cmi.learner_preference.language":         readWrite(v.TagLanguage).withDefault(""),
	"cmi.learner_preference.delivery_speed":   readWrite(v.TagReal).withRange(v.RangePositiveAndZero).withDefault("1"),
	"cmi.learner_preference.audio_captioning": readWrite(v.TagAudioCaptioning).withDefault("0"),

	"cmi.location":         readWrite(v.TagCharacterString),
	"cmi.max_time_allowed": readOnly(v.TagTimeInterval),
	"cmi.mode":             readOnly(v.TagMode).withDefault("normal"),

	"cmi.objectives._children": children("id,score,success_status,completion_status,progress_measure,description"),
	"cmi.objectives._count":    count(),

	"cmi.progress_measure":     readWrite(v.TagReal).withRange(v.RangeZeroToOne),
	"cmi.scaled_passing_score": readOnly(v.TagReal).withRange(v.RangeNegativeOneToOne),
	"cmi.score._children":      children("scaled,raw,min,max"),
	"cmi.score.scaled":         readWrite(v.TagReal).withRange(v.RangeNegativeOneToOne),
	"cmi.score.raw":            readWrite(v.TagReal),
	"cmi.score.min":            readWrite(v.TagReal),
	"cmi.score.max":            readWrite(v.TagReal),
	"cmi.session_time":         writeOnly(v.TagTimeInterval),
	"cmi.success_status":       readWrite(v.TagSuccessStatus).withDefault("unknown"),
	"cmi.suspend_data":         readWrite(v.TagCharacterString),
	"cmi.time_limit_action":    readOnly(v.TagTimeLimitAction).withDefault("continue,no message"),
	"cmi.total_time":           readOnly(v.TagTimeInterval).withDefault("PT0H0M0S"),

	NavRequest:              readWrite(v.TagNavRequest).withDefault("_none_"),
	NavRequestValidContinue: readOnly(v.TagNavRequestValidity),
	NavRequestValidPrevious: readOnly(v.TagNavRequestValidity),
}

func comment2004(collection string, writable bool) resolver {
	return func(m []string) (Descriptor, bool) {
		n, ok := index(m[1])
		if !ok {
			return Descriptor{}, false
		}
		var d Descriptor
		switch m[2] {
		case "comment":
			d = readOnly(v.TagLocalizedString)
		case "location":
			d = readOnly(v.TagCharacterString)
		case "timestamp":
			d = readOnly(v.TagTime)
		default:
			return Descriptor{}, false
		}
		d.CanWrite = writable
		return d.within(collection, n), true
	}
}

func interaction2004(m []string) (Descriptor, bool) {
	n, ok := index(m[1])
	if !ok {
		return Descriptor{}, false
	}
	base := "cmi.interactions." + m[1]
	var d Descriptor
	switch m[2] {
	case "id":
		return readWrite(v.TagLongIdentifier).within("cmi.interactions", n), true
	case "objectives._count", "correct_responses._count":
		d = count()
	case "objectives._children":
		d = children("id")
	case "correct_responses._children":
		d = children("pattern")
	case "type":
		d = readWrite(v.TagInteractionType)
	case "timestamp":
		d = readWrite(v.TagTime)
	case "weighting":
		d = readWrite(v.TagReal)
	case "learner_response":
		d = derived(base+".type", v.ResponsePrefix)
	case "result":
		d = readWrite(v.TagResult)
	case "latency":
		d = readWrite(v.TagTimeInterval)
	case "description":
		d = readWrite(v.TagLocalizedString)
	default:
		return Descriptor{}, false
	}
	d = d.within("cmi.interactions", n)
	switch {
	case d.IsKeyword:
		return d, true
	case d.Type.Derived():
		return d.dependsOn(base+".id", d.Type.Sibling), true
	default:
		return d.dependsOn(base + ".id"), true
	}
}

func interactionObjective2004(m []string) (Descriptor, bool) {
	n, ok1 := index(m[1])
	k, ok2 := index(m[2])
	if !ok1 || !ok2 {
		return Descriptor{}, false
	}
	base := "cmi.interactions." + m[1]
	return readWrite(v.TagLongIdentifier).
		within("cmi.interactions", n).
		within(base+".objectives", k).
		dependsOn(base + ".id").
		uniqueIn(base + ".objectives"), true
}

func correctResponse2004(m []string) (Descriptor, bool) {
	n, ok1 := index(m[1])
	k, ok2 := index(m[2])
	if !ok1 || !ok2 {
		return Descriptor{}, false
	}
	base := "cmi.interactions." + m[1]
	return derived(base+".type", v.PatternPrefix).
		within("cmi.interactions", n).
		within(base+".correct_responses", k).
		dependsOn(base+".id", base+".type"), true
}

func objective2004(m []string) (Descriptor, bool) {
	n, ok := index(m[1])
	if !ok {
		return Descriptor{}, false
	}
	var d Descriptor
	switch m[2] {
	case "id":
		return readWrite(v.TagLongIdentifier).within("cmi.objectives", n).uniqueIn("cmi.objectives"), true
	case "score._children":
		return children("scaled,raw,min,max").within("cmi.objectives", n), true
	case "score.scaled":
		d = readWrite(v.TagReal).withRange(v.RangeNegativeOneToOne)
	case "score.raw", "score.min", "score.max":
		d = readWrite(v.TagReal)
	case "success_status":
		d = readWrite(v.TagSuccessStatus).withDefault("unknown")
	case "completion_status":
		d = readWrite(v.TagCompletionStatus).withDefault("unknown")
	case "progress_measure":
		d = readWrite(v.TagReal).withRange(v.RangeZeroToOne)
	case "description":
		d = readWrite(v.TagLocalizedString)
	default:
		return Descriptor{}, false
	}
	return d.within("cmi.objectives", n).dependsOn("cmi.objectives." + m[1] + ".id"), true
}

func navChoice2004(m []string) (Descriptor, bool) {
	if !v.IsShortIdentifier(m[1]) {
		return Descriptor{}, false
	}
	return readOnly(v.TagNavRequestValidity), true
}
