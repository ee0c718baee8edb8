package datamodel

import (
	"regexp"

	v "github.com/danmuck/rtectl/internal/validate"
)

const version12 = "3.4"

var scorm12Parser = &Parser{
	version:  Scorm12,
	roots:    []string{"cmi"},
	static:   scorm12Static,
	fallback: readWrite(v.TagCMIString4096),
	rules: []rule{
		{regexp.MustCompile(`^cmi\.objectives\.` + indexSegment + `\.(.+)$`), objective12},
		{regexp.MustCompile(`^cmi\.interactions\.` + indexSegment + `\.objectives\.` + indexSegment + `\.id$`), interactionObjective12},
		{regexp.MustCompile(`^cmi\.interactions\.` + indexSegment + `\.correct_responses\.` + indexSegment + `\.pattern$`), correctResponse12},
		{regexp.MustCompile(`^cmi\.interactions\.` + indexSegment + `\.(.+)$`), interaction12},
	},
}

var scorm12Static = map[string]Descriptor{
	"cmi._version":             version(version12),
	"cmi.core._children":       children("student_id,student_name,lesson_location,credit,lesson_status,entry,score,total_time,lesson_mode,exit,session_time"),
	"cmi.core.student_id":      readOnly(v.TagCMIIdentifier).withDefault(""),
	"cmi.core.student_name":    readOnly(v.TagCMIString255).withDefault(""),
	"cmi.core.lesson_location": readWrite(v.TagCMIString255).withDefault(""),
	"cmi.core.credit":          readOnly(v.TagCMIVocabularyCredit).withDefault("credit"),
	"cmi.core.lesson_status":   readWrite(v.TagCMIVocabularyStatusSet).withDefault("not attempted"),
	"cmi.core.entry":           readOnly(v.TagCMIVocabularyEntry).withDefault("ab-initio"),
	"cmi.core.score._children": children("raw,min,max"),
	"cmi.core.score.raw":       readWrite(v.TagCMIDecimalOrBlank).withRange(v.RangeZeroToHundred).withDefault(""),
	"cmi.core.score.min":       readWrite(v.TagCMIDecimalOrBlank).withRange(v.RangeZeroToHundred).withDefault(""),
	"cmi.core.score.max":       readWrite(v.TagCMIDecimalOrBlank).withRange(v.RangeZeroToHundred).withDefault(""),
	"cmi.core.total_time":      readOnly(v.TagCMITimespan).withDefault("0000:00:00"),
	"cmi.core.lesson_mode":     readOnly(v.TagCMIVocabularyMode).withDefault("normal"),
	"cmi.core.exit":            writeOnly(v.TagCMIVocabularyExit),
	"cmi.core.session_time":    writeOnly(v.TagCMITimespan),
	"cmi.suspend_data":         readWrite(v.TagCMIString4096).withDefault(""),
	"cmi.launch_data":          readOnly(v.TagCMIString4096).withDefault(""),
	"cmi.comments":             readWrite(v.TagCMIString4096).withDefault(""),
	"cmi.comments_from_lms":    readOnly(v.TagCMIString4096).withDefault(""),

	"cmi.objectives._children": children("id,score,status"),
	"cmi.objectives._count":    count(),

	"cmi.student_data._children":         children("mastery_score,max_time_allowed,time_limit_action"),
	"cmi.student_data.mastery_score":     readOnly(v.TagCMIDecimal).withDefault(""),
	"cmi.student_data.max_time_allowed":  readOnly(v.TagCMITimespan).withDefault(""),
	"cmi.student_data.time_limit_action": readOnly(v.TagCMIVocabularyTimeLimit).withDefault(""),

	"cmi.student_preference._children": children("audio,language,speed,text"),
	"cmi.student_preference.audio":     readWrite(v.TagCMISInteger).withRange(v.RangeAudio).withDefault("0"),
	"cmi.student_preference.language":  readWrite(v.TagCMILanguage).withDefault(""),
	"cmi.student_preference.speed":     readWrite(v.TagCMISInteger).withRange(v.RangeSpeed).withDefault("0"),
	"cmi.student_preference.text":      readWrite(v.TagCMISInteger).withRange(v.RangeText).withDefault("0"),

	"cmi.interactions._children": children("id,objectives,time,type,correct_responses,weighting,student_response,result,latency"),
	"cmi.interactions._count":    count(),
}

func objective12(m []string) (Descriptor, bool) {
	n, ok := index(m[1])
	if !ok {
		return Descriptor{}, false
	}
	var d Descriptor
	switch m[2] {
	case "id":
		d = readWrite(v.TagCMIIdentifier).withDefault("")
	case "score._children":
		d = children("raw,min,max")
	case "score.raw", "score.min", "score.max":
		d = readWrite(v.TagCMIDecimalOrBlank).withRange(v.RangeZeroToHundred).withDefault("")
	case "status":
		d = readWrite(v.TagCMIVocabularyStatus).withDefault("not attempted")
	default:
		return Descriptor{}, false
	}
	return d.within("cmi.objectives", n), true
}

func interaction12(m []string) (Descriptor, bool) {
	n, ok := index(m[1])
	if !ok {
		return Descriptor{}, false
	}
	var d Descriptor
	switch m[2] {
	case "id":
		d = writeOnly(v.TagCMIIdentifier)
	case "objectives._count", "correct_responses._count":
		d = count()
	case "time":
		d = writeOnly(v.TagCMITime)
	case "type":
		d = writeOnly(v.TagCMIVocabularyInteraction)
	case "weighting":
		d = writeOnly(v.TagCMIDecimal)
	case "student_response":
		d = writeOnly(v.TagCMIFeedback)
	case "result":
		d = writeOnly(v.TagCMIVocabularyResult)
	case "latency":
		d = writeOnly(v.TagCMITimespan)
	default:
		return Descriptor{}, false
	}
	return d.within("cmi.interactions", n), true
}

func interactionObjective12(m []string) (Descriptor, bool) {
	n, ok1 := index(m[1])
	k, ok2 := index(m[2])
	if !ok1 || !ok2 {
		return Descriptor{}, false
	}
	return writeOnly(v.TagCMIIdentifier).
		within("cmi.interactions", n).
		within("cmi.interactions."+m[1]+".objectives", k), true
}

func correctResponse12(m []string) (Descriptor, bool) {
	n, ok1 := index(m[1])
	k, ok2 := index(m[2])
	if !ok1 || !ok2 {
		return Descriptor{}, false
	}
	return writeOnly(v.TagCMIFeedback).
		within("cmi.interactions", n).
		within("cmi.interactions."+m[1]+".correct_responses", k), true
}
