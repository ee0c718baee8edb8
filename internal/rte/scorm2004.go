package rte

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/validate"
)

const (
	completionStatus    = "cmi.completion_status"
	progressMeasure     = "cmi.progress_measure"
	completionThreshold = "cmi.completion_threshold"
	successStatus       = "cmi.success_status"
	scoreScaled         = "cmi.score.scaled"
	scaledPassingScore  = "cmi.scaled_passing_score"
)

// synthesize answers the SCORM 2004 values computed from other elements.
func (e *engine) synthesize(name string) (string, bool) {
	switch name {
	case completionStatus:
		return e.derivedCompletion()
	case successStatus:
		return e.derivedSuccess()
	case datamodel.NavRequestValidContinue:
		return e.site.IsContinueRequestValid(), true
	case datamodel.NavRequestValidPrevious:
		return e.site.IsPreviousRequestValid(), true
	}
	if target, ok := datamodel.ChoiceTarget(name); ok {
		return e.site.IsChoiceRequestValid(target), true
	}
	return "", false
}

func (e *engine) derivedCompletion() (string, bool) {
	progress, ok1 := e.real(progressMeasure)
	threshold, ok2 := e.real(completionThreshold)
	if !ok1 || !ok2 {
		return "", false
	}
	switch {
	case progress == 1:
		return "completed", true
	case progress == 0:
		return "not attempted", true
	case progress >= threshold:
		return "completed", true
	default:
		return "incomplete", true
	}
}

func (e *engine) derivedSuccess() (string, bool) {
	passing, ok := e.real(scaledPassingScore)
	if !ok {
		return "", false
	}
	scaled, ok := e.real(scoreScaled)
	if !ok {
		return "unknown", true
	}
	if scaled >= passing {
		return "passed", true
	}
	return "failed", true
}

func (e *engine) real(name string) (float64, bool) {
	raw, ok := e.site.GetValue(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// onSettingValue applies the correct-response rules that depend on the interaction type.
func (e *engine) onSettingValue(d datamodel.Descriptor, kind, value string) (fault, bool) {
	if d.Type.Prefix != validate.PatternPrefix {
		return fault{}, true
	}
	collection := strings.TrimSuffix(d.Type.Sibling, ".type") + ".correct_responses"
	self, _ := d.IndexIn(collection)
	switch kind {
	case validate.KindTrueFalse, validate.KindLikert:
		if self != 0 {
			return e.policy.patternIndex, false
		}
	case validate.KindChoice:
		key := validate.SortedTokens(value)
		if e.anyPattern(collection, self, func(p string) bool { return validate.SortedTokens(p) == key }) {
			return e.policy.duplicatePattern, false
		}
	case validate.KindSequencing:
		if e.anyPattern(collection, self, func(p string) bool { return p == value }) {
			return e.policy.duplicatePattern, false
		}
	}
	return fault{}, true
}

func (e *engine) anyPattern(collection string, self int, match func(string) bool) bool {
	for i := range e.count(collection) {
		if i == self {
			continue
		}
		p, ok := e.site.GetValue(fmt.Sprintf("%s.%d.pattern", collection, i))
		if ok && match(p) {
			return true
		}
	}
	return false
}
