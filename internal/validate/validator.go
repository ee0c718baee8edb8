package validate

import (
	"errors"
	"fmt"
)

// ErrUnknownType reports a type tag with no predicate. It signals a mismatch between
// the data-model tables and this package, never a content error.
var ErrUnknownType = errors.New("validate: unknown type tag")

// Validator checks a value against a type tag.
type Validator interface {
	Validate(value, tag string) (bool, error)
}

type predicate func(string) bool

type table map[string]predicate

func (t table) Validate(value, tag string) (bool, error) {
	fn, ok := t[tag]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return fn(value), nil
}

// Tag names shared by both versions.
const (
	TagKeyword = "keyword"
)

// SCORM 1.2 tags.
const (
	TagCMIBlank                 = "CMIBlank"
	TagCMIBoolean               = "CMIBoolean"
	TagCMIDecimal               = "CMIDecimal"
	TagCMIDecimalOrBlank        = "CMIDecimalOrBlank"
	TagCMIFeedback              = "CMIFeedback"
	TagCMIIdentifier            = "CMIIdentifier"
	TagCMIInteger               = "CMIInteger"
	TagCMISInteger              = "CMISInteger"
	TagCMIString255             = "CMIString255"
	TagCMIString4096            = "CMIString4096"
	TagCMITime                  = "CMITime"
	TagCMITimespan              = "CMITimespan"
	TagCMIVocabularyStatus      = "CMIVocabularyStatus"
	TagCMIVocabularyStatusSet   = "CMIVocabularyStatusSet"
	TagCMIVocabularyExit        = "CMIVocabularyExit"
	TagCMIVocabularyCredit      = "CMIVocabularyCredit"
	TagCMIVocabularyEntry       = "CMIVocabularyEntry"
	TagCMIVocabularyMode        = "CMIVocabularyMode"
	TagCMIVocabularyTimeLimit   = "CMIVocabularyTimeLimitAction"
	TagCMIVocabularyInteraction = "CMIVocabularyInteraction"
	TagCMIVocabularyResult      = "CMIVocabularyResult"
	TagCMILanguage              = "CMILanguage"
)

// SCORM 2004 tags.
const (
	TagCharacterString    = "characterstring"
	TagLocalizedString    = "localized_string"
	TagLanguage           = "language"
	TagLongIdentifier     = "long_identifier"
	TagShortIdentifier    = "short_identifier"
	TagInteger            = "integer"
	TagReal               = "real"
	TagTime               = "time"
	TagTimeInterval       = "time_interval"
	TagCompletionStatus   = "state_completion"
	TagSuccessStatus      = "state_success"
	TagExit               = "state_exit"
	TagMode               = "state_mode"
	TagCredit             = "state_credit"
	TagEntry              = "state_entry"
	TagTimeLimitAction    = "state_time_limit_action"
	TagInteractionType    = "state_interaction_type"
	TagResult             = "state_result"
	TagAudioCaptioning    = "audio_captioning"
	TagNavRequest         = "nav_request"
	TagNavRequestValidity = "nav_request_valid"
)

// Prefixes for interaction-kind dependent tags, e.g. "pattern.choice".
const (
	ResponsePrefix = "response."
	PatternPrefix  = "pattern."
)

// Interaction kinds shared by the SCORM 2004 response grammars.
const (
	KindTrueFalse   = "true-false"
	KindChoice      = "choice"
	KindFillIn      = "fill-in"
	KindLongFillIn  = "long-fill-in"
	KindLikert      = "likert"
	KindMatching    = "matching"
	KindPerformance = "performance"
	KindSequencing  = "sequencing"
	KindNumeric     = "numeric"
	KindOther       = "other"
)

// Scorm12 returns the SCORM 1.2 validator.
func Scorm12() Validator {
	return scorm12
}

// Scorm2004 returns the SCORM 2004 validator.
func Scorm2004() Validator {
	return scorm2004
}

var scorm12 = table{
	TagKeyword:                  func(string) bool { return false },
	TagCMIBlank:                 func(v string) bool { return v == "" },
	TagCMIBoolean:               oneOf("true", "false"),
	TagCMIDecimal:               IsCMIDecimal,
	TagCMIDecimalOrBlank:        func(v string) bool { return v == "" || IsCMIDecimal(v) },
	TagCMIFeedback:              maxLen(255),
	TagCMIIdentifier:            IsCMIIdentifier,
	TagCMIInteger:               intRange(0, 65536),
	TagCMISInteger:              intRange(-32768, 32768),
	TagCMIString255:             maxLen(255),
	TagCMIString4096:            maxLen(4096),
	TagCMITime:                  IsCMITime,
	TagCMITimespan:              IsCMITimespan,
	TagCMIVocabularyStatus:      oneOf("passed", "completed", "failed", "incomplete", "browsed", "not attempted"),
	TagCMIVocabularyStatusSet:   oneOf("passed", "completed", "failed", "incomplete", "browsed"),
	TagCMIVocabularyExit:        oneOf("time-out", "suspend", "logout", ""),
	TagCMIVocabularyCredit:      oneOf("credit", "no-credit"),
	TagCMIVocabularyEntry:       oneOf("ab-initio", "resume", ""),
	TagCMIVocabularyMode:        oneOf("normal", "review", "browse"),
	TagCMIVocabularyTimeLimit:   oneOf("exit,message", "exit,no message", "continue,message", "continue,no message"),
	TagCMIVocabularyInteraction: oneOf("true-false", "choice", "fill-in", "matching", "performance", "sequencing", "likert", "numeric"),
	TagCMIVocabularyResult: func(v string) bool {
		return oneOf("correct", "wrong", "unanticipated", "neutral")(v) || IsCMIDecimal(v)
	},
	TagCMILanguage: maxLen(255),
}

var scorm2004 = buildScorm2004()

func buildScorm2004() table {
	t := table{
		TagKeyword:            func(string) bool { return false },
		TagCharacterString:    func(string) bool { return true },
		TagLocalizedString:    IsLocalizedString,
		TagLanguage:           func(v string) bool { return v == "" || IsLanguage(v) },
		TagLongIdentifier:     IsLongIdentifier,
		TagShortIdentifier:    IsShortIdentifier,
		TagInteger:            IsInteger,
		TagReal:               IsReal,
		TagTime:               IsTime,
		TagTimeInterval:       IsTimeInterval,
		TagCompletionStatus:   oneOf("completed", "incomplete", "not attempted", "unknown"),
		TagSuccessStatus:      oneOf("passed", "failed", "unknown"),
		TagExit:               oneOf("time-out", "suspend", "logout", "normal", ""),
		TagMode:               oneOf("browse", "normal", "review"),
		TagCredit:             oneOf("credit", "no-credit"),
		TagEntry:              oneOf("ab-initio", "resume", ""),
		TagTimeLimitAction:    oneOf("exit,message", "continue,message", "exit,no message", "continue,no message"),
		TagInteractionType:    oneOf(KindTrueFalse, KindChoice, KindFillIn, KindLongFillIn, KindLikert, KindMatching, KindPerformance, KindSequencing, KindNumeric, KindOther),
		TagResult:             func(v string) bool { return oneOf("correct", "incorrect", "unanticipated", "neutral")(v) || IsReal(v) },
		TagAudioCaptioning:    oneOf("-1", "0", "1"),
		TagNavRequest:         IsNavRequest,
		TagNavRequestValidity: oneOf("true", "false", "unknown"),
	}
	for kind, fn := range responseGrammars {
		t[ResponsePrefix+kind] = fn
	}
	for kind, fn := range patternGrammars {
		t[PatternPrefix+kind] = fn
	}
	return t
}

func oneOf(values ...string) predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(v string) bool {
		_, ok := set[v]
		return ok
	}
}

func maxLen(n int) predicate {
	return func(v string) bool {
		return len(v) <= n
	}
}
