// Package rte implements the SCORM 1.2 and SCORM 2004 runtime API objects.
//
// Both editions share one engine; they differ in method names, error codes and the
// values SCORM 2004 synthesizes on read. Failures never surface as Go errors: each call
// returns its failure sentinel and records the code for GetLastError.
package rte

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/observability"
	"github.com/danmuck/rtectl/internal/scormerr"
	"github.com/danmuck/rtectl/internal/validate"
)

// Status is the API lifecycle state.
type Status int

const (
	NotInitialized Status = iota
	Running
	Terminated
)

func (s Status) String() string {
	switch s {
	case NotInitialized:
		return "not-initialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

const countSuffix = "._count"

type engine struct {
	version   datamodel.Version
	site      *apisite.Site
	parser    *datamodel.Parser
	validator validate.Validator
	errs      *scormerr.Manager
	policy    policy
	status    Status
}

func newEngine(site *apisite.Site, version datamodel.Version) *engine {
	e := &engine{
		version: version,
		site:    site,
		parser:  datamodel.MustNew(version),
	}
	if version == datamodel.Scorm12 {
		e.validator = validate.Scorm12()
		e.errs = scormerr.NewManager(scormerr.Table12)
		e.policy = policy12
	} else {
		e.validator = validate.Scorm2004()
		e.errs = scormerr.NewManager(scormerr.Table2004)
		e.policy = policy2004
	}
	return e
}

// fail records f and returns false so callers can `return e.fail(...)`.
func (e *engine) fail(method string, f fault, args ...any) bool {
	if f.code == scormerr.NoError {
		e.errs.Clear()
		return false
	}
	if err := e.errs.Set(f.code, f.diag, args...); err != nil {
		log.Error().Err(err).Str("method", method).Msg("error table mismatch")
		_ = e.errs.Set(e.policy.internal.code, "")
	}
	log.Debug().
		Str("version", string(e.version)).
		Str("method", method).
		Stringer("code", f.code).
		Str("diagnostic", e.errs.Diagnostic("")).
		Msg("rte call failed")
	return false
}

func (e *engine) succeed() {
	e.errs.Clear()
}

func (e *engine) record(method string) {
	observability.RecordRTECall(string(e.version), method, e.errs.LastError())
}

// emptyParam validates the "" parameter of Initialize, Terminate and Commit.
func (e *engine) emptyParam(method string, param any) bool {
	s, ok := param.(string)
	if !ok {
		return e.fail(method, e.policy.argNotString, method)
	}
	if s != "" {
		return e.fail(method, e.policy.argNotEmpty, method)
	}
	return true
}

func (e *engine) initialize(method string, param any) bool {
	defer e.record(method)
	switch e.status {
	case Running:
		return e.fail(method, e.policy.initTwice)
	case Terminated:
		return e.fail(method, e.policy.initAfterTerm)
	}
	if !e.emptyParam(method, param) {
		return false
	}
	e.status = Running
	e.succeed()
	return true
}

func (e *engine) terminate(method string, param any) bool {
	defer e.record(method)
	switch e.status {
	case NotInitialized:
		return e.fail(method, e.policy.termBeforeInit, method)
	case Terminated:
		return e.fail(method, e.policy.termAfterTerm, method)
	}
	if !e.emptyParam(method, param) {
		return false
	}
	if !e.site.Terminate() {
		return e.fail(method, e.policy.termFailed)
	}
	e.status = Terminated
	e.succeed()
	return true
}

func (e *engine) commit(method string, param any) bool {
	defer e.record(method)
	switch e.status {
	case NotInitialized:
		return e.fail(method, e.policy.commitBeforeInit, method)
	case Terminated:
		return e.fail(method, e.policy.commitAfterTerm, method)
	}
	if !e.emptyParam(method, param) {
		return false
	}
	if !e.site.Commit() {
		return e.fail(method, e.policy.commitFailed)
	}
	e.succeed()
	return true
}

func (e *engine) getValue(method string, rawName any) string {
	defer e.record(method)
	value, ok := e.get(method, rawName)
	if !ok {
		return ""
	}
	e.succeed()
	return value
}

func (e *engine) get(method string, rawName any) (string, bool) {
	p := &e.policy
	switch e.status {
	case NotInitialized:
		return "", e.fail(method, p.getBeforeInit, method, rawName)
	case Terminated:
		return "", e.fail(method, p.getAfterTerm, method, rawName)
	}
	name, ok := rawName.(string)
	if !ok {
		return "", e.fail(method, p.argNotString, method)
	}
	if name == "" {
		return "", e.fail(method, p.getEmptyName)
	}

	d, ok := e.parser.Parse(name)
	if !ok {
		switch e.parser.ClassifyUnknown(name) {
		case datamodel.CountKeyword:
			return "", e.fail(method, p.getCount, name)
		case datamodel.ChildrenKeyword:
			return "", e.fail(method, p.getChildren, name)
		case datamodel.VersionKeyword:
			return "", e.fail(method, p.getVersion, name)
		default:
			return "", e.fail(method, p.getUndefined, name)
		}
	}
	if !d.CanRead {
		return "", e.fail(method, p.writeOnly, name)
	}
	for _, req := range d.IndexRequirements {
		n := e.count(req.Collection)
		if req.Index < n {
			continue
		}
		if n == 0 {
			return "", e.fail(method, p.getCollectionEmpty, name, req.Collection, n)
		}
		return "", e.fail(method, p.getIndexRange, name, req.Collection, n)
	}

	if e.version == datamodel.Scorm2004 {
		if v, ok := e.synthesize(name); ok {
			return v, true
		}
	}
	if v, ok := e.site.GetValue(name); ok {
		return v, true
	}
	if d.HasDefault {
		return d.Default, true
	}
	if p.notInitialized.code == scormerr.NoError {
		return "", true
	}
	return "", e.fail(method, p.notInitialized, name)
}

func (e *engine) setValue(method string, rawName, rawValue any) bool {
	defer e.record(method)
	if !e.set(method, rawName, rawValue) {
		return false
	}
	e.succeed()
	return true
}

func (e *engine) set(method string, rawName, rawValue any) bool {
	p := &e.policy
	switch e.status {
	case NotInitialized:
		return e.fail(method, p.setBeforeInit, method, rawName)
	case Terminated:
		return e.fail(method, p.setAfterTerm, method, rawName)
	}
	name, ok := rawName.(string)
	if !ok {
		return e.fail(method, p.argNotString, method)
	}
	if name == "" {
		return e.fail(method, p.setEmptyName)
	}

	d, ok := e.parser.Parse(name)
	if !ok {
		switch e.parser.ClassifyUnknown(name) {
		case datamodel.CountKeyword:
			return e.fail(method, p.setCount, name)
		case datamodel.ChildrenKeyword:
			return e.fail(method, p.setChildren, name)
		case datamodel.VersionKeyword:
			return e.fail(method, p.setVersion, name)
		default:
			return e.fail(method, p.setUndefined, name)
		}
	}
	if d.IsKeyword {
		return e.fail(method, p.keywordSet, name)
	}
	if !d.CanWrite {
		return e.fail(method, p.readOnly, name)
	}
	for _, req := range d.IndexRequirements {
		if n := e.count(req.Collection); req.Index > n {
			return e.fail(method, p.setIndexRange, name, req.Collection, n)
		}
	}
	for _, dep := range d.Dependencies {
		if _, ok := e.site.GetValue(dep); !ok {
			return e.fail(method, p.dependency, name, dep)
		}
	}

	value, ok := stringify(rawValue)
	if !ok {
		return e.fail(method, p.notScalar, name)
	}
	if d.UniqueIn != "" && !e.uniqueID(d, value) {
		return e.fail(method, p.duplicateID, name, value, d.UniqueIn)
	}

	tag := d.Type.Tag
	if d.Type.Derived() {
		sibling, ok := e.site.GetValue(d.Type.Sibling)
		if !ok {
			return e.fail(method, p.typeUnknown, name, d.Type.Sibling)
		}
		tag = d.Type.Resolve(sibling)
		if e.version == datamodel.Scorm2004 {
			if f, ok := e.onSettingValue(d, sibling, value); !ok {
				return e.fail(method, f, name, value, sibling)
			}
		}
	}

	valid, err := e.validator.Validate(value, tag)
	if err != nil {
		log.Error().Err(err).Str("element", name).Msg("descriptor and validator disagree")
		return e.fail(method, p.internal, name)
	}
	if !valid {
		return e.fail(method, p.typeMismatch, name, value, tag)
	}
	if !validate.InRange(value, d.Range) {
		return e.fail(method, p.outOfRange, name, value)
	}

	e.site.SetValue(name, value)
	for _, req := range d.IndexRequirements {
		if n := e.count(req.Collection); req.Index == n {
			e.site.SetValue(req.Collection+countSuffix, strconv.Itoa(n+1))
		}
	}
	return true
}

// count reads a collection's _count without touching the error state.
func (e *engine) count(collection string) int {
	raw, ok := e.site.GetValue(collection + countSuffix)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (e *engine) uniqueID(d datamodel.Descriptor, value string) bool {
	self, _ := d.IndexIn(d.UniqueIn)
	for i := range e.count(d.UniqueIn) {
		if i == self {
			continue
		}
		existing, ok := e.site.GetValue(fmt.Sprintf("%s.%d.id", d.UniqueIn, i))
		if ok && existing == value {
			return false
		}
	}
	return true
}

func (e *engine) lastError() string {
	return e.errs.LastError()
}

func (e *engine) errorString(code any) string {
	return e.errs.ErrorString(fmt.Sprint(code))
}

func (e *engine) diagnostic(code any) string {
	if code == nil {
		return e.errs.Diagnostic("")
	}
	return e.errs.Diagnostic(fmt.Sprint(code))
}

// unknownMethod records a call to a method the API does not have.
func (e *engine) unknownMethod(method string) {
	defer e.record(method)
	e.fail(method, e.policy.unknownMethod, method)
}

// stringify accepts the scalar kinds content may pass to SetValue.
func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	default:
		return "", false
	}
}

func formatFloat(f float64, bits int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, bits), true
}
