// Package apisite holds the per-attempt RTE session: committed and pending values, the
// navigation-validity cache and the binding of the API object to the content host.
package apisite

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/command"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/wire"
)

// Values returned by the navigation-validity queries.
const (
	NavTrue    = "true"
	NavFalse   = "false"
	NavUnknown = "unknown"
)

// Data-model version literals forced on every InitDataModelValues.
const (
	Version12Literal   = "3.4"
	Version2004Literal = "1.0"
)

// Writes to names containing one of these segments may change sequencing outcomes.
var sequencingSegments = []string{
	".interactions.",
	".score.",
	".completion_status.",
	".exit.",
	".success_status.",
	".progress_measure.",
}

var objectiveIDName = regexp.MustCompile(`^cmi\.objectives\.(0|[1-9][0-9]*)\.id$`)

// API is the runtime object exposed to content. Implementations live in package rte.
type API interface {
	Version() datamodel.Version
}

// Factory creates the API object for a site.
type Factory func(*Site) API

// Binder publishes the API object to whatever hosts the content.
type Binder interface {
	Attach(API)
	Detach()
}

// Frameset is the post channel the site hands diffs to. Each method reports whether the
// diff was accepted for delivery.
type Frameset interface {
	CommitDataModel(diff, objectiveIDMap string) bool
	TerminateSession(diff, objectiveIDMap string) bool
	RequestNavigationValidity(diff, objectiveIDMap, cmd, data string) bool
}

type Site struct {
	version   datamodel.Version
	frameset  Frameset
	factory   Factory
	binder    Binder
	committed map[string]string
	pending   map[string]string
	navCache  map[string]string
	required  bool
	api       API
}

// New returns a site for version. frameset and binder may be nil for a detached session.
func New(version datamodel.Version, frameset Frameset, factory Factory, binder Binder) *Site {
	s := &Site{
		version:  version,
		frameset: frameset,
		factory:  factory,
		binder:   binder,
	}
	s.reset()
	return s
}

func (s *Site) Version() datamodel.Version {
	return s.version
}

func (s *Site) reset() {
	s.committed = make(map[string]string)
	s.pending = make(map[string]string)
	s.navCache = make(map[string]string)
	s.api = nil
}

// Init starts a new activity attempt. The API object is attached when the activity needs
// the RTE and detached otherwise.
func (s *Site) Init(rteRequired bool) {
	s.reset()
	s.required = rteRequired
	if s.binder == nil {
		return
	}
	if rteRequired {
		s.binder.Attach(s.API())
		return
	}
	s.binder.Detach()
}

// Required reports whether the current activity uses the RTE, i.e. whether the API
// object is published to content.
func (s *Site) Required() bool {
	return s.required
}

// API returns the current API object, creating it on first use. Init replaces it.
func (s *Site) API() API {
	if s.factory == nil {
		return nil
	}
	if s.api == nil {
		s.api = s.factory(s)
	}
	return s.api
}

// InitDataModelValues loads the committed values for the attempt.
func (s *Site) InitDataModelValues(raw string) error {
	values, err := wire.Decode(raw)
	if err != nil {
		return err
	}
	for name, value := range values {
		s.committed[name] = value
	}
	s.committed["cmi._version"] = s.versionLiteral()
	return nil
}

func (s *Site) versionLiteral() string {
	if s.version == datamodel.Scorm12 {
		return Version12Literal
	}
	return Version2004Literal
}

// GetValue prefers pending over committed values.
func (s *Site) GetValue(name string) (string, bool) {
	if v, ok := s.pending[name]; ok {
		return v, true
	}
	v, ok := s.committed[name]
	return v, ok
}

func (s *Site) SetValue(name, value string) {
	s.pending[name] = value
	if affectsSequencing(name) && len(s.navCache) > 0 {
		log.Debug().Str("element", name).Msg("navigation validity cache cleared")
		clear(s.navCache)
	}
}

func affectsSequencing(name string) bool {
	dotted := name + "."
	for _, seg := range sequencingSegments {
		if strings.Contains(dotted, seg) {
			return true
		}
	}
	return false
}

// HasPending reports whether values changed since the last commit.
func (s *Site) HasPending() bool {
	return len(s.pending) > 0
}

// Snapshot returns the merged view of committed and pending values.
func (s *Site) Snapshot() map[string]string {
	out := make(map[string]string, len(s.committed)+len(s.pending))
	for k, v := range s.committed {
		out[k] = v
	}
	for k, v := range s.pending {
		out[k] = v
	}
	return out
}

// Diff is the commit encoding of the pending values.
func (s *Site) Diff() string {
	return wire.EncodeCommit(s.pending)
}

// ObjectiveIDMap encodes objective id to index for every known objective.
func (s *Site) ObjectiveIDMap() string {
	ids := make(map[string]string)
	for name, value := range s.Snapshot() {
		if m := objectiveIDName.FindStringSubmatch(name); m != nil && value != "" {
			ids[value] = m[1]
		}
	}
	return wire.Encode(ids)
}

func (s *Site) fold() {
	for k, v := range s.pending {
		s.committed[k] = v
	}
	clear(s.pending)
}

// Commit hands the pending diff to the frameset and folds it on acceptance.
func (s *Site) Commit() bool {
	if s.frameset != nil && !s.frameset.CommitDataModel(s.Diff(), s.ObjectiveIDMap()) {
		return false
	}
	s.fold()
	return true
}

// Terminate hands the final diff to the frameset and ends the session.
func (s *Site) Terminate() bool {
	if s.frameset != nil && !s.frameset.TerminateSession(s.Diff(), s.ObjectiveIDMap()) {
		return false
	}
	s.fold()
	return true
}

func (s *Site) IsContinueRequestValid() string {
	return s.navigationValidity(wire.NavContinue, command.IsNavValid, "")
}

func (s *Site) IsPreviousRequestValid() string {
	return s.navigationValidity(wire.NavPrevious, command.IsNavValid, "")
}

func (s *Site) IsChoiceRequestValid(activityID string) string {
	return s.navigationValidity(wire.ChoiceKey(activityID), command.IsChoiceValid, activityID)
}

// navigationValidity answers from the cache or starts a query and returns unknown.
// Content is expected to poll until the LMS answer arrives.
func (s *Site) navigationValidity(key, cmd, data string) string {
	if v, ok := s.navCache[key]; ok {
		return v
	}
	s.navCache[key] = NavUnknown
	if s.frameset == nil {
		return NavUnknown
	}
	if s.frameset.RequestNavigationValidity(s.Diff(), s.ObjectiveIDMap(), cmd, data) {
		s.fold()
	} else {
		delete(s.navCache, key)
	}
	return NavUnknown
}

// SetNavigationValidity applies an LMS answer. Outstanding queries the answer does not
// cover are dropped so the next poll asks again.
func (s *Site) SetNavigationValidity(raw string) error {
	answers, err := wire.DecodeNavValidity(raw)
	if err != nil {
		return err
	}
	for key, v := range s.navCache {
		if v == NavUnknown {
			delete(s.navCache, key)
		}
	}
	for key, v := range answers {
		s.navCache[key] = v
	}
	return nil
}
