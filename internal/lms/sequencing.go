package lms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/command"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/observability"
	"github.com/danmuck/rtectl/internal/wire"
)

var (
	ErrNoPrevious       = errors.New("lms: no previous activity")
	ErrAttemptClosed    = errors.New("lms: attempt closed")
	ErrUnsupportedNav   = errors.New("lms: unsupported navigation request")
	ErrMissingChoiceArg = errors.New("lms: choice without activity id")
)

const navRequest = "adl.nav.request"

var targetRequest = regexp.MustCompile(`^\{target=([^}]+)\}(choice|jump)$`)

// launchNames are the version-specific elements the LMS fills on delivery.
type launchNames struct {
	learnerID   string
	learnerName string
	mode        string
	credit      string
	entry       string
	exit        string
	sessionTime string
}

var launch = map[datamodel.Version]launchNames{
	datamodel.Scorm12: {
		learnerID:   "cmi.core.student_id",
		learnerName: "cmi.core.student_name",
		mode:        "cmi.core.lesson_mode",
		credit:      "cmi.core.credit",
		entry:       "cmi.core.entry",
		exit:        "cmi.core.exit",
		sessionTime: "cmi.core.session_time",
	},
	datamodel.Scorm2004: {
		learnerID:   "cmi.learner_id",
		learnerName: "cmi.learner_name",
		mode:        "cmi.mode",
		credit:      "cmi.credit",
		entry:       "cmi.entry",
		exit:        "cmi.exit",
		sessionTime: "cmi.session_time",
	},
}

// result collects what one post did to the attempt.
type result struct {
	deliver  bool
	validity map[string]bool
	errs     []string
}

func newResult(deliver bool) *result {
	return &result{deliver: deliver, validity: make(map[string]bool)}
}

func (r *result) fail(err error) {
	r.errs = append(r.errs, err.Error())
}

// process applies one hidden-form post: the data-model diff first, then each command in
// order. The returned page is what the post frame loads.
func (s *Server) process(a *Attempt, fields wire.PostFields) wire.Page {
	r := newResult(false)
	if a.Closed {
		r.fail(ErrAttemptClosed)
		return s.page(a, r)
	}
	entries, err := command.ParseCommands(fields.Command, fields.CommandData)
	if err != nil {
		r.fail(err)
		return s.page(a, r)
	}

	act := s.course.Activities[a.Current]
	if fields.DataModel != "" && !s.course.Review {
		if err := applyDiff(a.values(act.ID), fields.DataModel); err != nil {
			r.fail(err)
		}
	}
	if fields.ObjectiveIDMap != "" {
		ids, err := wire.Decode(fields.ObjectiveIDMap)
		if err != nil {
			r.fail(err)
		} else {
			a.ObjectiveIDs[act.ID] = ids
		}
	}

	for _, e := range entries {
		ok := s.apply(a, e, r)
		a.Commands++
		observability.RecordLMSCommand(e.Command, ok)
		if a.Closed {
			break
		}
	}
	a.Updated = s.now()
	return s.page(a, r)
}

func (s *Server) apply(a *Attempt, e command.Entry, r *result) bool {
	var data string
	if e.Data != nil {
		data = *e.Data
	}
	switch e.Command {
	case command.Save, command.IsNavValid:
		return true
	case command.Terminate:
		return s.terminate(a, r)
	case command.Next:
		return s.move(a, a.Current+1, r)
	case command.Previous:
		if a.Current == 0 {
			r.fail(ErrNoPrevious)
			return false
		}
		return s.move(a, a.Current-1, r)
	case command.Choice, command.TOCChoice:
		return s.choose(a, data, r)
	case command.IsChoiceValid:
		_, ok := s.course.index(data)
		r.validity[wire.ChoiceKey(data)] = ok
		return true
	case command.Submit:
		a.Submitted = true
		s.close(a, r)
		return true
	}

	ds, err := command.ParseDatasourceCommand(e.Command)
	if err != nil {
		r.fail(err)
		return false
	}
	log.Info().
		Str("attempt", a.ID).
		Int("datasource", ds.Index).
		Strs("args", ds.Args).
		Msg("datasource command ignored")
	return true
}

func (s *Server) choose(a *Attempt, id string, r *result) bool {
	if id == "" {
		r.fail(ErrMissingChoiceArg)
		return false
	}
	i, ok := s.course.index(id)
	if !ok {
		r.fail(fmt.Errorf("%w: %s", ErrUnknownActivity, id))
		return false
	}
	return s.move(a, i, r)
}

// move delivers activity i. Moving past the last activity ends the course.
func (s *Server) move(a *Attempt, i int, r *result) bool {
	if i >= len(s.course.Activities) {
		s.close(a, r)
		return true
	}
	a.Current = i
	r.deliver = true
	return true
}

func (s *Server) close(a *Attempt, r *result) {
	a.Closed = true
	r.deliver = false
	log.Info().Str("attempt", a.ID).Bool("submitted", a.Submitted).Msg("attempt closed")
}

// terminate ends the current SCO session and runs the navigation request it left behind.
func (s *Server) terminate(a *Attempt, r *result) bool {
	act := s.course.Activities[a.Current]
	names := launch[act.Version]
	values := a.values(act.ID)
	a.Suspended[act.ID] = values[names.exit] == "suspend"

	req := values[navRequest]
	delete(values, navRequest)
	switch req {
	case "", "_none_", "exit", "abandon":
		return true
	case "continue":
		return s.move(a, a.Current+1, r)
	case "previous":
		if a.Current == 0 {
			r.fail(ErrNoPrevious)
			return false
		}
		return s.move(a, a.Current-1, r)
	case "exitAll", "abandonAll", "suspendAll":
		s.close(a, r)
		return true
	}
	if m := targetRequest.FindStringSubmatch(req); m != nil {
		return s.choose(a, m[1], r)
	}
	r.fail(fmt.Errorf("%w: %s", ErrUnsupportedNav, req))
	return false
}

func (s *Server) page(a *Attempt, r *result) wire.Page {
	act := s.course.Activities[a.Current]
	next := !a.Closed && a.Current < len(s.course.Activities)-1
	prev := !a.Closed && a.Current > 0
	r.validity[wire.NavContinue] = next
	r.validity[wire.NavPrevious] = prev

	p := wire.Page{
		ActivityID:   act.ID,
		AttemptID:    a.ID,
		View:         s.view(),
		RteRequired:  act.RteRequired,
		RteVersion:   string(act.Version),
		NavValidity:  wire.EncodeNavValidity(r.validity),
		ShowNext:     next,
		ShowPrevious: prev,
		Close:        a.Closed,
		Error:        strings.Join(r.errs, "; "),
	}
	if r.deliver && !a.Closed {
		p.ContentURL = act.URL
		p.DataModel = wire.Encode(s.launchModel(a, act))
	}
	return p
}

func (s *Server) view() string {
	if s.course.Review {
		return "Review"
	}
	return "Execute"
}

// launchModel is the committed data of act plus the values the LMS owns.
func (s *Server) launchModel(a *Attempt, act Activity) map[string]string {
	stored := a.Data[act.ID]
	values := make(map[string]string, len(stored)+6)
	for k, v := range stored {
		values[k] = v
	}
	names := launch[act.Version]
	delete(values, names.exit)
	delete(values, names.sessionTime)
	delete(values, navRequest)

	mode, credit := "normal", "credit"
	if s.course.Review {
		mode, credit = "review", "no-credit"
	}
	entry := "ab-initio"
	switch {
	case a.Suspended[act.ID]:
		entry = "resume"
	case len(stored) > 0:
		entry = ""
	}
	values[names.learnerID] = s.course.Learner.ID
	values[names.learnerName] = s.course.Learner.Name
	values[names.mode] = mode
	values[names.credit] = credit
	values[names.entry] = entry
	values["cmi.launch_data"] = act.LaunchData
	return values
}

// applyDiff merges a commit into values and recomputes every collection's _count.
func applyDiff(values map[string]string, diff string) error {
	changed, err := wire.Decode(diff)
	if err != nil {
		return err
	}
	for name, value := range changed {
		values[name] = value
	}
	recount(values)
	return nil
}

func recount(values map[string]string) {
	counts := make(map[string]int)
	for name := range values {
		parts := strings.Split(name, ".")
		for i := 1; i < len(parts)-1; i++ {
			n, err := strconv.Atoi(parts[i])
			if err != nil || strconv.Itoa(n) != parts[i] {
				continue
			}
			collection := strings.Join(parts[:i], ".")
			counts[collection] = max(counts[collection], n+1)
		}
	}
	for collection, n := range counts {
		values[collection+"._count"] = strconv.Itoa(n)
	}
}
