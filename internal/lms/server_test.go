package lms

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/testutil/testlog"
	"github.com/danmuck/rtectl/internal/wire"
)

func testCourse() Course {
	return Course{
		ID:      "course-1",
		Learner: Learner{ID: "learner-7", Name: "Ada"},
		Activities: []Activity{
			{ID: "intro", RteRequired: true},
			{ID: "quiz", RteRequired: true, LaunchData: "mode=quiz"},
			{ID: "legacy", RteRequired: true, Version: datamodel.Scorm12},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)
	s, err := New(Config{Name: "lms-test", Course: testCourse()})
	require.NoError(t, err)
	ids := 0
	s.newID = func() string {
		ids++
		return "attempt-" + strconv.Itoa(ids)
	}
	s.RegisterRoutes()
	return s
}

func start(t *testing.T, s *Server) wire.Page {
	t.Helper()
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, FramesetPath, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	page, err := wire.ParsePage(rr.Body.String())
	require.NoError(t, err)
	return page
}

func post(t *testing.T, s *Server, fields wire.PostFields) (int, wire.Page) {
	t.Helper()
	fields.IncludeModel = true
	req := httptest.NewRequest(http.MethodPost, PostPath, strings.NewReader(fields.Values().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		return rr.Code, wire.Page{}
	}
	page, err := wire.ParsePage(rr.Body.String())
	require.NoError(t, err)
	return rr.Code, page
}

func TestCourseValidate(t *testing.T) {
	c := Course{}
	require.ErrorIs(t, c.Validate(), ErrNoActivities)

	c = Course{Activities: []Activity{{ID: "a"}, {ID: "a"}}}
	require.ErrorIs(t, c.Validate(), ErrDuplicateActivity)

	c = Course{Activities: []Activity{{ID: "a", Version: "3.0"}}}
	require.ErrorIs(t, c.Validate(), datamodel.ErrUnknownVersion)

	c = Course{Activities: []Activity{{ID: " a "}}}
	require.NoError(t, c.Validate())
	require.Equal(t, "a", c.Activities[0].ID)
	require.Equal(t, datamodel.Scorm2004, c.Activities[0].Version)
	require.Equal(t, "/content/a", c.Activities[0].URL)
}

func TestFramesetStartsAttempt(t *testing.T) {
	s := newTestServer(t)
	page := start(t, s)

	require.Equal(t, "intro", page.ActivityID)
	require.Equal(t, "attempt-1", page.AttemptID)
	require.Equal(t, "Execute", page.View)
	require.Equal(t, "2004", page.RteVersion)
	require.Equal(t, "/content/intro", page.ContentURL)
	require.True(t, page.ShowNext)
	require.False(t, page.ShowPrevious)

	model, err := wire.Decode(page.DataModel)
	require.NoError(t, err)
	require.Equal(t, "learner-7", model["cmi.learner_id"])
	require.Equal(t, "Ada", model["cmi.learner_name"])
	require.Equal(t, "ab-initio", model["cmi.entry"])
	require.Equal(t, "normal", model["cmi.mode"])

	nav, err := wire.DecodeNavValidity(page.NavValidity)
	require.NoError(t, err)
	require.Equal(t, "true", nav[wire.NavContinue])
	require.Equal(t, "false", nav[wire.NavPrevious])
}

func TestPostAppliesDiffThenNavigates(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)

	code, page := post(t, s, wire.PostFields{
		Command:     "S;N;",
		CommandData: "@C@C",
		AttemptID:   first.AttemptID,
		DataModel:   "cmi.location@Ep3@Ncmi.interactions.1.id@Eq2@Ncmi.interactions.0.objectives.0.id@Eo1@N",
	})
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, page.Error)
	require.Equal(t, "quiz", page.ActivityID)
	require.Equal(t, "/content/quiz", page.ContentURL)
	require.True(t, page.ShowPrevious)

	model, err := wire.Decode(page.DataModel)
	require.NoError(t, err)
	require.Equal(t, "mode=quiz", model["cmi.launch_data"])

	info, ok := s.Attempt(first.AttemptID)
	require.True(t, ok)
	intro := info.DataModel["intro"]
	require.Equal(t, "p3", intro["cmi.location"])
	require.Equal(t, "2", intro["cmi.interactions._count"])
	require.Equal(t, "1", intro["cmi.interactions.0.objectives._count"])
	require.Equal(t, 2, info.Commands)
}

func TestRevisitedActivityCarriesStoredData(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)
	post(t, s, wire.PostFields{Command: "N;", CommandData: "@C", AttemptID: first.AttemptID, DataModel: "cmi.location@Ep9@Ncmi.exit@Esuspend@N"})
	_, page := post(t, s, wire.PostFields{Command: "C;", CommandData: "intro@C", AttemptID: first.AttemptID})
	require.Equal(t, "intro", page.ActivityID)
	model, err := wire.Decode(page.DataModel)
	require.NoError(t, err)
	require.Equal(t, "p9", model["cmi.location"])
	require.Equal(t, "", model["cmi.entry"])
	_, hasExit := model["cmi.exit"]
	require.False(t, hasExit, "write-only exit is not redelivered")
}

func TestTerminateRunsNavigationRequest(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)

	_, page := post(t, s, wire.PostFields{
		Command:     "T;",
		CommandData: "@C",
		AttemptID:   first.AttemptID,
		DataModel:   "cmi.exit@Esuspend@Nadl.nav.request@E{target=legacy}choice@N",
	})
	require.Empty(t, page.Error)
	require.Equal(t, "legacy", page.ActivityID)
	require.Equal(t, "1.2", page.RteVersion)
	model, err := wire.Decode(page.DataModel)
	require.NoError(t, err)
	require.Equal(t, "learner-7", model["cmi.core.student_id"])
	require.Equal(t, "ab-initio", model["cmi.core.entry"])

	_, page = post(t, s, wire.PostFields{Command: "C;", CommandData: "intro@C", AttemptID: first.AttemptID})
	model, err = wire.Decode(page.DataModel)
	require.NoError(t, err)
	require.Equal(t, "resume", model["cmi.entry"])
	_, hasRequest := model["adl.nav.request"]
	require.False(t, hasRequest)
}

func TestTerminateWithoutRequestStays(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)
	_, page := post(t, s, wire.PostFields{Command: "T;", CommandData: "@C", AttemptID: first.AttemptID})
	require.Equal(t, "intro", page.ActivityID)
	require.Empty(t, page.ContentURL)
	require.False(t, page.Close)
}

func TestNavigationBoundaries(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)

	_, page := post(t, s, wire.PostFields{Command: "P;", CommandData: "@C", AttemptID: first.AttemptID})
	require.Contains(t, page.Error, ErrNoPrevious.Error())
	require.Equal(t, "intro", page.ActivityID)

	_, page = post(t, s, wire.PostFields{Command: "C;", CommandData: "nowhere@C", AttemptID: first.AttemptID})
	require.Contains(t, page.Error, ErrUnknownActivity.Error())

	_, page = post(t, s, wire.PostFields{Command: "C;N;", CommandData: "legacy@C@C", AttemptID: first.AttemptID})
	require.True(t, page.Close)
	require.Empty(t, page.ContentURL)

	_, page = post(t, s, wire.PostFields{Command: "S;", CommandData: "@C", AttemptID: first.AttemptID})
	require.Contains(t, page.Error, ErrAttemptClosed.Error())
	require.True(t, page.Close)
}

func TestValidityQueries(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)
	_, page := post(t, s, wire.PostFields{Command: "V;V;NV;", CommandData: "quiz@Cghost@C@C", AttemptID: first.AttemptID})
	nav, err := wire.DecodeNavValidity(page.NavValidity)
	require.NoError(t, err)
	require.Equal(t, "true", nav[wire.ChoiceKey("quiz")])
	require.Equal(t, "false", nav[wire.ChoiceKey("ghost")])
	require.Equal(t, "true", nav[wire.NavContinue])
	require.Empty(t, page.ContentURL)
}

func TestSubmitClosesAttempt(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)
	_, page := post(t, s, wire.PostFields{Command: "DS;", CommandData: "@C", AttemptID: first.AttemptID})
	require.True(t, page.Close)
	info, ok := s.Attempt(first.AttemptID)
	require.True(t, ok)
	require.True(t, info.Submitted)
}

func TestDatasourceAndMalformedCommands(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)
	_, page := post(t, s, wire.PostFields{Command: "2|a,b;", CommandData: "@C", AttemptID: first.AttemptID})
	require.Empty(t, page.Error)

	_, page = post(t, s, wire.PostFields{Command: "N", AttemptID: first.AttemptID})
	require.NotEmpty(t, page.Error)

	_, page = post(t, s, wire.PostFields{Command: "bogus;", CommandData: "@C", AttemptID: first.AttemptID})
	require.NotEmpty(t, page.Error)
}

func TestUnknownAttemptRejected(t *testing.T) {
	s := newTestServer(t)
	code, _ := post(t, s, wire.PostFields{Command: "N;", CommandData: "@C", AttemptID: "missing"})
	require.Equal(t, http.StatusNotFound, code)

	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/lms/attempts/missing", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusAndPlaceholderRoutes(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)

	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/lms/attempts", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Attempts []AttemptInfo `json:"attempts"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Attempts, 1)
	require.Equal(t, first.AttemptID, body.Attempts[0].ID)

	rr = httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/content/quiz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "<title>quiz</title>")

	rr = httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestResumeAttemptByID(t *testing.T) {
	s := newTestServer(t)
	first := start(t, s)
	post(t, s, wire.PostFields{Command: "N;", CommandData: "@C", AttemptID: first.AttemptID})

	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, FramesetPath+"?attempt="+first.AttemptID, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	page, err := wire.ParsePage(rr.Body.String())
	require.NoError(t, err)
	require.Equal(t, "quiz", page.ActivityID)
	require.Equal(t, "/content/quiz", page.ContentURL)
}

func TestRecount(t *testing.T) {
	values := map[string]string{
		"cmi.objectives.0.id":                "a",
		"cmi.objectives.4.id":                "b",
		"cmi.interactions.01.id":             "not an index",
		"cmi.interactions.2.objectives.0.id": "x",
	}
	recount(values)
	require.Equal(t, "5", values["cmi.objectives._count"])
	require.Equal(t, "3", values["cmi.interactions._count"])
	require.Equal(t, "1", values["cmi.interactions.2.objectives._count"])
}
