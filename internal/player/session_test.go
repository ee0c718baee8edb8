package player

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/rtectl/internal/bridge"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/frameset"
	"github.com/danmuck/rtectl/internal/lms"
	"github.com/danmuck/rtectl/internal/testutil/testlog"
	"github.com/danmuck/rtectl/internal/transport/httpform"
)

func startLMS(t *testing.T) (*lms.Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := lms.New(lms.Config{
		Name: "lms-test",
		Course: lms.Course{
			ID:      "course-1",
			Learner: lms.Learner{ID: "learner-7", Name: "Ada"},
			Activities: []lms.Activity{
				{ID: "intro", RteRequired: true},
				{ID: "quiz", RteRequired: true, LaunchData: "mode=quiz"},
				{ID: "legacy", RteRequired: true, Version: datamodel.Scorm12},
			},
		},
	})
	require.NoError(t, err)
	s.RegisterRoutes()
	srv := httptest.NewServer(s.HTTPRouter())
	t.Cleanup(srv.Close)
	return s, srv
}

func startSession(t *testing.T, lmsURL string) (*Session, context.Context) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	tcfg := httpform.DefaultConfig()
	tcfg.LMSAddress = lmsURL
	s, err := New(ctx, Options{
		Frameset:  frameset.DefaultOptions(),
		Transport: tcfg,
		Bridge:    bridge.Config{Name: "bridge-test"},
	})
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.WaitReady(ctx))
	return s, ctx
}

func invoke(t *testing.T, ctx context.Context, s *Session, method string, args ...any) string {
	t.Helper()
	out, err := s.Invoke(ctx, method, args...)
	require.NoError(t, err)
	return out
}

func do(t *testing.T, ctx context.Context, s *Session, fn func(m *frameset.Manager) bool) bool {
	t.Helper()
	var ok bool
	require.NoError(t, s.Do(ctx, func(m *frameset.Manager) { ok = fn(m) }))
	return ok
}

func TestSessionEndToEnd(t *testing.T) {
	testlog.Start(t)
	server, srv := startLMS(t)
	s, ctx := startSession(t, srv.URL)

	activity, attempt, err := s.Activity(ctx)
	require.NoError(t, err)
	require.Equal(t, "intro", activity)
	require.NotEmpty(t, attempt)

	require.Equal(t, "true", invoke(t, ctx, s, "Initialize", ""))
	require.Equal(t, "learner-7", invoke(t, ctx, s, "GetValue", "cmi.learner_id"))
	require.Equal(t, "true", invoke(t, ctx, s, "SetValue", "cmi.location", "p1"))
	require.Equal(t, "true", invoke(t, ctx, s, "Commit", ""))
	require.NoError(t, s.WaitReady(ctx))

	info, ok := server.Attempt(attempt)
	require.True(t, ok)
	require.Equal(t, "p1", info.DataModel["intro"]["cmi.location"])

	require.Equal(t, "true", invoke(t, ctx, s, "SetValue", "adl.nav.request", "continue"))
	require.Equal(t, "true", invoke(t, ctx, s, "Terminate", ""))
	require.NoError(t, s.WaitReady(ctx))
	activity, _, err = s.Activity(ctx)
	require.NoError(t, err)
	require.Equal(t, "quiz", activity)

	require.Equal(t, "true", invoke(t, ctx, s, "Initialize", ""))
	require.Equal(t, "mode=quiz", invoke(t, ctx, s, "GetValue", "cmi.launch_data"))

	require.True(t, do(t, ctx, s, func(m *frameset.Manager) bool { return m.Next() }))
	require.NoError(t, s.WaitReady(ctx))
	activity, _, err = s.Activity(ctx)
	require.NoError(t, err)
	require.Equal(t, "legacy", activity)
	require.Equal(t, "true", invoke(t, ctx, s, "LMSInitialize", ""))
	require.Equal(t, "learner-7", invoke(t, ctx, s, "LMSGetValue", "cmi.core.student_id"))

	require.True(t, do(t, ctx, s, func(m *frameset.Manager) bool { return m.Submit() }))
	select {
	case <-s.Done():
	case <-ctx.Done():
		t.Fatal("session never closed")
	}
	require.Empty(t, s.Alerts())
}

func TestSessionRevisitKeepsCommittedData(t *testing.T) {
	testlog.Start(t)
	_, srv := startLMS(t)
	s, ctx := startSession(t, srv.URL)

	require.Equal(t, "true", invoke(t, ctx, s, "Initialize", ""))
	require.Equal(t, "true", invoke(t, ctx, s, "SetValue", "cmi.objectives.0.id", "obj-a"))
	require.Equal(t, "true", invoke(t, ctx, s, "SetValue", "cmi.exit", "suspend"))
	require.Equal(t, "true", invoke(t, ctx, s, "Terminate", ""))
	require.NoError(t, s.WaitReady(ctx))

	require.True(t, do(t, ctx, s, func(m *frameset.Manager) bool { return m.TOCChoice("intro") }))
	require.NoError(t, s.WaitReady(ctx))
	require.Equal(t, "true", invoke(t, ctx, s, "Initialize", ""))
	require.Equal(t, "resume", invoke(t, ctx, s, "GetValue", "cmi.entry"))
	require.Equal(t, "1", invoke(t, ctx, s, "GetValue", "cmi.objectives._count"))
	require.Equal(t, "obj-a", invoke(t, ctx, s, "GetValue", "cmi.objectives.0.id"))
}

func TestInvokeWithoutAPI(t *testing.T) {
	testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tcfg := httpform.DefaultConfig()
	tcfg.LMSAddress = "http://127.0.0.1:1"
	s, err := New(ctx, Options{Frameset: frameset.DefaultOptions(), Transport: tcfg})
	require.NoError(t, err)
	go s.loop.Run(ctx)
	_, err = s.Invoke(ctx, "Initialize", "")
	require.ErrorIs(t, err, ErrNoAPI)
}
