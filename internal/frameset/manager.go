package frameset

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/command"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/observability"
	"github.com/danmuck/rtectl/internal/wire"
)

const (
	PostSubmitted = "submitted"
	PostFailed    = "failed"
	PostAbandoned = "abandoned"
)

// contentLoadsPerClear covers the blank clearing page and the page the LMS sends back.
const contentLoadsPerClear = 2

type Options struct {
	PostFrame      Frame
	ClearURL       string
	Retry          RetryPolicy
	RequiredFrames []Frame
}

func DefaultOptions() Options {
	return Options{
		PostFrame:      FrameHidden,
		ClearURL:       "about:blank",
		Retry:          DefaultRetryPolicy(),
		RequiredFrames: []Frame{FrameTitle, FrameTOC, FrameNavOpen, FrameNavClosed, FrameHidden},
	}
}

// Manager owns one player session. It is not safe for concurrent use; run it on a Loop.
type Manager struct {
	opts      Options
	transport Transport
	host      Host
	sched     Scheduler
	newSite   SiteFactory
	site      *apisite.Site

	queue          command.Queue
	dataModel      string
	objectiveIDMap string

	activityID   string
	attemptID    string
	view         View
	showNext     bool
	showPrevious bool

	registered     map[Frame]bool
	forms          map[Frame]Form
	contentPending int
	postAfterClear bool
	held           []command.Entry
	postInProgress bool
	retryAttempt   int
	closing        bool

	currentTOC  string
	previousTOC string
}

func New(opts Options, transport Transport, host Host, sched Scheduler, newSite SiteFactory) *Manager {
	return &Manager{
		opts:       opts,
		transport:  transport,
		host:       host,
		sched:      sched,
		newSite:    newSite,
		view:       ViewExecute,
		registered: make(map[Frame]bool),
		forms:      make(map[Frame]Form),
	}
}

func (m *Manager) Site() *apisite.Site { return m.site }
func (m *Manager) ActivityID() string { return m.activityID }
func (m *Manager) AttemptID() string { return m.attemptID }
func (m *Manager) View() View { return m.view }
func (m *Manager) PostInProgress() bool { return m.postInProgress }
func (m *Manager) Closing() bool { return m.closing }

// RegisterFrame records that frame finished loading. form may be nil for frames that
// carry no post form.
func (m *Manager) RegisterFrame(frame Frame, form Form) {
	m.registered[frame] = true
	if form != nil {
		m.forms[frame] = form
	}
	log.Debug().Str("frame", string(frame)).Msg("frame registered")
}

// FramesRegistered is the barrier before the first navigation.
func (m *Manager) FramesRegistered() bool {
	for _, f := range m.opts.RequiredFrames {
		if !m.registered[f] {
			return false
		}
	}
	return true
}

// ReadyForNavigation reports whether a navigation command would be accepted.
func (m *Manager) ReadyForNavigation() bool {
	return m.FramesRegistered() && m.contentPending == 0
}

// WaitForContentCompleted gates navigation until the content frame loads n more times.
func (m *Manager) WaitForContentCompleted(n int) {
	m.contentPending = n
}

// OnContentLoaded is called for every content-frame load.
func (m *Manager) OnContentLoaded() {
	if m.contentPending > 0 {
		m.contentPending--
	}
	if m.postAfterClear {
		m.postAfterClear = false
		m.queue.Append(m.held...)
		m.held = nil
		m.DoPost()
	}
}

func (m *Manager) Next() bool {
	return m.navigate(command.Next, nil)
}

func (m *Manager) Previous() bool {
	return m.navigate(command.Previous, nil)
}

func (m *Manager) Choice(activityID string) bool {
	return m.navigate(command.Choice, &activityID)
}

// TOCChoice is a choice from the table of contents that reloads the activity even when
// it is the current one.
func (m *Manager) TOCChoice(activityID string) bool {
	return m.navigate(command.TOCChoice, &activityID)
}

// Submit asks the LMS to close the attempt as complete.
func (m *Manager) Submit() bool {
	return m.navigate(command.Submit, nil)
}

// navigate queues a content-replacing command. Requests while not ready are dropped.
func (m *Manager) navigate(cmd string, data *string) bool {
	if !m.ReadyForNavigation() {
		log.Debug().Str("command", cmd).Msg("navigation dropped, frameset not ready")
		return false
	}
	if data != nil {
		m.queue.SetCommandWithData(cmd, *data)
		m.previousTOC = m.currentTOC
		m.currentTOC = *data
		m.host.SetTOCSelection(*data)
	} else {
		m.queue.SetCommand(cmd)
	}
	m.ClearContentFrameAndPost()
	return true
}

// Save commits pending values through the RTE when one is active, else posts a bare save.
func (m *Manager) Save() bool {
	if m.site != nil && m.site.Required() {
		return m.site.Commit()
	}
	m.queue.SetCommand(command.Save)
	m.postUnlessClearing()
	return true
}

// Close latches the closing state; the host closes once no commands remain.
func (m *Manager) Close() {
	m.closing = true
	if !m.postInProgress && !m.postAfterClear && !m.queue.HasCommands() {
		m.host.Close()
	}
}

// ClearContentFrameAndPost blanks the content frame before posting so the content's
// unload handlers finish before the LMS sees the command. The navigation command is held
// back meanwhile: whatever the unloading content commits or terminates is posted ahead of
// it, in the same post, so the LMS applies it to the activity that produced it.
func (m *Manager) ClearContentFrameAndPost() {
	if m.postInProgress || m.postAfterClear {
		return
	}
	if m.opts.PostFrame != FrameHidden {
		m.DoPost()
		return
	}
	m.WaitForContentCompleted(contentLoadsPerClear)
	if err := m.transport.Navigate(FrameContent, m.opts.ClearURL); err != nil {
		log.Warn().Err(err).Msg("content frame clear failed")
		m.WaitForContentCompleted(0)
		m.DoPost()
		return
	}
	m.held = m.queue.Entries()
	m.queue.Clear()
	m.postAfterClear = true
}

// DoPost submits the queued commands. Only one post is in flight at a time.
func (m *Manager) DoPost() {
	if m.postInProgress {
		return
	}
	m.retryAttempt = 0
	m.postInProgress = true
	m.attemptPost()
}

func (m *Manager) attemptPost() {
	form, ok := m.forms[m.opts.PostFrame]
	if !ok {
		form, ok = m.transport.LocateForm(m.opts.PostFrame)
	}
	if !ok {
		m.retryAttempt++
		if m.opts.Retry.Exhausted(m.retryAttempt) {
			log.Warn().Int("attempts", m.retryAttempt-1).Str("frame", string(m.opts.PostFrame)).Msg("post form never appeared")
			m.postInProgress = false
			observability.RecordPost(PostAbandoned)
			return
		}
		observability.RecordFormRetry()
		m.sched.AfterFunc(m.opts.Retry.NextDelay(m.retryAttempt), m.retryPost)
		return
	}

	fields := wire.PostFields{
		Command:        m.queue.Commands(),
		CommandData:    m.queue.CommandData(),
		AttemptID:      m.attemptID,
		DataModel:      m.dataModel,
		ObjectiveIDMap: m.objectiveIDMap,
		IncludeModel:   m.view == ViewExecute,
	}
	if err := form.Submit(fields); err != nil {
		log.Error().Err(err).Str("command", fields.Command).Msg("post submit failed")
		m.postInProgress = false
		m.contentPending = 0
		if m.previousTOC != m.currentTOC {
			m.currentTOC = m.previousTOC
			m.host.SetTOCSelection(m.previousTOC)
		}
		m.host.Alert(fmt.Sprintf("Unable to contact the server: %v", err))
		observability.RecordPost(PostFailed)
		return
	}

	log.Debug().Str("command", fields.Command).Str("attempt", m.attemptID).Msg("post submitted")
	m.queue.Clear()
	m.dataModel = ""
	m.objectiveIDMap = ""
	m.retryAttempt = 0
	m.registered[m.opts.PostFrame] = false
	delete(m.forms, m.opts.PostFrame)
	observability.RecordPost(PostSubmitted)
}

func (m *Manager) retryPost() {
	if !m.postInProgress {
		return
	}
	m.attemptPost()
}

// OnPostFrameLoaded handles the LMS answer loading into the post frame.
func (m *Manager) OnPostFrameLoaded(form Form, page wire.Page) {
	m.RegisterFrame(m.opts.PostFrame, form)
	m.ApplyServerResponse(page)
}

// ApplyServerResponse applies an LMS page and completes the post.
func (m *Manager) ApplyServerResponse(page wire.Page) {
	if page.Error != "" {
		m.host.Alert(page.Error)
	}
	// A content URL always starts a fresh SCO session, even for the same activity.
	changed := page.ActivityID != m.activityID || page.AttemptID != m.attemptID || page.ContentURL != ""
	m.activityID = page.ActivityID
	m.attemptID = page.AttemptID
	if page.View != "" {
		m.view = View(page.View)
	}
	m.showNext = page.ShowNext
	m.showPrevious = page.ShowPrevious
	m.host.ShowNavigation(m.showNext, m.showPrevious)

	if changed {
		m.loadActivity(page)
	}
	if page.NavValidity != "" && m.site != nil {
		if err := m.site.SetNavigationValidity(page.NavValidity); err != nil {
			log.Warn().Err(err).Msg("navigation validity ignored")
		}
	}
	if page.ContentURL != "" {
		if err := m.transport.Navigate(FrameContent, page.ContentURL); err != nil {
			log.Error().Err(err).Str("url", page.ContentURL).Msg("content navigation failed")
			m.contentPending = 0
		}
	} else if m.contentPending > 0 && !m.postAfterClear {
		// Nothing will load into the cleared frame.
		m.contentPending = 0
	}
	if page.Close {
		m.closing = true
	}
	m.PostIsComplete()
}

func (m *Manager) loadActivity(page wire.Page) {
	version := datamodel.Version(page.RteVersion)
	if !version.Valid() {
		version = datamodel.Scorm2004
	}
	if m.site == nil || m.site.Version() != version {
		m.site = m.newSite(version, m)
	}
	m.site.Init(page.RteRequired)
	if err := m.site.InitDataModelValues(page.DataModel); err != nil {
		log.Error().Err(err).Str("activity", page.ActivityID).Msg("data model rejected")
	}
	m.currentTOC = page.ActivityID
	m.previousTOC = page.ActivityID
	m.host.SetTOCSelection(page.ActivityID)
	log.Info().
		Str("activity", page.ActivityID).
		Str("attempt", page.AttemptID).
		Str("version", string(version)).
		Bool("rte", page.RteRequired).
		Msg("activity loaded")
}

// PostIsComplete ends the in-flight post and flushes commands queued meanwhile.
func (m *Manager) PostIsComplete() {
	m.postInProgress = false
	if m.queue.HasCommands() {
		m.DoPost()
		return
	}
	if m.closing {
		m.host.Close()
	}
}

// CommitDataModel queues a save carrying diff. It implements apisite.Frameset.
func (m *Manager) CommitDataModel(diff, objectiveIDMap string) bool {
	m.buffer(diff, objectiveIDMap)
	m.queue.SetCommand(command.Save)
	m.postUnlessClearing()
	return true
}

// TerminateSession queues the final diff with a terminate command.
func (m *Manager) TerminateSession(diff, objectiveIDMap string) bool {
	m.buffer(diff, objectiveIDMap)
	m.queue.SetCommand(command.Terminate)
	m.postUnlessClearing()
	return true
}

// RequestNavigationValidity posts the diff with a validity query; the answer comes back
// in the page's nav validity field.
func (m *Manager) RequestNavigationValidity(diff, objectiveIDMap, cmd, data string) bool {
	m.buffer(diff, objectiveIDMap)
	if data == "" {
		m.queue.SetCommand(cmd)
	} else {
		m.queue.SetCommandWithData(cmd, data)
	}
	m.postUnlessClearing()
	return true
}

// postUnlessClearing posts now, or leaves the queue for OnContentLoaded while the
// content frame is being cleared.
func (m *Manager) postUnlessClearing() {
	if m.postAfterClear {
		return
	}
	m.DoPost()
}

// buffer appends diff records; later records win when the LMS decodes them.
func (m *Manager) buffer(diff, objectiveIDMap string) {
	m.dataModel += diff
	if objectiveIDMap != "" {
		m.objectiveIDMap = objectiveIDMap
	}
}

// Pending returns the queued commands, for status endpoints.
func (m *Manager) Pending() []command.Entry {
	return append(m.queue.Entries(), m.held...)
}

var _ apisite.Frameset = (*Manager)(nil)
