// Package frameset drives the player frameset: frame readiness, the command queue, the
// clear-then-post protocol and the LMS responses that load the next activity.
package frameset

import (
	"time"

	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/wire"
)

type Frame string

const (
	FrameTitle     Frame = "frameTitle"
	FrameTOC       Frame = "frameToc"
	FrameNavOpen   Frame = "frameNavOpen"
	FrameNavClosed Frame = "frameNavClosed"
	FrameContent   Frame = "frameContent"
	FrameHidden    Frame = "frameHidden"
)

type View string

const (
	ViewExecute      View = "Execute"
	ViewReview       View = "Review"
	ViewRandomAccess View = "RandomAccess"
)

// Transport loads frames and finds the form a post is submitted through.
type Transport interface {
	Navigate(frame Frame, url string) error
	LocateForm(frame Frame) (Form, bool)
}

// Form submits the hidden fields. The LMS answer arrives later through
// Manager.OnPostFrameLoaded.
type Form interface {
	Submit(fields wire.PostFields) error
}

type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Host is the window around the frameset.
type Host interface {
	Alert(msg string)
	Close()
	SetTOCSelection(activityID string)
	ShowNavigation(next, previous bool)
}

// SiteFactory creates the RTE site for a SCORM version, posting through fs.
type SiteFactory func(version datamodel.Version, fs apisite.Frameset) *apisite.Site
