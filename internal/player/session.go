// Package player runs one headless player session: the frameset manager on its loop, the
// HTTP transport to the LMS and the bridge content talks to.
package player

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/apisite"
	"github.com/danmuck/rtectl/internal/bridge"
	"github.com/danmuck/rtectl/internal/datamodel"
	"github.com/danmuck/rtectl/internal/frameset"
	"github.com/danmuck/rtectl/internal/rte"
	"github.com/danmuck/rtectl/internal/transport/httpform"
)

var (
	ErrNoAPI  = errors.New("player: no api attached")
	ErrClosed = errors.New("player: session closed")
)

// headlessFrames load instantly; only the content and post frames go over the wire.
var headlessFrames = []frameset.Frame{
	frameset.FrameTitle,
	frameset.FrameTOC,
	frameset.FrameNavOpen,
	frameset.FrameNavClosed,
}

type Options struct {
	Frameset  frameset.Options
	Transport httpform.Config
	Bridge    bridge.Config
	StartPath string
	// Attempt resumes an existing LMS attempt instead of starting one.
	Attempt     string
	ServeBridge bool
	LoopBuffer  int
}

type Session struct {
	ID string

	opts      Options
	loop      *frameset.Loop
	manager   *frameset.Manager
	transport *httpform.Transport
	bridge    *bridge.Bridge
	host      *headlessHost
}

func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.LoopBuffer <= 0 {
		opts.LoopBuffer = 64
	}
	if opts.StartPath == "" {
		opts.StartPath = "/lms/frameset"
	}
	loop := frameset.NewLoop(opts.LoopBuffer)
	tr, err := httpform.New(ctx, opts.Transport, nil)
	if err != nil {
		return nil, err
	}
	b := bridge.New(opts.Bridge, loop)
	host := newHeadlessHost()
	newSite := func(v datamodel.Version, fs apisite.Frameset) *apisite.Site {
		return apisite.New(v, fs, rte.Factory, b)
	}
	m := frameset.New(opts.Frameset, tr, host, loop, newSite)
	tr.Bind(loop, m)
	b.Bind(m)

	return &Session{
		ID:        uuid.NewString(),
		opts:      opts,
		loop:      loop,
		manager:   m,
		transport: tr,
		bridge:    b,
		host:      host,
	}, nil
}

func (s *Session) Bridge() *bridge.Bridge {
	return s.bridge
}

func (s *Session) Transport() *httpform.Transport {
	return s.transport
}

// Done is closed when the frameset closes the window.
func (s *Session) Done() <-chan struct{} {
	return s.host.closed
}

func (s *Session) Alerts() []string {
	alerts, _, _, _ := s.host.snapshot()
	return alerts
}

// Start runs the loop and loads the LMS frameset page. It returns once loading began.
func (s *Session) Start(ctx context.Context) error {
	go func() {
		if err := s.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Str("session", s.ID).Msg("loop stopped")
		}
	}()
	if s.opts.ServeBridge {
		go func() {
			if err := s.bridge.Serve(ctx); err != nil {
				log.Error().Err(err).Str("session", s.ID).Msg("bridge stopped")
			}
		}()
	}

	start := s.opts.StartPath
	if s.opts.Attempt != "" {
		start += "?attempt=" + url.QueryEscape(s.opts.Attempt)
	}
	var navErr error
	err := s.loop.Call(ctx, func() {
		for _, f := range headlessFrames {
			s.manager.RegisterFrame(f, nil)
		}
		navErr = s.transport.Navigate(s.opts.Frameset.PostFrame, start)
	})
	if err != nil {
		return err
	}
	log.Info().Str("session", s.ID).Str("lms", s.opts.Transport.LMSAddress).Msg("player started")
	return navErr
}

// Do runs fn against the frameset on the loop.
func (s *Session) Do(ctx context.Context, fn func(m *frameset.Manager)) error {
	return s.loop.Call(ctx, func() { fn(s.manager) })
}

// Invoke calls an API method on the attached API, as content would.
func (s *Session) Invoke(ctx context.Context, method string, args ...any) (string, error) {
	var (
		result string
		errAPI error
	)
	err := s.Do(ctx, func(m *frameset.Manager) {
		site := m.Site()
		if site == nil || !site.Required() || site.API() == nil {
			errAPI = ErrNoAPI
			return
		}
		result, errAPI = rte.Invoke(site.API(), method, args...)
	})
	if err != nil {
		return "", err
	}
	return result, errAPI
}

// WaitReady blocks until an activity is loaded and no post or clear is outstanding.
func (s *Session) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		var ready bool
		err := s.Do(ctx, func(m *frameset.Manager) {
			ready = m.ActivityID() != "" && m.ReadyForNavigation() && !m.PostInProgress()
		})
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.Done():
			return ErrClosed
		case <-ticker.C:
		}
	}
}

// Activity reports the loaded activity and attempt.
func (s *Session) Activity(ctx context.Context) (activity, attempt string, err error) {
	err = s.Do(ctx, func(m *frameset.Manager) {
		activity, attempt = m.ActivityID(), m.AttemptID()
	})
	return activity, attempt, err
}
