// Package httpform implements the frameset Transport over HTTP: the hidden frame is an
// LMS endpoint answering form posts with a wire.Page, the content frame is a plain GET.
package httpform

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/rtectl/internal/frameset"
	"github.com/danmuck/rtectl/internal/wire"
)

var (
	ErrLMSAddressRequired = errors.New("httpform: lms address required")
	ErrNotBound           = errors.New("httpform: transport not bound to a frameset")
	ErrUnexpectedStatus   = errors.New("httpform: unexpected status")
)

const blankURL = "about:blank"

// Events receives frame loads. frameset.Manager satisfies it.
type Events interface {
	OnContentLoaded()
	OnPostFrameLoaded(form frameset.Form, page wire.Page)
}

// Dispatcher runs callbacks on the frameset loop.
type Dispatcher interface {
	Post(fn func()) bool
}

type Config struct {
	// LMSAddress is the base URL of the LMS; relative content URLs resolve against it.
	LMSAddress string
	PostPath   string
	PostFrame  frameset.Frame
	Timeout    time.Duration
	// FetchContent issues a GET for content URLs before reporting the frame loaded.
	FetchContent bool
}

func DefaultConfig() Config {
	return Config{
		PostPath:     "/lms/post",
		PostFrame:    frameset.FrameHidden,
		Timeout:      10 * time.Second,
		FetchContent: true,
	}
}

type Transport struct {
	cfg    Config
	base   *url.URL
	client *http.Client
	ctx    context.Context

	mu       sync.Mutex
	frames   map[frameset.Frame]string
	loaded   map[frameset.Frame]bool
	dispatch Dispatcher
	events   Events
}

func New(ctx context.Context, cfg Config, client *http.Client) (*Transport, error) {
	if strings.TrimSpace(cfg.LMSAddress) == "" {
		return nil, ErrLMSAddressRequired
	}
	base, err := url.Parse(cfg.LMSAddress)
	if err != nil {
		return nil, fmt.Errorf("httpform: parse lms address %q: %w", cfg.LMSAddress, err)
	}
	def := DefaultConfig()
	if cfg.PostPath == "" {
		cfg.PostPath = def.PostPath
	}
	if cfg.PostFrame == "" {
		cfg.PostFrame = def.PostFrame
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Transport{
		cfg:    cfg,
		base:   base,
		client: client,
		ctx:    ctx,
		frames: make(map[frameset.Frame]string),
		loaded: make(map[frameset.Frame]bool),
	}, nil
}

// Bind connects load events to a frameset running on dispatch.
func (t *Transport) Bind(dispatch Dispatcher, events Events) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dispatch = dispatch
	t.events = events
}

// Location returns the last URL loaded into frame.
func (t *Transport) Location(frame frameset.Frame) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frames[frame]
}

// Navigate loads url into frame. Loads complete asynchronously and are reported on the
// frameset loop.
func (t *Transport) Navigate(frame frameset.Frame, raw string) error {
	target := raw
	if raw != blankURL {
		u, err := t.resolve(raw)
		if err != nil {
			return err
		}
		target = u.String()
	}
	t.mu.Lock()
	t.frames[frame] = target
	t.mu.Unlock()
	log.Debug().Str("frame", string(frame)).Str("url", target).Msg("navigate")

	switch frame {
	case frameset.FrameContent:
		go t.loadContent(target)
	case t.cfg.PostFrame:
		go t.loadPostFrame(target)
	}
	return nil
}

// LocateForm finds the post form once the post frame has loaded a page.
func (t *Transport) LocateForm(frame frameset.Frame) (frameset.Form, bool) {
	if frame != t.cfg.PostFrame {
		return nil, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded[frame] {
		return nil, false
	}
	return &form{t: t}, true
}

func (t *Transport) resolve(raw string) (*url.URL, error) {
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("httpform: parse url %q: %w", raw, err)
	}
	return t.base.ResolveReference(ref), nil
}

func (t *Transport) loadContent(target string) {
	if target != blankURL && t.cfg.FetchContent {
		if err := t.fetch(target); err != nil {
			// A browser still fires load for an error page.
			log.Warn().Err(err).Str("url", target).Msg("content fetch failed")
		}
	}
	t.deliver(func(ev Events) { ev.OnContentLoaded() })
}

func (t *Transport) loadPostFrame(target string) {
	req, err := http.NewRequestWithContext(t.ctx, http.MethodGet, target, nil)
	if err != nil {
		log.Error().Err(err).Str("url", target).Msg("post frame request")
		return
	}
	page, err := t.roundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("url", target).Msg("post frame load failed")
		return
	}
	t.pageLoaded(page)
}

func (t *Transport) fetch(target string) error {
	req, err := http.NewRequestWithContext(t.ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (t *Transport) roundTrip(req *http.Request) (wire.Page, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return wire.Page{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return wire.Page{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return wire.Page{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return wire.ParsePage(string(body))
}

func (t *Transport) pageLoaded(page wire.Page) {
	t.mu.Lock()
	t.loaded[t.cfg.PostFrame] = true
	t.mu.Unlock()
	f := &form{t: t}
	t.deliver(func(ev Events) { ev.OnPostFrameLoaded(f, page) })
}

func (t *Transport) deliver(fn func(Events)) {
	t.mu.Lock()
	dispatch, events := t.dispatch, t.events
	t.mu.Unlock()
	if dispatch == nil || events == nil {
		log.Warn().Err(ErrNotBound).Msg("frame load dropped")
		return
	}
	if !dispatch.Post(func() { fn(events) }) {
		log.Debug().Msg("frame load after loop stopped")
	}
}

// form posts the hidden fields to the LMS. The request runs on the caller; the answer is
// delivered back through the loop like a frame load.
type form struct {
	t *Transport
}

func (f *form) Submit(fields wire.PostFields) error {
	t := f.t
	target, err := t.resolve(t.cfg.PostPath)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(t.ctx, http.MethodPost, target.String(), strings.NewReader(fields.Values().Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	page, err := t.roundTrip(req)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.loaded[t.cfg.PostFrame] = false
	t.mu.Unlock()
	go t.pageLoaded(page)
	return nil
}

var _ frameset.Transport = (*Transport)(nil)
