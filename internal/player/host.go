package player

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// headlessHost stands in for the browser window around the frameset.
type headlessHost struct {
	mu       sync.Mutex
	alerts   []string
	toc      string
	next     bool
	previous bool
	closed   chan struct{}
	once     sync.Once
}

func newHeadlessHost() *headlessHost {
	return &headlessHost{closed: make(chan struct{})}
}

func (h *headlessHost) Alert(msg string) {
	log.Warn().Str("alert", msg).Msg("player alert")
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, msg)
}

func (h *headlessHost) Close() {
	h.once.Do(func() {
		log.Info().Msg("player window closed")
		close(h.closed)
	})
}

func (h *headlessHost) SetTOCSelection(activityID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.toc = activityID
}

func (h *headlessHost) ShowNavigation(next, previous bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next, h.previous = next, previous
}

func (h *headlessHost) snapshot() (alerts []string, toc string, next, previous bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.alerts...), h.toc, h.next, h.previous
}
