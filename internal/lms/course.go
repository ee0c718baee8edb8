// Package lms is a loopback LMS for local content runs. It answers the frameset's hidden
// form posts over a fixed, linearly sequenced list of activities and keeps every
// attempt's data model in memory.
package lms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/rtectl/internal/datamodel"
)

var (
	ErrNoActivities      = errors.New("lms: course has no activities")
	ErrDuplicateActivity = errors.New("lms: duplicate activity id")
	ErrUnknownActivity   = errors.New("lms: unknown activity")
	ErrUnknownAttempt    = errors.New("lms: unknown attempt")
)

type Activity struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// URL is the launch URL handed to the content frame.
	URL         string            `json:"url"`
	RteRequired bool              `json:"rte_required"`
	LaunchData  string            `json:"launch_data,omitempty"`
	Version     datamodel.Version `json:"version"`
}

type Learner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Course struct {
	ID         string     `json:"id"`
	Learner    Learner    `json:"learner"`
	Activities []Activity `json:"activities"`
	// Review delivers every activity in Review view.
	Review bool `json:"review"`
}

// Validate checks ids and fills per-activity defaults.
func (c *Course) Validate() error {
	if len(c.Activities) == 0 {
		return ErrNoActivities
	}
	seen := make(map[string]bool, len(c.Activities))
	for i := range c.Activities {
		a := &c.Activities[i]
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return fmt.Errorf("lms: activity[%d] missing id", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateActivity, a.ID)
		}
		seen[a.ID] = true
		if a.Version == "" {
			a.Version = datamodel.Scorm2004
		}
		if !a.Version.Valid() {
			return fmt.Errorf("lms: activity %s: %w", a.ID, datamodel.ErrUnknownVersion)
		}
		if a.URL == "" {
			a.URL = "/content/" + a.ID
		}
	}
	return nil
}

func (c *Course) index(id string) (int, bool) {
	for i, a := range c.Activities {
		if a.ID == id {
			return i, true
		}
	}
	return -1, false
}
