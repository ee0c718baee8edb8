package lms

import (
	"maps"
	"sort"
	"strings"
	"sync"
	"time"
)

// Attempt is one learner pass through the course.
type Attempt struct {
	ID        string
	Current   int
	Submitted bool
	Closed    bool
	Started   time.Time
	Updated   time.Time
	// Data holds the committed data model per activity id.
	Data         map[string]map[string]string
	ObjectiveIDs map[string]map[string]string
	Suspended    map[string]bool
	Commands     int
}

func newAttempt(id string, now time.Time) *Attempt {
	return &Attempt{
		ID:           id,
		Started:      now,
		Updated:      now,
		Data:         make(map[string]map[string]string),
		ObjectiveIDs: make(map[string]map[string]string),
		Suspended:    make(map[string]bool),
	}
}

func (a *Attempt) values(activityID string) map[string]string {
	v, ok := a.Data[activityID]
	if !ok {
		v = make(map[string]string)
		a.Data[activityID] = v
	}
	return v
}

// AttemptInfo is the read-only view served by the status routes.
type AttemptInfo struct {
	ID        string                       `json:"id"`
	Activity  string                       `json:"activity"`
	Submitted bool                         `json:"submitted"`
	Closed    bool                         `json:"closed"`
	Commands  int                          `json:"commands"`
	Started   time.Time                    `json:"started"`
	Updated   time.Time                    `json:"updated"`
	DataModel map[string]map[string]string `json:"data_model"`
}

// AttemptStore keeps attempts by id. Callers mutate an attempt only inside Update.
type AttemptStore struct {
	mu    sync.RWMutex
	items map[string]*Attempt
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{
		items: make(map[string]*Attempt),
	}
}

func (s *AttemptStore) Create(id string, now time.Time) *Attempt {
	key := strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	a := newAttempt(key, now)
	s.items[key] = a
	return a
}

// Update runs fn with the attempt locked.
func (s *AttemptStore) Update(id string, fn func(*Attempt) error) error {
	key := strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[key]
	if !ok {
		return ErrUnknownAttempt
	}
	return fn(a)
}

func (s *AttemptStore) Get(id string, course *Course) (AttemptInfo, bool) {
	key := strings.TrimSpace(id)
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.items[key]
	if !ok {
		return AttemptInfo{}, false
	}
	return info(a, course), true
}

func (s *AttemptStore) List(course *Course) []AttemptInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AttemptInfo, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, info(a, course))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

func info(a *Attempt, course *Course) AttemptInfo {
	data := make(map[string]map[string]string, len(a.Data))
	for id, values := range a.Data {
		data[id] = maps.Clone(values)
	}
	return AttemptInfo{
		ID:        a.ID,
		Activity:  course.Activities[a.Current].ID,
		Submitted: a.Submitted,
		Closed:    a.Closed,
		Commands:  a.Commands,
		Started:   a.Started,
		Updated:   a.Updated,
		DataModel: data,
	}
}
