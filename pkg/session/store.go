// Package session keeps one submission controller per browser session.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kjeelani/soundseq/pkg/submission"
)

type entry struct {
	ctrl     *submission.Controller
	lastSeen time.Time
	// title of the submitted video, kept until the form leaves Submitted.
	title string
}

// Store maps session ids to controllers. Sessions live in memory only.
type Store struct {
	newController func() *submission.Controller
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewStore(factory func() *submission.Controller) *Store {
	return &Store{
		newController: factory,
		now:           time.Now,
		sessions:      make(map[string]*entry),
	}
}

// Get returns the controller for id, creating a new session when id is unknown.
// The returned id is the one the caller must keep using; it differs from id
// only when a session was created.
func (s *Store) Get(id string) (*submission.Controller, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		e.lastSeen = s.now()
		return e.ctrl, id
	}

	id = uuid.NewString()
	e := &entry{ctrl: s.newController(), lastSeen: s.now()}
	s.sessions[id] = e
	e.ctrl.Subscribe(func(st submission.State) { s.observe(id, st) })
	slog.Debug("Session created", "session", id)
	return e.ctrl, id
}

// observe records activity on a session; a submission that finishes long after
// the last request still counts as recent.
func (s *Store) observe(id string, st submission.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return
	}
	e.lastSeen = s.now()
	if !st.Submitted() {
		e.title = ""
	}
}

// SetTitle remembers the title of the video a session submitted.
// It is dropped as soon as the session's form is no longer submitted.
func (s *Store) SetTitle(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok && e.ctrl.Snapshot().Submitted() {
		e.title = title
	}
}

func (s *Store) Title(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[id]; ok {
		return e.title
	}
	return ""
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many were dropped.
// Sessions with a submission in flight are kept.
func (s *Store) Sweep(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if now.Sub(e.lastSeen) <= ttl {
			continue
		}
		if e.ctrl.Snapshot().Pending {
			slog.Debug("Skipping busy session", "session", id)
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	return removed
}

// RunCleaner sweeps idle sessions every interval until ctx is done.
func (s *Store) RunCleaner(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now(), ttl); n > 0 {
				slog.Debug("Cleaned up idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}
