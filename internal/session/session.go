// Package session holds runtime state for the control surface.
package session

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/window"
)

// historySize bounds the recent placement list.
const historySize = 20

// Placement records one attempt to move a window.
type Placement struct {
	Tool     string         `json:"tool,omitempty"`
	Handle   window.Handle  `json:"handle"`
	Quadrant string         `json:"quadrant"`
	Rect     geometry.Rect  `json:"rect"`
	Outcome  window.Outcome `json:"outcome"`
	At       time.Time      `json:"at"`
}

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool        `json:"authenticated"`
	Paused        bool        `json:"paused"`
	Placements    int         `json:"placements"`
	Last          *Placement  `json:"last,omitempty"`
	Recent        []Placement `json:"recent"`
}

// Session holds runtime state for the active controller.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	paused        bool
	placements    int
	last          *Placement
	recent        []Placement
	path          string
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{password: password}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && subtle.ConstantTimeCompare([]byte(pass), []byte(s.password)) == 1 {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetPaused toggles whether control actions are accepted.
func (s *Session) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	s.saveLocked()
}

// Paused reports whether control actions are rejected.
func (s *Session) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// Record stores a placement attempt. Only successful placements become the
// last window used by placeLast.
func (s *Session) Record(p Placement) {
	if p.At.IsZero() {
		p.At = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placements++
	s.recent = append(s.recent, p)
	if len(s.recent) > historySize {
		s.recent = append([]Placement(nil), s.recent[len(s.recent)-historySize:]...)
	}
	if p.Outcome == window.OutcomeSucceeded {
		last := p
		s.last = &last
	}
	s.saveLocked()
}

// Last returns the most recent successful placement.
func (s *Session) Last() (Placement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Placement{}, false
	}
	return *s.last, true
}

// ForgetLast clears the last window, e.g. after it closed.
func (s *Session) ForgetLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
	s.saveLocked()
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Authenticated: s.authenticated,
		Paused:        s.paused,
		Placements:    s.placements,
		Recent:        append([]Placement{}, s.recent...),
	}
	if s.last != nil {
		last := *s.last
		snap.Last = &last
	}
	return snap
}
