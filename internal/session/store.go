package session

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
)

// FileName is the session state file inside the data directory.
const FileName = "session.json"

// State is the persisted part of a session. Authentication and the last
// placed window are never stored: window handles do not survive a restart and
// the OS reuses their values for unrelated windows.
type State struct {
	Paused     bool        `json:"paused"`
	Placements int         `json:"placements"`
	Recent     []Placement `json:"recent,omitempty"`
}

// Load reads session state from disk. Missing files return empty state.
func Load(path string) (State, error) {
	var st State
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, err
	}
	if len(st.Recent) > historySize {
		st.Recent = st.Recent[len(st.Recent)-historySize:]
	}
	return st, nil
}

// Save writes session state to disk, creating parent directories as needed.
func Save(path string, st State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Persist restores state from path and saves every later change back to it.
// Restored history is for display only; placeLast has no target until a new
// placement succeeds.
func (s *Session) Persist(path string) error {
	st, err := Load(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.paused = st.Paused
	s.placements = st.Placements
	s.recent = append([]Placement(nil), st.Recent...)
	s.last = nil
	return nil
}

// State returns the persistable part of the session.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// stateLocked copies the persistable fields; callers hold s.mu.
func (s *Session) stateLocked() State {
	return State{
		Paused:     s.paused,
		Placements: s.placements,
		Recent:     append([]Placement(nil), s.recent...),
	}
}

// saveLocked writes the state when persistence is enabled; callers hold s.mu.
func (s *Session) saveLocked() {
	if s.path == "" {
		return
	}
	if err := Save(s.path, s.stateLocked()); err != nil {
		log.Printf("session: save %s failed: %v", s.path, err)
	}
}
