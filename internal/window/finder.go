package window

import (
	"log"

	"github.com/frudas24/deskquad/internal/process"
)

// Finder searches the current set of top-level windows.
type Finder struct {
	platform Platform
	procs    process.Lookup
	debug    bool
}

// NewFinder creates a finder backed by the platform and process lookup.
func NewFinder(platform Platform, procs process.Lookup) *Finder {
	return &Finder{platform: platform, procs: procs}
}

// SetDebug toggles per-candidate debug logging.
func (f *Finder) SetDebug(debug bool) {
	f.debug = debug
}

// Enumerate returns a point-in-time snapshot of visible top-level windows.
func (f *Finder) Enumerate() ([]Handle, error) {
	return f.platform.Enumerate()
}

// Find returns the windows matching c. It never blocks and never fails:
// lookup errors only disqualify the affected window, and empty criteria
// match nothing.
func (f *Finder) Find(c Criteria) []Handle {
	m := compile(c)
	if m.empty() {
		return []Handle{}
	}
	handles, err := f.platform.Enumerate()
	if err != nil {
		log.Printf("window: enumerate failed: %v", err)
		return []Handle{}
	}

	out := make([]Handle, 0, len(handles))
	for _, h := range handles {
		if _, skip := m.exclude[h]; skip {
			continue
		}
		if !f.matches(h, m) {
			continue
		}
		if !f.bigEnough(h, m) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// Largest returns the candidate covering the most pixels.
func (f *Finder) Largest(handles []Handle) (Handle, bool) {
	var (
		best     Handle
		bestArea = -1
	)
	for _, h := range handles {
		r, err := f.platform.Rect(h)
		if err != nil {
			continue
		}
		if area := r.Area(); area > bestArea {
			best, bestArea = h, area
		}
	}
	return best, bestArea >= 0
}

// matches evaluates criteria cheapest first and stops at the first hit.
func (f *Finder) matches(h Handle, m matcher) bool {
	var (
		pid    uint32
		pidErr error
	)
	if m.needsProcess() {
		pid, pidErr = f.platform.ProcessID(h)
		if pidErr == nil && m.pid != 0 && int64(pid) == m.pid {
			return true
		}
	}
	if len(m.classes) > 0 {
		if class, err := f.platform.ClassName(h); err == nil {
			if _, ok := m.classes[class]; ok {
				return true
			}
		}
	}
	if len(m.titles) > 0 {
		if title, err := f.platform.Title(h); err == nil && m.titleMatches(title) {
			return true
		}
	}
	if pidErr != nil {
		f.debugf("window: %#x pid lookup failed: %v", h, pidErr)
		return false
	}
	if len(m.images) > 0 {
		image, err := f.procs.ImageBaseName(pid)
		if err != nil {
			f.debugf("window: %#x pid %d image lookup skipped: %v", h, pid, err)
		} else if _, ok := m.images[image]; ok {
			return true
		}
	}
	if m.session != nil {
		session, err := f.procs.SessionID(pid)
		if err != nil {
			f.debugf("window: %#x pid %d session lookup skipped: %v", h, pid, err)
		} else if session == *m.session {
			return true
		}
	}
	return false
}

// bigEnough applies the minimum size filter.
func (f *Finder) bigEnough(h Handle, m matcher) bool {
	if m.minWidth <= 0 && m.minHeight <= 0 {
		return true
	}
	r, err := f.platform.Rect(h)
	if err != nil {
		return false
	}
	return r.W >= m.minWidth && r.H >= m.minHeight
}

// debugf logs only when debug logging is enabled.
func (f *Finder) debugf(format string, args ...any) {
	if f.debug {
		log.Printf(format, args...)
	}
}
