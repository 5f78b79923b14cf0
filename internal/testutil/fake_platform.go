// Package testutil provides in-memory fakes of the OS seams for tests.
package testutil

import (
	"fmt"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/frudas24/deskquad/internal/process"
	"github.com/frudas24/deskquad/internal/window"
)

// FakeWindow is one synthetic top-level window.
type FakeWindow struct {
	Handle    window.Handle
	PID       uint32
	Class     string
	Title     string
	Rect      geometry.Rect
	Minimized bool
	Closed    bool
	// MoveErr is returned by SetPos instead of moving, e.g. window.ErrAccessDenied.
	MoveErr error
}

// FakePlatform implements window.Platform over a list of FakeWindows and
// counts the calls tests care about.
type FakePlatform struct {
	Windows      []*FakeWindow
	EnumerateErr error
	// BeforeEnumerate runs at the start of every Enumerate call, letting tests
	// open windows while a caller is polling.
	BeforeEnumerate func(p *FakePlatform)

	EnumerateCalls int
	SetPosCalls    int
	RestoreCalls   int
}

// Ensure FakePlatform implements the interface.
var _ window.Platform = (*FakePlatform)(nil)

// Add appends a window and returns it for further tweaking.
func (f *FakePlatform) Add(w FakeWindow) *FakeWindow {
	added := w
	f.Windows = append(f.Windows, &added)
	return &added
}

// Replace closes every window using h and adds w in its place, simulating
// the OS reusing a handle value.
func (f *FakePlatform) Replace(w FakeWindow) *FakeWindow {
	kept := f.Windows[:0]
	for _, existing := range f.Windows {
		if existing.Handle != w.Handle {
			kept = append(kept, existing)
		}
	}
	f.Windows = kept
	return f.Add(w)
}

// Enumerate returns the handles of open windows in insertion order.
func (f *FakePlatform) Enumerate() ([]window.Handle, error) {
	f.EnumerateCalls++
	if f.BeforeEnumerate != nil {
		f.BeforeEnumerate(f)
	}
	if f.EnumerateErr != nil {
		return nil, f.EnumerateErr
	}
	out := make([]window.Handle, 0, len(f.Windows))
	for _, w := range f.Windows {
		if !w.Closed {
			out = append(out, w.Handle)
		}
	}
	return out, nil
}

// ProcessID returns the owning pid.
func (f *FakePlatform) ProcessID(h window.Handle) (uint32, error) {
	w, err := f.lookup(h)
	if err != nil {
		return 0, err
	}
	return w.PID, nil
}

// ClassName returns the window class.
func (f *FakePlatform) ClassName(h window.Handle) (string, error) {
	w, err := f.lookup(h)
	if err != nil {
		return "", err
	}
	return w.Class, nil
}

// Title returns the window title.
func (f *FakePlatform) Title(h window.Handle) (string, error) {
	w, err := f.lookup(h)
	if err != nil {
		return "", err
	}
	return w.Title, nil
}

// Rect returns the window rectangle.
func (f *FakePlatform) Rect(h window.Handle) (geometry.Rect, error) {
	w, err := f.lookup(h)
	if err != nil {
		return geometry.Rect{}, err
	}
	return w.Rect, nil
}

// SetPos records the call and moves the window unless MoveErr is set.
func (f *FakePlatform) SetPos(h window.Handle, r geometry.Rect) error {
	f.SetPosCalls++
	w, err := f.lookup(h)
	if err != nil {
		return err
	}
	if w.MoveErr != nil {
		return w.MoveErr
	}
	w.Rect = r
	return nil
}

// IsMinimized reports the Minimized flag.
func (f *FakePlatform) IsMinimized(h window.Handle) bool {
	w, err := f.lookup(h)
	return err == nil && w.Minimized
}

// Restore clears the Minimized flag.
func (f *FakePlatform) Restore(h window.Handle) error {
	f.RestoreCalls++
	w, err := f.lookup(h)
	if err != nil {
		return err
	}
	w.Minimized = false
	return nil
}

// Window returns the open window using h, or nil.
func (f *FakePlatform) Window(h window.Handle) *FakeWindow {
	w, err := f.lookup(h)
	if err != nil {
		return nil
	}
	return w
}

// lookup finds an open window or reports a stale handle.
func (f *FakePlatform) lookup(h window.Handle) (*FakeWindow, error) {
	for _, w := range f.Windows {
		if w.Handle == h && !w.Closed {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %#x", window.ErrStaleHandle, uintptr(h))
}

// FakeProcess is the metadata of one synthetic process.
type FakeProcess struct {
	Image   string
	Session uint32
}

// FakeProcesses implements process.Lookup over a pid map.
type FakeProcesses struct {
	Procs map[uint32]FakeProcess

	ImageCalls   int
	SessionCalls int
}

// Ensure FakeProcesses implements the interface.
var _ process.Lookup = (*FakeProcesses)(nil)

// ImageBaseName returns the configured image or ErrProcessNotFound.
func (f *FakeProcesses) ImageBaseName(pid uint32) (string, error) {
	f.ImageCalls++
	p, ok := f.Procs[pid]
	if !ok {
		return "", fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
	}
	return process.BaseName(p.Image), nil
}

// SessionID returns the configured session or ErrProcessNotFound.
func (f *FakeProcesses) SessionID(pid uint32) (uint32, error) {
	f.SessionCalls++
	p, ok := f.Procs[pid]
	if !ok {
		return 0, fmt.Errorf("%w: pid %d", process.ErrProcessNotFound, pid)
	}
	return p.Session, nil
}
