// Package window discovers top-level windows and moves them into place.
package window

import (
	"errors"

	"github.com/frudas24/deskquad/internal/geometry"
)

// Handle is an opaque reference to an OS top-level window. It is never owned
// by this package and may become invalid at any time.
type Handle uintptr

var (
	// ErrUnsupported indicates window management is not available on this OS.
	ErrUnsupported = errors.New("window management is only supported on Windows")
	// ErrAccessDenied is returned by a Platform when the OS refuses an
	// operation, typically because the target runs at a higher integrity level.
	ErrAccessDenied = errors.New("access denied")
	// ErrStaleHandle is returned by a Platform when the window no longer exists.
	ErrStaleHandle = errors.New("stale window handle")
)

// Platform is the OS window API used by Finder and Mover.
type Platform interface {
	// Enumerate returns visible top-level windows in OS order.
	Enumerate() ([]Handle, error)
	ProcessID(h Handle) (uint32, error)
	ClassName(h Handle) (string, error)
	Title(h Handle) (string, error)
	Rect(h Handle) (geometry.Rect, error)
	// SetPos moves and resizes without changing z-order and shows the window.
	SetPos(h Handle, r geometry.Rect) error
	IsMinimized(h Handle) bool
	Restore(h Handle) error
}
