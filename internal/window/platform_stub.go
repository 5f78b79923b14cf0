//go:build !windows

package window

import "github.com/frudas24/deskquad/internal/geometry"

// NoopPlatform is a placeholder platform for non-Windows builds.
type NoopPlatform struct{}

// NewPlatform returns a non-functional platform on non-Windows platforms.
func NewPlatform() Platform {
	return NoopPlatform{}
}

// Enumerate returns ErrUnsupported.
func (NoopPlatform) Enumerate() ([]Handle, error) {
	return nil, ErrUnsupported
}

// ProcessID returns ErrUnsupported.
func (NoopPlatform) ProcessID(h Handle) (uint32, error) {
	_ = h
	return 0, ErrUnsupported
}

// ClassName returns ErrUnsupported.
func (NoopPlatform) ClassName(h Handle) (string, error) {
	_ = h
	return "", ErrUnsupported
}

// Title returns ErrUnsupported.
func (NoopPlatform) Title(h Handle) (string, error) {
	_ = h
	return "", ErrUnsupported
}

// Rect returns ErrUnsupported.
func (NoopPlatform) Rect(h Handle) (geometry.Rect, error) {
	_ = h
	return geometry.Rect{}, ErrUnsupported
}

// SetPos returns ErrUnsupported.
func (NoopPlatform) SetPos(h Handle, r geometry.Rect) error {
	_ = h
	_ = r
	return ErrUnsupported
}

// IsMinimized always reports false.
func (NoopPlatform) IsMinimized(h Handle) bool {
	_ = h
	return false
}

// Restore returns ErrUnsupported.
func (NoopPlatform) Restore(h Handle) error {
	_ = h
	return ErrUnsupported
}
