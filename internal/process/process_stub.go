//go:build !windows

package process

import "errors"

// ErrUnsupported indicates process queries are not available.
var ErrUnsupported = errors.New("process lookup is only supported on Windows")

// NoopLookup is a placeholder lookup for non-Windows builds.
type NoopLookup struct{}

// NewLookup returns a non-functional lookup on non-Windows platforms.
func NewLookup() Lookup {
	return NoopLookup{}
}

// ImageBaseName returns ErrUnsupported.
func (NoopLookup) ImageBaseName(pid uint32) (string, error) {
	_ = pid
	return "", ErrUnsupported
}

// SessionID returns ErrUnsupported.
func (NoopLookup) SessionID(pid uint32) (uint32, error) {
	_ = pid
	return 0, ErrUnsupported
}
