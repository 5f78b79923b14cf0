//go:build windows

package process

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// WinLookup queries process metadata through kernel32.
type WinLookup struct{}

// NewLookup returns the Windows process lookup.
func NewLookup() Lookup {
	return WinLookup{}
}

// ImageBaseName resolves pid to its executable base name.
func (WinLookup) ImageBaseName(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", classify(pid, err)
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", fmt.Errorf("query image name for pid %d: %w", pid, err)
	}
	return BaseName(windows.UTF16ToString(buf[:size])), nil
}

// SessionID resolves pid to its session id.
func (WinLookup) SessionID(pid uint32) (uint32, error) {
	var session uint32
	if err := windows.ProcessIdToSessionId(pid, &session); err != nil {
		return 0, classify(pid, err)
	}
	return session, nil
}

// classify maps the "no such pid" errno to ErrProcessNotFound.
func classify(pid uint32, err error) error {
	if errors.Is(err, windows.ERROR_INVALID_PARAMETER) {
		return fmt.Errorf("%w: pid %d", ErrProcessNotFound, pid)
	}
	return fmt.Errorf("open pid %d: %w", pid, err)
}
