//go:build windows

package window

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")

	procGetWindowTextW = modUser32.NewProc("GetWindowTextW")
	procSetWindowPos   = modUser32.NewProc("SetWindowPos")
)

const (
	maxClassName = 256
	maxTitle     = 512
	setPosFlags  = win.SWP_NOZORDER | win.SWP_SHOWWINDOW
)

// WinPlatform implements Platform with user32.
type WinPlatform struct{}

// NewPlatform returns the Windows window platform.
func NewPlatform() Platform {
	return WinPlatform{}
}

// enumeration state shared with the single EnumWindows callback; syscall
// callbacks are a limited resource and must not be created per call.
var (
	enumMu       sync.Mutex
	enumList     []Handle
	enumCallback = syscall.NewCallback(collectTopLevel)
)

// collectTopLevel keeps visible windows that have no parent.
func collectTopLevel(hwnd windows.HWND, _ uintptr) uintptr {
	if windows.IsWindowVisible(hwnd) && win.GetParent(win.HWND(hwnd)) == 0 {
		enumList = append(enumList, Handle(hwnd))
	}
	return 1
}

// Enumerate returns visible top-level windows.
func (WinPlatform) Enumerate() ([]Handle, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumList = nil
	if err := windows.EnumWindows(enumCallback, nil); err != nil {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	out := enumList
	enumList = nil
	return out, nil
}

// ProcessID returns the pid owning h.
func (WinPlatform) ProcessID(h Handle) (uint32, error) {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(h), &pid); err != nil {
		return 0, classify(h, err)
	}
	return pid, nil
}

// ClassName returns the registered window class of h.
func (WinPlatform) ClassName(h Handle) (string, error) {
	buf := make([]uint16, maxClassName)
	n, err := windows.GetClassName(windows.HWND(h), &buf[0], int32(len(buf)))
	if err != nil {
		return "", classify(h, err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// Title returns the caption of h; untitled windows return "".
func (WinPlatform) Title(h Handle) (string, error) {
	buf := make([]uint16, maxTitle)
	n, _, _ := procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 && !windows.IsWindow(windows.HWND(h)) {
		return "", fmt.Errorf("%w: %#x", ErrStaleHandle, uintptr(h))
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// Rect returns the outer window rectangle of h.
func (WinPlatform) Rect(h Handle) (geometry.Rect, error) {
	var r win.RECT
	if !win.GetWindowRect(win.HWND(h), &r) {
		return geometry.Rect{}, classify(h, fmt.Errorf("GetWindowRect failed"))
	}
	return geometry.Rect{
		X: int(r.Left),
		Y: int(r.Top),
		W: int(r.Right - r.Left),
		H: int(r.Bottom - r.Top),
	}, nil
}

// SetPos moves and resizes h without touching its z-order.
func (WinPlatform) SetPos(h Handle, r geometry.Rect) error {
	ok, _, errno := procSetWindowPos.Call(
		uintptr(h),
		0, // HWND_TOP, ignored with SWP_NOZORDER
		uintptr(int32(r.X)),
		uintptr(int32(r.Y)),
		uintptr(int32(r.W)),
		uintptr(int32(r.H)),
		uintptr(setPosFlags),
	)
	if ok != 0 {
		return nil
	}
	return classify(h, errno)
}

// IsMinimized reports whether h is iconic.
func (WinPlatform) IsMinimized(h Handle) bool {
	return win.IsIconic(win.HWND(h))
}

// Restore un-minimizes h.
func (WinPlatform) Restore(h Handle) error {
	if !windows.IsWindow(windows.HWND(h)) {
		return fmt.Errorf("%w: %#x", ErrStaleHandle, uintptr(h))
	}
	win.ShowWindow(win.HWND(h), win.SW_RESTORE)
	return nil
}

// classify maps user32 failures onto ErrAccessDenied and ErrStaleHandle.
func classify(h Handle, err error) error {
	switch {
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return fmt.Errorf("%w: %#x: %v", ErrAccessDenied, uintptr(h), err)
	case errors.Is(err, windows.ERROR_INVALID_WINDOW_HANDLE), !windows.IsWindow(windows.HWND(h)):
		return fmt.Errorf("%w: %#x: %v", ErrStaleHandle, uintptr(h), err)
	default:
		return fmt.Errorf("window %#x: %w", uintptr(h), err)
	}
}
