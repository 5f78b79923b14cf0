//go:build windows

// Package monitor describes display geometry and enumeration.
package monitor

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/frudas24/deskquad/internal/geometry"
	"github.com/lxn/win"
)

var procGetDpiForMonitor = modShcore.NewProc("GetDpiForMonitor")

// mdtEffectiveDPI selects the DPI the shell scales with.
const mdtEffectiveDPI = 0

// enumeration state shared with the single EnumDisplayMonitors callback;
// syscall callbacks are a limited resource and must not be created per call.
var (
	enumMu       sync.Mutex
	enumFound    []Monitor
	enumCallback = syscall.NewCallback(collectMonitor)
)

// ListMonitors enumerates displays in physical pixels. The result is only
// physical when EnableDPIAwareness ran first.
func ListMonitors() ([]Monitor, error) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumFound = nil
	if !win.EnumDisplayMonitors(0, nil, enumCallback, 0) {
		enumFound = nil
		return nil, fmt.Errorf("%w: EnumDisplayMonitors: %v", ErrDisplayUnavailable, syscall.GetLastError())
	}
	found := enumFound
	enumFound = nil
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: no monitors detected", ErrDisplayUnavailable)
	}
	return found, nil
}

// collectMonitor records one monitor and always continues the enumeration.
func collectMonitor(h win.HMONITOR, _ win.HDC, _ *win.RECT, _ uintptr) uintptr {
	info := win.MONITORINFO{}
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(h, &info) {
		return 1
	}
	bounds := edges(info.RcMonitor)
	enumFound = append(enumFound, Monitor{
		Index:   len(enumFound) + 1,
		X:       bounds.Left,
		Y:       bounds.Top,
		W:       bounds.Width(),
		H:       bounds.Height(),
		Work:    edges(info.RcWork),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
		DPI:     monitorDPI(h),
	})
	return 1
}

// edges converts a Win32 RECT into a work area.
func edges(r win.RECT) geometry.WorkArea {
	return geometry.WorkArea{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}

// monitorDPI returns the effective DPI of h, or BaseDPI before Windows 8.1.
func monitorDPI(h win.HMONITOR) int {
	if procGetDpiForMonitor.Find() != nil {
		return BaseDPI
	}
	var dpiX, dpiY uint32
	hr, _, _ := procGetDpiForMonitor.Call(uintptr(h), mdtEffectiveDPI,
		uintptr(unsafe.Pointer(&dpiX)), uintptr(unsafe.Pointer(&dpiY)))
	if hr != 0 || dpiX == 0 {
		return BaseDPI
	}
	return int(dpiX)
}
