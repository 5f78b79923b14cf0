//go:build windows

package monitor

import (
	"sync"

	"golang.org/x/sys/windows"
)

var (
	modUser32 = windows.NewLazySystemDLL("user32.dll")
	modShcore = windows.NewLazySystemDLL("shcore.dll")

	procSetProcessDpiAwarenessContext = modUser32.NewProc("SetProcessDpiAwarenessContext")
	procSetProcessDPIAware            = modUser32.NewProc("SetProcessDPIAware")
	procSetProcessDpiAwareness        = modShcore.NewProc("SetProcessDpiAwareness")
)

const (
	dpiAwarenessContextPerMonitorV2 = ^uintptr(3) // (DPI_AWARENESS_CONTEXT)-4
	processPerMonitorDPIAware       = 2
)

var (
	dpiOnce sync.Once
	dpiMode = DPIUnaware
)

// EnableDPIAwareness opts the process into the strongest DPI mode the OS
// supports so window coordinates are physical pixels. Safe to call repeatedly;
// only the first call has an effect. Failures fall through to the next mode.
func EnableDPIAwareness() {
	dpiOnce.Do(func() {
		dpiMode = applyDPIAwareness()
	})
}

// DPIAwareness reports the DPI mode applied to the process.
func DPIAwareness() string {
	return dpiMode
}

// applyDPIAwareness walks the modes from per-monitor-v2 down to system DPI.
func applyDPIAwareness() string {
	if procSetProcessDpiAwarenessContext.Find() == nil {
		if ret, _, _ := procSetProcessDpiAwarenessContext.Call(dpiAwarenessContextPerMonitorV2); ret != 0 {
			return DPIPerMonitorV2
		}
	}
	if procSetProcessDpiAwareness.Find() == nil {
		// HRESULT S_OK is zero.
		if ret, _, _ := procSetProcessDpiAwareness.Call(processPerMonitorDPIAware); ret == 0 {
			return DPIPerMonitor
		}
	}
	if procSetProcessDPIAware.Find() == nil {
		if ret, _, _ := procSetProcessDPIAware.Call(); ret != 0 {
			return DPISystem
		}
	}
	return DPIUnaware
}
