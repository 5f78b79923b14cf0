//go:build !windows

// Package monitor describes display geometry and enumeration.
package monitor

import "fmt"

// ListMonitors fails outside Windows.
func ListMonitors() ([]Monitor, error) {
	return nil, fmt.Errorf("%w: monitor enumeration needs Windows", ErrDisplayUnavailable)
}

// EnableDPIAwareness is a no-op outside Windows.
func EnableDPIAwareness() {}

// DPIAwareness always reports DPIUnaware outside Windows.
func DPIAwareness() string {
	return DPIUnaware
}
