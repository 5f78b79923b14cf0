// Package monitor describes display geometry and enumeration.
package monitor

import (
	"errors"
	"fmt"

	"github.com/frudas24/deskquad/internal/geometry"
)

// ErrDisplayUnavailable means no usable monitor information could be read,
// as in a headless or disconnected session.
var ErrDisplayUnavailable = errors.New("display unavailable")

// Monitor describes a display, its bounds and its usable work area.
type Monitor struct {
	Index   int               `json:"index" yaml:"index"`
	X       int               `json:"x" yaml:"x"`
	Y       int               `json:"y" yaml:"y"`
	W       int               `json:"w" yaml:"w"`
	H       int               `json:"h" yaml:"h"`
	Work    geometry.WorkArea `json:"work" yaml:"work"`
	Primary bool              `json:"primary" yaml:"primary"`
	// DPI is the effective DPI; zero when unknown.
	DPI int `json:"dpi,omitempty" yaml:"dpi,omitempty"`
}

// Scale returns the display scale factor, 1 for 96 DPI or unknown DPI.
func (m Monitor) Scale() float64 {
	if m.DPI <= 0 {
		return 1
	}
	return float64(m.DPI) / BaseDPI
}

// GetMonitorByIndex returns the monitor matching the 1-based index.
func GetMonitorByIndex(list []Monitor, idx int) (Monitor, bool) {
	for _, m := range list {
		if m.Index == idx {
			return m, true
		}
	}
	return Monitor{}, false
}

// Primary returns the monitor flagged as primary.
func Primary(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	return Monitor{}, false
}

// PrimaryWorkArea queries the OS and returns the primary work area in physical pixels.
// It is never cached: displays can be reconfigured between calls.
func PrimaryWorkArea() (geometry.WorkArea, error) {
	list, err := ListMonitors()
	if err != nil {
		return geometry.WorkArea{}, err
	}
	return PrimaryWorkAreaOf(list)
}

// PrimaryWorkAreaOf selects and validates the primary work area from a monitor list.
func PrimaryWorkAreaOf(list []Monitor) (geometry.WorkArea, error) {
	m, ok := Primary(list)
	if !ok {
		return geometry.WorkArea{}, fmt.Errorf("%w: no primary monitor among %d", ErrDisplayUnavailable, len(list))
	}
	if !m.Work.Valid() {
		return geometry.WorkArea{}, fmt.Errorf("%w: primary work area %s is empty", ErrDisplayUnavailable, m.Work)
	}
	return m.Work, nil
}
