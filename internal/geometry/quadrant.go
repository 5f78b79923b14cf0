package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidArgument reports ratios or areas that cannot produce a usable rectangle.
var ErrInvalidArgument = errors.New("invalid argument")

// Default ratios used by the launcher layout.
const (
	DefaultFillRatio       = 0.995
	DefaultEdgeMarginRatio = 0.01
)

// Quadrant names one axis-aligned quarter of the work area.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// Quadrants lists all quadrants in reading order.
var Quadrants = []Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

// String returns the short quadrant code.
func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "TL"
	case TopRight:
		return "TR"
	case BottomLeft:
		return "BL"
	case BottomRight:
		return "BR"
	default:
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
}

// Valid reports whether q is one of the four quadrants.
func (q Quadrant) Valid() bool {
	return q >= TopLeft && q <= BottomRight
}

// MarshalText encodes the quadrant as its short code.
func (q Quadrant) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: quadrant %d", ErrInvalidArgument, int(q))
	}
	return []byte(q.String()), nil
}

// UnmarshalText decodes a quadrant name accepted by ParseQuadrant.
func (q *Quadrant) UnmarshalText(text []byte) error {
	parsed, err := ParseQuadrant(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// ParseQuadrant converts TL/TR/BL/BR or top-left style names into a Quadrant.
func ParseQuadrant(s string) (Quadrant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tl", "top-left", "topleft", "top_left":
		return TopLeft, nil
	case "tr", "top-right", "topright", "top_right":
		return TopRight, nil
	case "bl", "bottom-left", "bottomleft", "bottom_left":
		return BottomLeft, nil
	case "br", "bottom-right", "bottomright", "bottom_right":
		return BottomRight, nil
	default:
		return TopLeft, fmt.Errorf("%w: unknown quadrant %q (expected TL, TR, BL or BR)", ErrInvalidArgument, s)
	}
}

// ValidateRatios checks fill in (0,1] and margin in [0,0.5).
func ValidateRatios(fillRatio, edgeMarginRatio float64) error {
	if !(fillRatio > 0 && fillRatio <= 1) {
		return fmt.Errorf("%w: fill ratio %v must be in (0,1]", ErrInvalidArgument, fillRatio)
	}
	if !(edgeMarginRatio >= 0 && edgeMarginRatio < 0.5) {
		return fmt.Errorf("%w: edge margin ratio %v must be in [0,0.5)", ErrInvalidArgument, edgeMarginRatio)
	}
	return nil
}

// QuadrantRect maps a quadrant of the work area to a physical-pixel rectangle.
//
// The margin is edgeMarginRatio of the shorter side, rounded half away from
// zero. Each quadrant is half of the margined span scaled by fillRatio, rounded
// the same way and capped at the integer half span so opposite quadrants never
// overlap. Left/top quadrants hug the margin; right/bottom ones hug the far edge.
func QuadrantRect(area WorkArea, q Quadrant, fillRatio, edgeMarginRatio float64) (Rect, error) {
	if !q.Valid() {
		return Rect{}, fmt.Errorf("%w: quadrant %d", ErrInvalidArgument, int(q))
	}
	m, iw, ih, err := margined(area, fillRatio, edgeMarginRatio)
	if err != nil {
		return Rect{}, err
	}

	hw := min(roundHalf(float64(iw)*fillRatio/2), iw/2)
	hh := min(roundHalf(float64(ih)*fillRatio/2), ih/2)
	if hw < 1 || hh < 1 {
		return Rect{}, fmt.Errorf("%w: work area %s too small for quadrant layout", ErrInvalidArgument, area)
	}

	r := Rect{X: area.Left + m, Y: area.Top + m, W: hw, H: hh}
	if q == TopRight || q == BottomRight {
		r.X = area.Right - m - hw
	}
	if q == BottomLeft || q == BottomRight {
		r.Y = area.Bottom - m - hh
	}
	return r, nil
}

// FullRect returns the margined work area scaled by fillRatio and centered.
func FullRect(area WorkArea, fillRatio, edgeMarginRatio float64) (Rect, error) {
	m, iw, ih, err := margined(area, fillRatio, edgeMarginRatio)
	if err != nil {
		return Rect{}, err
	}
	w := min(roundHalf(float64(iw)*fillRatio), iw)
	h := min(roundHalf(float64(ih)*fillRatio), ih)
	if w < 1 || h < 1 {
		return Rect{}, fmt.Errorf("%w: work area %s too small for full layout", ErrInvalidArgument, area)
	}
	return Rect{
		X: area.Left + m + (iw-w)/2,
		Y: area.Top + m + (ih-h)/2,
		W: w,
		H: h,
	}, nil
}

// margined validates inputs and returns the margin and inner span.
func margined(area WorkArea, fillRatio, edgeMarginRatio float64) (m, iw, ih int, err error) {
	if err := ValidateRatios(fillRatio, edgeMarginRatio); err != nil {
		return 0, 0, 0, err
	}
	if !area.Valid() {
		return 0, 0, 0, fmt.Errorf("%w: work area %s is empty", ErrInvalidArgument, area)
	}
	m = roundHalf(edgeMarginRatio * float64(min(area.Width(), area.Height())))
	iw = area.Width() - 2*m
	ih = area.Height() - 2*m
	if iw < 1 || ih < 1 {
		return 0, 0, 0, fmt.Errorf("%w: margin %d leaves no room in %s", ErrInvalidArgument, m, area)
	}
	return m, iw, ih, nil
}

// roundHalf rounds half away from zero.
func roundHalf(v float64) int {
	return int(math.Round(v))
}
