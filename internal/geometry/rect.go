// Package geometry computes window rectangles in physical screen pixels.
package geometry

import "fmt"

// Rect describes a rectangle using top-left origin and size.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// WorkArea is the usable area of a display, excluding taskbars, as edges.
type WorkArea struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Width returns the horizontal span of the work area.
func (a WorkArea) Width() int {
	return a.Right - a.Left
}

// Height returns the vertical span of the work area.
func (a WorkArea) Height() int {
	return a.Bottom - a.Top
}

// Valid reports whether the work area has a positive size.
func (a WorkArea) Valid() bool {
	return a.Right > a.Left && a.Bottom > a.Top
}

// Rect converts the edges into an origin/size rectangle.
func (a WorkArea) Rect() Rect {
	return Rect{X: a.Left, Y: a.Top, W: a.Width(), H: a.Height()}
}

// String formats the work area as L,T,R,B.
func (a WorkArea) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", a.Left, a.Top, a.Right, a.Bottom)
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Area returns the pixel area, or zero for empty rectangles.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle has no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether two rectangles share at least one pixel.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Within reports whether the rectangle lies entirely inside the work area.
func (r Rect) Within(a WorkArea) bool {
	return r.X >= a.Left && r.Y >= a.Top && r.Right() <= a.Right && r.Bottom() <= a.Bottom
}

// String formats the rectangle as x,y wxh.
func (r Rect) String() string {
	return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H)
}

// Normalize returns a rectangle with non-negative width/height.
func Normalize(r Rect) Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// ClampRect shifts r so it stays inside the work area. Sizes larger than the
// area are shrunk to fit; the origin wins when the rect cannot fit at all.
func ClampRect(r Rect, a WorkArea) Rect {
	r = Normalize(r)
	if !a.Valid() {
		return r
	}
	if r.W > a.Width() {
		r.W = a.Width()
	}
	if r.H > a.Height() {
		r.H = a.Height()
	}
	if r.X < a.Left {
		r.X = a.Left
	}
	if r.Y < a.Top {
		r.Y = a.Top
	}
	if r.Right() > a.Right {
		r.X = a.Right - r.W
	}
	if r.Bottom() > a.Bottom {
		r.Y = a.Bottom - r.H
	}
	return r
}
