// Package geom provides the small set of geometry types shared by the view
// layer and the drag engine.
//
// Coordinates are page coordinates: x grows to the right, y grows downward.
// The terminal front end uses one unit per character cell; other hosts may
// use pixels.
package geom

import "fmt"

// Point is a position in page coordinates.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned box. Right and Bottom are the far edges, so a box
// at (0,0) with size 3x2 has Right=3 and Bottom=2.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectAt builds a Rect from an origin and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{Left: p.X, Top: p.Y, Right: p.X + s.W, Bottom: p.Y + s.H}
}

// Width returns the horizontal span of the box.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the box.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.Left, Y: r.Top} }

// Contains reports whether p lies inside r. All four edges are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g → %g,%g]", r.Left, r.Top, r.Right, r.Bottom)
}

// Edges holds per-side lengths such as margins or paddings.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns Left+Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top+Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }
