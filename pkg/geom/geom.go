// Package geom provides the pure geometry used by the canvas: points,
// sizes, and rectangles in canvas space, cubic Bézier evaluation for
// connection curves, and the affine transform between screen space and
// canvas space.
//
// All functions are total over well-formed numeric input and keep no
// state. Rendering layers and the canvas engine share these primitives
// so the drawn curves and the hit-tested curves can never diverge.
package geom

import "math"

// Point is a location in either canvas or screen space.
// Which space a point lives in is a property of the call site, not the type.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p with both coordinates multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is the width and height of a node or viewport.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the rectangle (edges inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Union returns the smallest rectangle covering both r and s.
// A zero-size rectangle is treated as empty and does not grow the result.
func (r Rect) Union(s Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return s
	}
	if s.Width == 0 && s.Height == 0 {
		return r
	}
	minX := math.Min(r.X, s.X)
	minY := math.Min(r.Y, s.Y)
	maxX := math.Max(r.X+r.Width, s.X+s.Width)
	maxY := math.Max(r.Y+r.Height, s.Y+s.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}
