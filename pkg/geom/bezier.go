package geom

import "math"

// Control-point policy thresholds. Pairs closer than nearAxisThreshold
// on one axis are treated as near-vertical or near-horizontal and get a
// dedicated offset rule so backwards and stacked layouts still produce
// readable curves.
const (
	nearAxisThreshold = 50

	verticalFloor      = 80   // minimum offset for near-vertical pairs
	horizontalMaxRatio = 0.40 // offset cap for near-horizontal pairs
	diagonalMinOffset  = 100  // lower clamp for diagonal pairs
	diagonalMaxRatio   = 0.45 // upper clamp for diagonal pairs
)

// CurveSamples is the number of evenly spaced points evaluated along a
// connection curve by [PointNearCurve]. Hit-test precision is bounded by
// this density: a point can be missed if the curve passes between two
// samples that are both farther away than the tolerance. For the curve
// lengths produced by port-to-port connections this error stays well
// under typical tolerances.
const CurveSamples = 51

// ControlOffset picks the horizontal control-point offset for a
// connection curve between two anchors separated by (dx, dy) at the
// given Euclidean distance.
//
// Three regimes:
//   - near-vertical (|dx| < 50): driven by dy with a floor of 80, so
//     stacked nodes still bow outward
//   - near-horizontal (|dy| < 50): capped at 40% of the distance, so
//     short straight runs stay flat
//   - diagonal: driven by dx, clamped to [100, 45% of the distance]
//
// The upper clamp wins when the interval is empty (very short curves).
func ControlOffset(dx, dy, distance float64) float64 {
	adx, ady := math.Abs(dx), math.Abs(dy)

	if adx < nearAxisThreshold {
		return math.Max(verticalFloor, ady*0.5)
	}
	if ady < nearAxisThreshold {
		return math.Min(adx*0.5, distance*horizontalMaxRatio)
	}

	off := adx * 0.5
	if off < diagonalMinOffset {
		off = diagonalMinOffset
	}
	if max := distance * diagonalMaxRatio; off > max {
		off = max
	}
	return off
}

// ConnectionControls returns the two control points for the cubic
// Bézier from an output anchor at from to an input anchor at to.
// Outputs leave their node to the right and inputs are entered from the
// left, so the first control extends +x from the source and the second
// extends -x from the target.
func ConnectionControls(from, to Point) (c1, c2 Point) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	off := ControlOffset(dx, dy, from.Distance(to))
	return Point{from.X + off, from.Y}, Point{to.X - off, to.Y}
}

// BezierPoint evaluates the cubic Bézier defined by p0..p3 at t in [0,1].
func BezierPoint(t float64, p0, p1, p2, p3 Point) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// PointNearCurve reports whether point lies within tolerance of the
// connection curve from an output anchor at from to an input anchor at
// to. The curve is sampled at [CurveSamples] evenly spaced t values and
// the minimum sample distance is compared against the tolerance; this
// is the canonical hit test for connections.
func PointNearCurve(point, from, to Point, tolerance float64) bool {
	c1, c2 := ConnectionControls(from, to)
	for i := 0; i < CurveSamples; i++ {
		t := float64(i) / float64(CurveSamples-1)
		if point.Distance(BezierPoint(t, from, c1, c2, to)) <= tolerance {
			return true
		}
	}
	return false
}
