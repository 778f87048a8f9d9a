package geom

// CanvasPoint converts a screen-space point to canvas space given the
// current pan offset (screen-space translation) and zoom scale.
// It is the exact inverse of [ScreenPoint] up to floating-point error.
func CanvasPoint(screen, offset Point, scale float64) Point {
	return Point{
		X: (screen.X - offset.X) / scale,
		Y: (screen.Y - offset.Y) / scale,
	}
}

// ScreenPoint converts a canvas-space point to screen space given the
// current pan offset and zoom scale.
func ScreenPoint(canvas, offset Point, scale float64) Point {
	return Point{
		X: canvas.X*scale + offset.X,
		Y: canvas.Y*scale + offset.Y,
	}
}
