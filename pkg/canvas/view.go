package canvas

import (
	"math"

	"github.com/flowcanvas/flowcanvas/pkg/geom"
)

// View operations mutate only the pan offset and zoom scale. They are
// never history-tracked: panning and zooming are not graph edits.

// zoomSnapEpsilon is the scale difference under which an animation
// tick snaps to the target.
const zoomSnapEpsilon = 0.001

// zoomLerpFactor is the fraction of the remaining distance covered per
// animation tick.
const zoomLerpFactor = 0.25

// fitMargin is the canvas-space padding added around the node bounds by
// ZoomToFit.
const fitMargin = 40

// Pan translates the view by a screen-space delta.
func (e *Engine) Pan(delta geom.Point) {
	e.offset = e.offset.Add(delta)
	e.notify(Change{Kind: KindView})
}

// ResetView restores the identity transform: no pan, scale 1.
func (e *Engine) ResetView() {
	e.offset = geom.Point{}
	e.scale = 1
	e.targetScale = 1
	e.notify(Change{Kind: KindView})
}

// ZoomIn raises the target scale by one zoom step. The view animates
// toward it via TickZoom.
func (e *Engine) ZoomIn() { e.SetZoom(e.targetScale * e.opts.ZoomStep) }

// ZoomOut lowers the target scale by one zoom step.
func (e *Engine) ZoomOut() { e.SetZoom(e.targetScale / e.opts.ZoomStep) }

// SetZoom sets the target scale, clamped to the configured bounds.
// The current scale is unchanged until TickZoom advances it.
func (e *Engine) SetZoom(scale float64) {
	e.targetScale = e.clampScale(scale)
	e.notify(Change{Kind: KindView})
}

// TickZoom advances the animated scale one step toward the target and
// reports whether further ticks are needed. Hosts drive this from their
// frame timer; calling it when the scale is settled is a cheap no-op.
func (e *Engine) TickZoom() bool {
	diff := e.targetScale - e.scale
	if math.Abs(diff) < zoomSnapEpsilon {
		if e.scale != e.targetScale {
			e.scale = e.targetScale
			e.notify(Change{Kind: KindView})
		}
		return false
	}
	e.scale += diff * zoomLerpFactor
	e.notify(Change{Kind: KindView})
	return true
}

// ZoomToward zooms by the given factor keeping the canvas point under
// the screen-space focus stationary, the way wheel zoom behaves. The
// change is immediate (scale and target move together).
func (e *Engine) ZoomToward(focus geom.Point, factor float64) {
	newScale := e.clampScale(e.scale * factor)
	if newScale == e.scale {
		return
	}
	anchor := geom.CanvasPoint(focus, e.offset, e.scale)
	e.scale = newScale
	e.targetScale = newScale
	e.offset = geom.Point{
		X: focus.X - anchor.X*newScale,
		Y: focus.Y - anchor.Y*newScale,
	}
	e.notify(Change{Kind: KindView})
}

// ZoomToFit pans and zooms so every node is visible inside the given
// screen-space viewport, with a fixed margin. No-op for an empty graph.
func (e *Engine) ZoomToFit(viewport geom.Size) {
	bounds, ok := e.doc.Bounds()
	if !ok || viewport.Width <= 0 || viewport.Height <= 0 {
		return
	}
	bounds.X -= fitMargin
	bounds.Y -= fitMargin
	bounds.Width += 2 * fitMargin
	bounds.Height += 2 * fitMargin

	scale := e.clampScale(math.Min(viewport.Width/bounds.Width, viewport.Height/bounds.Height))
	center := bounds.Center()
	e.scale = scale
	e.targetScale = scale
	e.offset = geom.Point{
		X: viewport.Width/2 - center.X*scale,
		Y: viewport.Height/2 - center.Y*scale,
	}
	e.notify(Change{Kind: KindView})
}

func (e *Engine) clampScale(s float64) float64 {
	if s < e.opts.MinScale {
		return e.opts.MinScale
	}
	if s > e.opts.MaxScale {
		return e.opts.MaxScale
	}
	return s
}
