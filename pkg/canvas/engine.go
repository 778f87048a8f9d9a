// Package canvas implements the state engine behind the node-graph
// editor: the single mutation surface that UI gesture handlers call
// into. The engine owns the graph document, the selection, the
// drag-session and pending-connection state, the undo/redo history, and
// the pan/zoom transform. Rendering and gesture layers only read from
// it and call its mutation methods; the engine never calls back into
// any UI package (hosts subscribe to change notifications instead).
//
// The engine is strictly single-threaded: every method runs to
// completion before the next event is dispatched, so no internal
// locking is performed. A host embedding the engine in a multi-threaded
// environment must serialize all calls through one queue.
//
// Invalid mutation requests (self-loops, duplicate connections, stale
// IDs) degrade to no-ops instead of returning errors; see the package
// documentation of graph for the invariants this preserves.
package canvas

import (
	"slices"

	"github.com/flowcanvas/flowcanvas/pkg/geom"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
	"github.com/flowcanvas/flowcanvas/pkg/history"
)

// Options configures an engine instance.
type Options struct {
	// GridSize is the grid pitch, in canvas units, used by drag-end
	// snapping and coarse nudges.
	GridSize float64

	// SnapToGrid enables position snapping at drag end. Individual
	// drags can still bypass it (shift-drag passes snap=false).
	SnapToGrid bool

	// PasteOffset is the translation applied to pasted nodes so they
	// do not cover their originals.
	PasteOffset geom.Point

	// HistoryLimit bounds the undo stack. Zero means
	// history.DefaultLimit.
	HistoryLimit int

	// MinScale and MaxScale bound the zoom factor.
	MinScale float64
	MaxScale float64

	// ZoomStep is the factor applied by ZoomIn/ZoomOut.
	ZoomStep float64

	// Clipboard overrides the copy/paste transport. Nil selects the
	// system clipboard.
	Clipboard Clipboard
}

// DefaultOptions returns the recommended editor options, snapping
// included. Pass the result to New, adjusted as needed; New fills in
// unset numeric fields but leaves SnapToGrid alone.
func DefaultOptions() Options {
	return Options{
		GridSize:    20,
		SnapToGrid:  true,
		PasteOffset: geom.Point{X: 20, Y: 20},
		MinScale:    0.25,
		MaxScale:    2.5,
		ZoomStep:    1.2,
	}
}

// Engine is the canvas state engine. Create instances with New; the
// zero value is not usable.
type Engine struct {
	doc graph.Document

	selected     map[string]struct{}
	selectedConn string

	hist      *history.Manager
	restoring bool

	drag      map[string]geom.Point // node ID → pre-drag position
	pending   *graph.PendingConnection
	reconn    *graph.Connection // original connection during reconnection
	validDrop map[string]graph.Anchor

	offset      geom.Point
	scale       float64
	targetScale float64

	lastAdded string // node ID, used for auto-placement

	opts Options
	clip Clipboard

	subs    map[int]func(Change)
	nextSub int
}

// New creates an engine with the given options. Unset numeric fields
// (GridSize, PasteOffset, MinScale, MaxScale, ZoomStep) and a nil
// Clipboard fall back to their defaults; SnapToGrid is taken as given,
// so New(Options{}) starts with snapping off even though
// DefaultOptions enables it.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.GridSize <= 0 {
		opts.GridSize = def.GridSize
	}
	if opts.PasteOffset == (geom.Point{}) {
		opts.PasteOffset = def.PasteOffset
	}
	if opts.MinScale <= 0 {
		opts.MinScale = def.MinScale
	}
	if opts.MaxScale <= opts.MinScale {
		opts.MaxScale = def.MaxScale
	}
	if opts.ZoomStep <= 1 {
		opts.ZoomStep = def.ZoomStep
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	return &Engine{
		selected:    make(map[string]struct{}),
		hist:        history.New(opts.HistoryLimit),
		scale:       1,
		targetScale: 1,
		opts:        opts,
		clip:        clip,
		subs:        make(map[int]func(Change)),
	}
}

// =============================================================================
// Read Accessors
// =============================================================================

// Nodes returns the node list in z-order (last is topmost). The slice
// is the engine's live state - treat it as a read-only view.
func (e *Engine) Nodes() []graph.Node { return e.doc.Nodes }

// Connections returns the connection list. Treat as a read-only view.
func (e *Engine) Connections() []graph.Connection { return e.doc.Connections }

// SelectedNodeIDs returns the selected node IDs in sorted order.
func (e *Engine) SelectedNodeIDs() []string {
	ids := make([]string, 0, len(e.selected))
	for id := range e.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SelectedConnectionID returns the selected connection, if any.
// Node and connection selection are mutually exclusive.
func (e *Engine) SelectedConnectionID() (string, bool) {
	return e.selectedConn, e.selectedConn != ""
}

// Offset returns the pan offset (screen-space translation).
func (e *Engine) Offset() geom.Point { return e.offset }

// Scale returns the current zoom factor.
func (e *Engine) Scale() float64 { return e.scale }

// TargetScale returns the zoom factor the view is animating toward.
func (e *Engine) TargetScale() float64 { return e.targetScale }

// PendingConnection returns the in-progress drag-to-connect state, if a
// port drag is active.
func (e *Engine) PendingConnection() (graph.PendingConnection, bool) {
	if e.pending == nil {
		return graph.PendingConnection{}, false
	}
	return *e.pending, true
}

// ReconnectingConnection returns the original connection currently
// being re-anchored, if a reconnection drag is active.
func (e *Engine) ReconnectingConnection() (graph.Connection, bool) {
	if e.reconn == nil {
		return graph.Connection{}, false
	}
	return *e.reconn, true
}

// ValidDropPorts returns the anchors that the current drag may legally
// complete on. Empty outside a drag. Recomputed at drag start, not per
// pointer move.
func (e *Engine) ValidDropPorts() []graph.Anchor {
	anchors := make([]graph.Anchor, 0, len(e.validDrop))
	for _, a := range e.validDrop {
		anchors = append(anchors, a)
	}
	slices.SortFunc(anchors, func(a, b graph.Anchor) int {
		ka, kb := graph.PortKey(a.NodeID, a.PortID), graph.PortKey(b.NodeID, b.PortID)
		if ka < kb {
			return -1
		}
		if ka > kb {
			return 1
		}
		return 0
	})
	return anchors
}

// IsValidDropPort reports whether the port is a legal completion target
// for the current drag.
func (e *Engine) IsValidDropPort(nodeID, portID string) bool {
	_, ok := e.validDrop[graph.PortKey(nodeID, portID)]
	return ok
}

// PortPosition resolves a port's canvas-space anchor point.
// See [graph.Document.PortPosition].
func (e *Engine) PortPosition(nodeID, portID string) (geom.Point, bool) {
	return e.doc.PortPosition(nodeID, portID)
}

// NodeAt returns a copy of the topmost node under the canvas-space
// point.
func (e *Engine) NodeAt(p geom.Point) (graph.Node, bool) {
	n, ok := e.doc.NodeAt(p)
	if !ok {
		return graph.Node{}, false
	}
	return n.Clone(), true
}

// ConnectionAt returns the topmost connection whose curve passes within
// tolerance of the canvas-space point.
func (e *Engine) ConnectionAt(p geom.Point, tolerance float64) (string, bool) {
	return e.doc.ConnectionAt(p, tolerance)
}

// PortAt returns an anchor for the first port within tolerance of the
// canvas-space point (first-match policy, see [graph.Document.PortAt]).
func (e *Engine) PortAt(p geom.Point, tolerance float64) (graph.Anchor, bool) {
	return e.doc.PortAt(p, tolerance)
}

// =============================================================================
// History
// =============================================================================

// snapshot records the pre-mutation state on the undo stack. Skipped
// while a restore is in flight (Undo/Redo re-entrancy guard); the
// manager de-duplicates structurally identical pushes.
func (e *Engine) snapshot() {
	if e.restoring {
		return
	}
	e.hist.Push(history.Capture(&e.doc, e.SelectedNodeIDs()))
}

// CanUndo reports whether Undo would restore a prior state.
func (e *Engine) CanUndo() bool { return e.hist.CanUndo() }

// CanRedo reports whether Redo would restore an undone state.
func (e *Engine) CanRedo() bool { return e.hist.CanRedo() }

// Undo restores the most recent undo snapshot. No-op when the undo
// stack is empty.
func (e *Engine) Undo() {
	s, ok := e.hist.Undo(history.Capture(&e.doc, e.SelectedNodeIDs()))
	if !ok {
		return
	}
	e.restore(s)
}

// Redo restores the most recently undone state. No-op when the redo
// stack is empty; any new mutation clears it.
func (e *Engine) Redo() {
	s, ok := e.hist.Redo(history.Capture(&e.doc, e.SelectedNodeIDs()))
	if !ok {
		return
	}
	e.restore(s)
}

func (e *Engine) restore(s history.Snapshot) {
	e.restoring = true
	defer func() { e.restoring = false }()

	e.doc = s.Document.Clone()
	e.selected = make(map[string]struct{}, len(s.Selected))
	for _, id := range s.Selected {
		e.selected[id] = struct{}{}
	}
	e.selectedConn = ""
	e.clearGesture()
	e.notify(Change{Kind: KindGraph})
	e.notify(Change{Kind: KindSelection})
}

// clearGesture drops any in-flight drag or pending-connection state.
func (e *Engine) clearGesture() {
	e.drag = nil
	e.pending = nil
	e.reconn = nil
	e.validDrop = nil
}
