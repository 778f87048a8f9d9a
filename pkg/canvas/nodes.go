package canvas

import (
	"math"

	"github.com/flowcanvas/flowcanvas/pkg/geom"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// autoPlaceOrigin is where the first auto-placed node lands.
var autoPlaceOrigin = geom.Point{X: 100, Y: 100}

// autoPlaceGap is the vertical gap between auto-placed nodes.
const autoPlaceGap = 40

// AddNodeAt creates a node of the given type at an explicit canvas
// position, makes it the exclusive selection, and returns a copy of it.
func (e *Engine) AddNodeAt(t graph.NodeType, position geom.Point) graph.Node {
	e.snapshot()
	n := graph.NewNode(t, position)
	e.doc.Nodes = append(e.doc.Nodes, n)
	e.lastAdded = n.ID
	e.selected = map[string]struct{}{n.ID: {}}
	e.selectedConn = ""
	e.notify(Change{Kind: KindGraph})
	e.notify(Change{Kind: KindSelection})
	return n.Clone()
}

// AddNode creates a node of the given type, auto-positioned below the
// last-added node. title and config are optional: an empty title takes
// the type's default, a nil config starts empty. The selection is left
// untouched. Returns a copy of the created node.
func (e *Engine) AddNode(t graph.NodeType, title string, config graph.Configuration) graph.Node {
	e.snapshot()
	n := graph.NewNode(t, e.nextAutoPosition())
	if title != "" {
		n.Title = title
	}
	if config != nil {
		n.Config = config
	}
	e.doc.Nodes = append(e.doc.Nodes, n)
	e.lastAdded = n.ID
	e.notify(Change{Kind: KindGraph})
	return n.Clone()
}

func (e *Engine) nextAutoPosition() geom.Point {
	last, ok := e.doc.Node(e.lastAdded)
	if !ok {
		return autoPlaceOrigin
	}
	return geom.Point{X: last.Position.X, Y: last.Position.Y + last.Size.Height + autoPlaceGap}
}

// RemoveNode removes the node and every connection touching it.
// No-op for an unknown ID.
func (e *Engine) RemoveNode(id string) {
	if _, ok := e.doc.Node(id); !ok {
		return
	}
	e.snapshot()
	e.removeNode(id)
	e.notify(Change{Kind: KindGraph})
}

// RemoveSelected removes every selected node with its connections,
// using a single history snapshot for the whole operation.
func (e *Engine) RemoveSelected() {
	if len(e.selected) == 0 {
		return
	}
	e.snapshot()
	for _, id := range e.SelectedNodeIDs() {
		e.removeNode(id)
	}
	e.notify(Change{Kind: KindGraph})
}

// removeNode deletes the node, cascades to its connections, and clears
// it from the selection. Callers are responsible for the history
// snapshot.
func (e *Engine) removeNode(id string) {
	e.doc.Nodes = deleteNode(e.doc.Nodes, id)
	kept := e.doc.Connections[:0]
	for _, c := range e.doc.Connections {
		if !c.Touches(id) {
			kept = append(kept, c)
		} else if c.ID == e.selectedConn {
			e.selectedConn = ""
		}
	}
	e.doc.Connections = kept
	delete(e.selected, id)
	if e.lastAdded == id {
		e.lastAdded = ""
	}
}

func deleteNode(nodes []graph.Node, id string) []graph.Node {
	for i := range nodes {
		if nodes[i].ID == id {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

// UpdateNode replaces the node with the same ID by a full, already
// validated copy. No-op when the ID is unknown.
func (e *Engine) UpdateNode(n graph.Node) {
	for i := range e.doc.Nodes {
		if e.doc.Nodes[i].ID == n.ID {
			e.snapshot()
			e.doc.Nodes[i] = n.Clone()
			e.notify(Change{Kind: KindGraph})
			return
		}
	}
}

// =============================================================================
// Move Protocol
// =============================================================================

// BeginMove starts a node drag: it records one history snapshot and
// captures the pre-drag position of every selected node. No-op when a
// drag is already active or nothing is selected.
func (e *Engine) BeginMove() {
	if e.drag != nil || len(e.selected) == 0 {
		return
	}
	e.snapshot()
	e.drag = make(map[string]geom.Point, len(e.selected))
	for id := range e.selected {
		if n, ok := e.doc.Node(id); ok {
			e.drag[id] = n.Position
		}
	}
	e.notify(Change{Kind: KindGesture})
}

// MoveSelected positions every dragged node at its captured pre-drag
// position plus delta. The delta is measured from the drag origin, not
// accumulated per frame, so repeated calls cannot drift: after d1 then
// d2 a node sits at captured + d2.
func (e *Engine) MoveSelected(delta geom.Point) {
	if e.drag == nil {
		return
	}
	for id, p0 := range e.drag {
		if n, ok := e.doc.Node(id); ok {
			n.Position = p0.Add(delta)
		}
	}
	e.notify(Change{Kind: KindGraph})
}

// EndMove finishes the drag. With snap true (and snapping enabled in
// the options) final positions are rounded to the grid; pass false to
// bypass snapping, e.g. while shift is held.
func (e *Engine) EndMove(snap bool) {
	if e.drag == nil {
		return
	}
	if snap && e.opts.SnapToGrid {
		for id := range e.drag {
			if n, ok := e.doc.Node(id); ok {
				n.Position = e.snapToGrid(n.Position)
			}
		}
	}
	e.drag = nil
	e.notify(Change{Kind: KindGraph})
	e.notify(Change{Kind: KindGesture})
}

func (e *Engine) snapToGrid(p geom.Point) geom.Point {
	g := e.opts.GridSize
	return geom.Point{
		X: math.Round(p.X/g) * g,
		Y: math.Round(p.Y/g) * g,
	}
}

// Precision selects the step size of keyboard nudges.
type Precision int

const (
	// PrecisionFine moves by one canvas unit.
	PrecisionFine Precision = iota
	// PrecisionNormal moves by one grid cell.
	PrecisionNormal
	// PrecisionCoarse moves by five grid cells.
	PrecisionCoarse
)

// NudgeSelected moves every selected node by direction scaled to the
// given precision. direction is a unit vector from the arrow keys;
// modifier state is passed in explicitly, the engine never polls input
// devices.
func (e *Engine) NudgeSelected(direction geom.Point, p Precision) {
	if len(e.selected) == 0 {
		return
	}
	step := 1.0
	switch p {
	case PrecisionNormal:
		step = e.opts.GridSize
	case PrecisionCoarse:
		step = e.opts.GridSize * 5
	}
	e.snapshot()
	for id := range e.selected {
		if n, ok := e.doc.Node(id); ok {
			n.Position = n.Position.Add(direction.Scale(step))
		}
	}
	e.notify(Change{Kind: KindGraph})
}

// =============================================================================
// Z-Order
// =============================================================================

// BringSelectedToFront moves the selected nodes to the end of the node
// list, making them topmost for rendering and hit testing. Relative
// order within each partition is preserved.
func (e *Engine) BringSelectedToFront() {
	if len(e.selected) == 0 {
		return
	}
	e.snapshot()
	rest, sel := e.partitionSelected()
	e.doc.Nodes = append(rest, sel...)
	e.notify(Change{Kind: KindGraph})
}

// SendSelectedToBack moves the selected nodes to the front of the node
// list, putting them behind everything else.
func (e *Engine) SendSelectedToBack() {
	if len(e.selected) == 0 {
		return
	}
	e.snapshot()
	rest, sel := e.partitionSelected()
	e.doc.Nodes = append(sel, rest...)
	e.notify(Change{Kind: KindGraph})
}

func (e *Engine) partitionSelected() (rest, sel []graph.Node) {
	for _, n := range e.doc.Nodes {
		if _, ok := e.selected[n.ID]; ok {
			sel = append(sel, n)
		} else {
			rest = append(rest, n)
		}
	}
	return rest, sel
}
