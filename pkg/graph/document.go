package graph

import (
	"errors"
	"slices"

	"github.com/flowcanvas/flowcanvas/pkg/geom"
)

var (
	// ErrDanglingConnection is returned by [Document.Validate] when a
	// connection references a node or port that does not exist.
	ErrDanglingConnection = errors.New("connection references unknown node or port")

	// ErrWrongPolarity is returned by [Document.Validate] when a
	// connection's source is not an output port or its target is not an
	// input port.
	ErrWrongPolarity = errors.New("connection source must be an output and target an input")

	// ErrDuplicateNodeID is returned by [Document.Validate] when two
	// nodes share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateConnection is returned by [Document.Validate] when two
	// connections join the identical port pair.
	ErrDuplicateConnection = errors.New("duplicate connection between the same port pair")
)

// DefaultPortTolerance is the hit-test radius, in canvas units, within
// which a point resolves to a port.
const DefaultPortTolerance = 15

// Document is the aggregate of all nodes and connections on one canvas.
// Node order is z-order: the last node in the slice is topmost for both
// rendering and hit testing.
type Document struct {
	Nodes       []Node
	Connections []Connection
}

// Node returns a pointer into the document's node list for the given ID.
// The pointer is invalidated by any mutation that grows or reorders the
// list.
func (d *Document) Node(id string) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// Connection returns a pointer into the document's connection list for
// the given ID.
func (d *Document) Connection(id string) (*Connection, bool) {
	for i := range d.Connections {
		if d.Connections[i].ID == id {
			return &d.Connections[i], true
		}
	}
	return nil, false
}

// PortPosition computes a port's canvas-space anchor point. Inputs are
// evenly distributed along the node's left edge and outputs along its
// right edge. Returns false if the node or port cannot be found, which
// callers must treat as "anchor currently unrenderable" rather than an
// error: IDs can legitimately go stale across gesture callbacks.
func (d *Document) PortPosition(nodeID, portID string) (geom.Point, bool) {
	n, ok := d.Node(nodeID)
	if !ok {
		return geom.Point{}, false
	}
	for i, p := range n.Inputs {
		if p.ID == portID {
			return geom.Point{
				X: n.Position.X,
				Y: portY(n.Position.Y, n.Size.Height, i, len(n.Inputs)),
			}, true
		}
	}
	for i, p := range n.Outputs {
		if p.ID == portID {
			return geom.Point{
				X: n.Position.X + n.Size.Width,
				Y: portY(n.Position.Y, n.Size.Height, i, len(n.Outputs)),
			}, true
		}
	}
	return geom.Point{}, false
}

func portY(top, height float64, index, count int) float64 {
	return top + (float64(index)+0.5)*height/float64(count)
}

// NodeAt returns the topmost node whose bounding box contains the
// canvas-space point. Later nodes in the list win ties (z-order).
func (d *Document) NodeAt(p geom.Point) (*Node, bool) {
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		if d.Nodes[i].Bounds().Contains(p) {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// ConnectionAt returns the ID of the topmost connection whose curve
// passes within tolerance of the canvas-space point. Connections whose
// endpoints cannot currently be resolved are skipped.
func (d *Document) ConnectionAt(p geom.Point, tolerance float64) (string, bool) {
	for i := len(d.Connections) - 1; i >= 0; i-- {
		c := d.Connections[i]
		from, okF := d.PortPosition(c.SourceNodeID, c.SourcePortID)
		to, okT := d.PortPosition(c.TargetNodeID, c.TargetPortID)
		if !okF || !okT {
			continue
		}
		if geom.PointNearCurve(p, from, to, tolerance) {
			return c.ID, true
		}
	}
	return "", false
}

// PortAt returns an anchor for the first port within tolerance of the
// canvas-space point, scanning each node's inputs before its outputs.
// Overlapping ports resolve in iteration order, not by distance; this
// first-match policy is deliberate and documented rather than a
// closest-port guarantee.
func (d *Document) PortAt(p geom.Point, tolerance float64) (Anchor, bool) {
	for i := range d.Nodes {
		n := &d.Nodes[i]
		for _, port := range n.Inputs {
			if pos, ok := d.PortPosition(n.ID, port.ID); ok && p.Distance(pos) <= tolerance {
				return Anchor{NodeID: n.ID, PortID: port.ID, Position: pos, Input: true}, true
			}
		}
		for _, port := range n.Outputs {
			if pos, ok := d.PortPosition(n.ID, port.ID); ok && p.Distance(pos) <= tolerance {
				return Anchor{NodeID: n.ID, PortID: port.ID, Position: pos}, true
			}
		}
	}
	return Anchor{}, false
}

// Bounds returns the union of all node bounding boxes, and false for an
// empty document.
func (d *Document) Bounds() (geom.Rect, bool) {
	if len(d.Nodes) == 0 {
		return geom.Rect{}, false
	}
	r := d.Nodes[0].Bounds()
	for _, n := range d.Nodes[1:] {
		r = r.Union(n.Bounds())
	}
	return r, true
}

// Clone returns a deep copy of the document. The copy shares no mutable
// substructure with the original, making it safe to store as an
// immutable snapshot.
func (d *Document) Clone() Document {
	c := Document{
		Nodes:       make([]Node, len(d.Nodes)),
		Connections: slices.Clone(d.Connections),
	}
	for i, n := range d.Nodes {
		c.Nodes[i] = n.Clone()
	}
	return c
}

// Equal reports structural equality with another document, including
// node order (z-order is part of the state).
func (d *Document) Equal(o *Document) bool {
	if len(d.Nodes) != len(o.Nodes) || len(d.Connections) != len(o.Connections) {
		return false
	}
	for i := range d.Nodes {
		if !d.Nodes[i].Equal(o.Nodes[i]) {
			return false
		}
	}
	return slices.Equal(d.Connections, o.Connections)
}

// Validate checks document integrity: unique node IDs, connections that
// reference existing nodes and ports, output→input polarity, and no
// duplicate connections between the identical port pair. Used when
// importing external data; the engine's own mutations preserve these
// invariants by construction.
func (d *Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if _, dup := seen[n.ID]; dup {
			return ErrDuplicateNodeID
		}
		seen[n.ID] = struct{}{}
	}

	for i, c := range d.Connections {
		src, ok := d.Node(c.SourceNodeID)
		if !ok {
			return ErrDanglingConnection
		}
		dst, ok := d.Node(c.TargetNodeID)
		if !ok {
			return ErrDanglingConnection
		}
		srcPort, ok := src.Port(c.SourcePortID)
		if !ok {
			return ErrDanglingConnection
		}
		dstPort, ok := dst.Port(c.TargetPortID)
		if !ok {
			return ErrDanglingConnection
		}
		if srcPort.Input || !dstPort.Input {
			return ErrWrongPolarity
		}
		for _, prev := range d.Connections[:i] {
			if c.SamePorts(prev) {
				return ErrDuplicateConnection
			}
		}
	}
	return nil
}
