package canvas

import (
	"github.com/flowcanvas/flowcanvas/pkg/geom"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// AddConnection validates and appends a connection. The source must
// resolve to an output port and the target to an input port; self-loops
// and duplicates of an existing port pair are silently rejected.
// Returns whether the connection was accepted.
func (e *Engine) AddConnection(c graph.Connection) bool {
	src, target, ok := e.resolveEndpoints(c)
	if !ok || !e.doc.CanConnect(src, target, "") {
		return false
	}
	e.snapshot()
	if c.ID == "" {
		c.ID = graph.NewID()
	}
	e.doc.Connections = append(e.doc.Connections, c)
	e.notify(Change{Kind: KindGraph})
	return true
}

// resolveEndpoints checks construction-time polarity: the connection's
// source pair must name an output port and its target pair an input
// port on existing nodes.
func (e *Engine) resolveEndpoints(c graph.Connection) (src, dst graph.Anchor, ok bool) {
	srcNode, okS := e.doc.Node(c.SourceNodeID)
	dstNode, okD := e.doc.Node(c.TargetNodeID)
	if !okS || !okD {
		return src, dst, false
	}
	srcPort, okS := srcNode.Port(c.SourcePortID)
	dstPort, okD := dstNode.Port(c.TargetPortID)
	if !okS || !okD || srcPort.Input || !dstPort.Input {
		return src, dst, false
	}
	srcPos, _ := e.doc.PortPosition(c.SourceNodeID, c.SourcePortID)
	dstPos, _ := e.doc.PortPosition(c.TargetNodeID, c.TargetPortID)
	src = graph.Anchor{NodeID: c.SourceNodeID, PortID: c.SourcePortID, Position: srcPos}
	dst = graph.Anchor{NodeID: c.TargetNodeID, PortID: c.TargetPortID, Position: dstPos, Input: true}
	return src, dst, true
}

// RemoveConnection removes the connection with the given ID.
// No-op for an unknown ID.
func (e *Engine) RemoveConnection(id string) {
	for i, c := range e.doc.Connections {
		if c.ID == id {
			e.snapshot()
			e.doc.Connections = append(e.doc.Connections[:i], e.doc.Connections[i+1:]...)
			if e.selectedConn == id {
				e.selectedConn = ""
			}
			e.notify(Change{Kind: KindGraph})
			return
		}
	}
}

// =============================================================================
// Drag-to-Connect Protocol
// =============================================================================

// StartConnectionFromPort opens a pending connection dragged from the
// given port and computes the set of valid drop targets. No-op when the
// port cannot be resolved or a drag is already active.
func (e *Engine) StartConnectionFromPort(nodeID, portID string) {
	if e.pending != nil {
		return
	}
	n, ok := e.doc.Node(nodeID)
	if !ok {
		return
	}
	port, ok := n.Port(portID)
	if !ok {
		return
	}
	pos, ok := e.doc.PortPosition(nodeID, portID)
	if !ok {
		return
	}
	from := graph.Anchor{NodeID: nodeID, PortID: portID, Position: pos, Input: port.Input}
	e.pending = &graph.PendingConnection{From: from, Pointer: pos}
	e.validDrop = e.doc.ValidDropPorts(from, "")
	e.notify(Change{Kind: KindGesture})
}

// UpdatePendingPointer moves the floating end of the pending connection
// to the canvas-space point. Only the cached pointer is updated; the
// valid drop set computed at drag start stays as is.
func (e *Engine) UpdatePendingPointer(p geom.Point) {
	if e.pending == nil {
		return
	}
	e.pending.Pointer = p
	e.notify(Change{Kind: KindGesture})
}

// NearestDropPort returns the closest valid drop anchor within
// tolerance of the canvas-space point, for snap feedback during the
// drag. Unlike PortAt this resolves by distance, but only over the
// cached valid set.
func (e *Engine) NearestDropPort(p geom.Point, tolerance float64) (graph.Anchor, bool) {
	var best graph.Anchor
	bestDist := tolerance
	found := false
	for _, a := range e.validDrop {
		if d := p.Distance(a.Position); d <= bestDist {
			best, bestDist, found = a, d, true
		}
	}
	return best, found
}

// CompleteConnection resolves the pending drag on the given target
// anchor. A drop on a valid port commits a new connection (or rewires
// the one being reconnected); any other drop leaves the graph
// untouched. Either way the drag state is cleared. Returns whether a
// connection was committed.
func (e *Engine) CompleteConnection(target graph.Anchor) bool {
	if e.pending == nil {
		return false
	}
	if e.reconn != nil {
		return e.completeReconnection(&target)
	}

	from := e.pending.From
	defer e.cancelGesture()

	if !e.IsValidDropPort(target.NodeID, target.PortID) {
		return false
	}
	e.snapshot()
	e.doc.Connections = append(e.doc.Connections, newNormalized(from, target))
	e.notify(Change{Kind: KindGraph})
	return true
}

// CompleteConnectionAt is CompleteConnection with hit testing: the drop
// point resolves to the nearest valid port within the default port
// tolerance.
func (e *Engine) CompleteConnectionAt(p geom.Point) bool {
	target, ok := e.NearestDropPort(p, graph.DefaultPortTolerance)
	if !ok {
		e.CancelPendingConnection()
		return false
	}
	return e.CompleteConnection(target)
}

// CancelPendingConnection abandons the in-progress drag. For a
// reconnection the original connection is left untouched.
func (e *Engine) CancelPendingConnection() {
	if e.pending == nil {
		return
	}
	e.cancelGesture()
}

func (e *Engine) cancelGesture() {
	e.pending = nil
	e.reconn = nil
	e.validDrop = nil
	e.notify(Change{Kind: KindGesture})
}

// newNormalized builds a connection from two anchors of opposite
// polarity, putting the output side first.
func newNormalized(a, b graph.Anchor) graph.Connection {
	out, in := a, b
	if out.Input {
		out, in = in, out
	}
	return graph.NewConnection(out.NodeID, out.PortID, in.NodeID, in.PortID)
}

// =============================================================================
// Reconnection
// =============================================================================

// StartReconnection begins re-anchoring one end of an existing
// connection. With fromSource true the source end is picked up and the
// target end stays fixed; otherwise the reverse. The fixed end becomes
// the pending connection's anchor, and the connection being edited is
// excluded from duplicate checks so dropping back onto its original
// partner stays legal. Returns whether the drag started.
func (e *Engine) StartReconnection(connectionID string, fromSource bool) bool {
	if e.pending != nil {
		return false
	}
	c, ok := e.doc.Connection(connectionID)
	if !ok {
		return false
	}

	fixedNode, fixedPort := c.TargetNodeID, c.TargetPortID
	fixedInput := true
	dragged := geom.Point{}
	if !fromSource {
		fixedNode, fixedPort = c.SourceNodeID, c.SourcePortID
		fixedInput = false
	}
	pos, ok := e.doc.PortPosition(fixedNode, fixedPort)
	if !ok {
		return false
	}
	if dragPos, ok := e.draggedEndPosition(c, fromSource); ok {
		dragged = dragPos
	} else {
		dragged = pos
	}

	orig := *c
	from := graph.Anchor{NodeID: fixedNode, PortID: fixedPort, Position: pos, Input: fixedInput}
	e.reconn = &orig
	e.pending = &graph.PendingConnection{From: from, Pointer: dragged}
	e.validDrop = e.doc.ValidDropPorts(from, orig.ID)
	e.notify(Change{Kind: KindGesture})
	return true
}

func (e *Engine) draggedEndPosition(c *graph.Connection, fromSource bool) (geom.Point, bool) {
	if fromSource {
		return e.doc.PortPosition(c.SourceNodeID, c.SourcePortID)
	}
	return e.doc.PortPosition(c.TargetNodeID, c.TargetPortID)
}

// CompleteReconnection resolves a reconnection drag. A nil target
// cancels: the original connection is left untouched. A valid target
// atomically swaps the original for the rewired connection in one
// history step; an invalid target behaves like cancel. Reconnection is
// all-or-nothing per attempt.
func (e *Engine) CompleteReconnection(target *graph.Anchor) bool {
	if e.reconn == nil {
		return false
	}
	return e.completeReconnection(target)
}

func (e *Engine) completeReconnection(target *graph.Anchor) bool {
	orig := *e.reconn
	from := e.pending.From
	defer e.cancelGesture()

	if target == nil || !e.IsValidDropPort(target.NodeID, target.PortID) {
		return false
	}

	e.snapshot()
	for i, c := range e.doc.Connections {
		if c.ID == orig.ID {
			e.doc.Connections = append(e.doc.Connections[:i], e.doc.Connections[i+1:]...)
			break
		}
	}
	e.doc.Connections = append(e.doc.Connections, newNormalized(from, *target))
	if e.selectedConn == orig.ID {
		e.selectedConn = ""
	}
	e.notify(Change{Kind: KindGraph})
	return true
}
