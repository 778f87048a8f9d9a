package graph

import "github.com/flowcanvas/flowcanvas/pkg/geom"

// Connection is a directed edge from an output port on the source node
// to an input port on the target node.
type Connection struct {
	ID           string `json:"id"`
	SourceNodeID string `json:"sourceNodeId"`
	SourcePortID string `json:"sourcePortId"`
	TargetNodeID string `json:"targetNodeId"`
	TargetPortID string `json:"targetPortId"`
}

// NewConnection creates a connection with a fresh ID between the given
// endpoints. The caller is responsible for polarity and duplicate
// checks; the canvas engine routes every construction through
// [Document.CanConnect].
func NewConnection(sourceNodeID, sourcePortID, targetNodeID, targetPortID string) Connection {
	return Connection{
		ID:           NewID(),
		SourceNodeID: sourceNodeID,
		SourcePortID: sourcePortID,
		TargetNodeID: targetNodeID,
		TargetPortID: targetPortID,
	}
}

// SamePorts reports whether two connections join the identical
// (output port → input port) pair, regardless of connection ID.
func (c Connection) SamePorts(o Connection) bool {
	return c.SourceNodeID == o.SourceNodeID &&
		c.SourcePortID == o.SourcePortID &&
		c.TargetNodeID == o.TargetNodeID &&
		c.TargetPortID == o.TargetPortID
}

// Touches reports whether the connection has the node as either endpoint.
func (c Connection) Touches(nodeID string) bool {
	return c.SourceNodeID == nodeID || c.TargetNodeID == nodeID
}

// Anchor is a transient, non-owning reference to one end of a
// connection being formed or edited. Position is a cached canvas-space
// location kept for drag responsiveness; [Document.PortPosition] stays
// the source of truth for geometry.
type Anchor struct {
	NodeID   string
	PortID   string
	Position geom.Point
	Input    bool
}

// PendingConnection is the ephemeral state of a connection dragged from
// a fixed anchor toward a floating pointer position. It exists only
// between a port-drag start and its resolution (commit, snap, or
// cancel).
type PendingConnection struct {
	From    Anchor
	Pointer geom.Point
}
