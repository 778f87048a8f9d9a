package graph

// CanConnect reports whether a connection may be formed between the two
// anchors. The rules are checked in order:
//
//  1. not the same port
//  2. not the same node (no self-loops, even across distinct ports)
//  3. polarity must differ: exactly one anchor is an input
//  4. no existing connection already joins the same output→input port
//     pair, ignoring the connection identified by excludeConnID
//
// excludeConnID is used during reconnection so that dropping a dragged
// end back onto its original partner stays legal; pass "" otherwise.
func (d *Document) CanConnect(source, target Anchor, excludeConnID string) bool {
	if source.NodeID == target.NodeID && source.PortID == target.PortID {
		return false
	}
	if source.NodeID == target.NodeID {
		return false
	}
	if source.Input == target.Input {
		return false
	}

	// Normalize so the output side is the connection source.
	out, in := source, target
	if out.Input {
		out, in = in, out
	}
	for _, c := range d.Connections {
		if c.ID == excludeConnID {
			continue
		}
		if c.SourceNodeID == out.NodeID && c.SourcePortID == out.PortID &&
			c.TargetNodeID == in.NodeID && c.TargetPortID == in.PortID {
			return false
		}
	}
	return true
}

// PortKey builds the composite key identifying a port across the whole
// document. Port IDs are only unique within their owning node (pasting
// duplicates them), so sets of ports are keyed by the pair.
func PortKey(nodeID, portID string) string { return nodeID + ":" + portID }

// ValidDropPorts computes every port on every other node that
// [Document.CanConnect] currently accepts as the far end of a
// connection from source, keyed by [PortKey]. The engine recomputes
// this once per drag-start or anchor change, not per pointer move; drag
// updates only resolve snap candidates from the cached result.
func (d *Document) ValidDropPorts(source Anchor, excludeConnID string) map[string]Anchor {
	valid := make(map[string]Anchor)
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if n.ID == source.NodeID {
			continue
		}
		for _, port := range n.Inputs {
			d.addIfConnectable(valid, source, n.ID, port, excludeConnID)
		}
		for _, port := range n.Outputs {
			d.addIfConnectable(valid, source, n.ID, port, excludeConnID)
		}
	}
	return valid
}

func (d *Document) addIfConnectable(valid map[string]Anchor, source Anchor, nodeID string, port Port, excludeConnID string) {
	pos, ok := d.PortPosition(nodeID, port.ID)
	if !ok {
		return
	}
	target := Anchor{NodeID: nodeID, PortID: port.ID, Position: pos, Input: port.Input}
	if d.CanConnect(source, target, excludeConnID) {
		valid[PortKey(nodeID, port.ID)] = target
	}
}
