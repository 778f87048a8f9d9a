package graph

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/flowcanvas/flowcanvas/pkg/geom"
)

// NodeType identifies which kind of workflow step a node represents.
// The set is closed but extensible: unknown types round-trip through
// serialization untouched, they just get no default ports.
type NodeType string

const (
	NodeTypeTrigger   NodeType = "trigger"
	NodeTypeLLM       NodeType = "llm"
	NodeTypeTransform NodeType = "transform"
	NodeTypeCondition NodeType = "condition"
	NodeTypeAction    NodeType = "action"
	NodeTypeOutput    NodeType = "output"
)

// KnownNodeTypes lists the built-in node types in palette order.
var KnownNodeTypes = []NodeType{
	NodeTypeTrigger,
	NodeTypeLLM,
	NodeTypeTransform,
	NodeTypeCondition,
	NodeTypeAction,
	NodeTypeOutput,
}

// DefaultTitle returns the display title used when a node of this type
// is created without an explicit title.
func (t NodeType) DefaultTitle() string {
	switch t {
	case NodeTypeTrigger:
		return "Trigger"
	case NodeTypeLLM:
		return "LLM"
	case NodeTypeTransform:
		return "Transform"
	case NodeTypeCondition:
		return "Condition"
	case NodeTypeAction:
		return "Action"
	case NodeTypeOutput:
		return "Output"
	}
	return string(t)
}

// NewID returns a fresh identifier for a node, port, or connection.
func NewID() string { return uuid.NewString() }

// Port is a directional attachment point on a node. Ports are owned
// exclusively by their parent node and are never referenced by ID
// across nodes; connections name the (node, port) pair instead.
type Port struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Input bool   `json:"isInput"`
}

// DefaultNodeSize is the size assigned to newly created nodes.
var DefaultNodeSize = geom.Size{Width: 200, Height: 100}

// Configuration is the loosely typed per-node settings bag. Keys are
// type-specific; see the typed views in config.go for the known fields
// of each built-in node type.
type Configuration map[string]any

// Node is a placed, typed step on the canvas. Position is the
// canvas-space top-left corner. The port lists are fixed at creation
// per the node's type (see DefaultPorts) unless explicitly edited.
type Node struct {
	ID        string        `json:"id"`
	Type      NodeType      `json:"type"`
	Title     string        `json:"title"`
	Position  geom.Point    `json:"position"`
	Size      geom.Size     `json:"size"`
	Inputs    []Port        `json:"inputs"`
	Outputs   []Port        `json:"outputs"`
	Config    Configuration `json:"configuration"`
	Collapsed bool          `json:"isCollapsed"`
	Color     string        `json:"customColor,omitempty"`
}

// NewNode creates a node of the given type at position with fresh IDs
// and the type's default title, size, and port lists.
func NewNode(t NodeType, position geom.Point) Node {
	inputs, outputs := DefaultPorts(t)
	return Node{
		ID:       NewID(),
		Type:     t,
		Title:    t.DefaultTitle(),
		Position: position,
		Size:     DefaultNodeSize,
		Inputs:   inputs,
		Outputs:  outputs,
		Config:   Configuration{},
	}
}

// DefaultPorts returns the input and output port lists a node of the
// given type starts with. A trigger has no inputs, an output sink has
// no outputs, and a condition fans out into true/false branches.
// Unknown types get one input and one output.
func DefaultPorts(t NodeType) (inputs, outputs []Port) {
	in := func(label string) Port { return Port{ID: NewID(), Label: label, Input: true} }
	out := func(label string) Port { return Port{ID: NewID(), Label: label} }

	switch t {
	case NodeTypeTrigger:
		return nil, []Port{out("trigger")}
	case NodeTypeCondition:
		return []Port{in("input")}, []Port{out("true"), out("false")}
	case NodeTypeOutput:
		return []Port{in("input")}, nil
	default:
		return []Port{in("input")}, []Port{out("output")}
	}
}

// Bounds returns the node's axis-aligned bounding box in canvas space.
func (n Node) Bounds() geom.Rect {
	return geom.Rect{X: n.Position.X, Y: n.Position.Y, Width: n.Size.Width, Height: n.Size.Height}
}

// Port returns the port with the given ID from either side, and whether
// it was found.
func (n Node) Port(portID string) (Port, bool) {
	for _, p := range n.Inputs {
		if p.ID == portID {
			return p, true
		}
	}
	for _, p := range n.Outputs {
		if p.ID == portID {
			return p, true
		}
	}
	return Port{}, false
}

// Clone returns a deep copy of the node with no shared substructure.
func (n Node) Clone() Node {
	c := n
	c.Inputs = slices.Clone(n.Inputs)
	c.Outputs = slices.Clone(n.Outputs)
	if n.Config != nil {
		c.Config = maps.Clone(n.Config)
	}
	return c
}

// Equal reports structural equality with another node.
// Configuration values are compared by deepEqual semantics.
func (n Node) Equal(o Node) bool {
	return n.ID == o.ID &&
		n.Type == o.Type &&
		n.Title == o.Title &&
		n.Position == o.Position &&
		n.Size == o.Size &&
		n.Collapsed == o.Collapsed &&
		n.Color == o.Color &&
		slices.Equal(n.Inputs, o.Inputs) &&
		slices.Equal(n.Outputs, o.Outputs) &&
		configEqual(n.Config, o.Config)
}
