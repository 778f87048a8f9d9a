package canvas

import (
	sysclip "github.com/atotto/clipboard"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
	"github.com/flowcanvas/flowcanvas/pkg/graphio"
)

// Clipboard is the copy/paste transport. It is treated as opaque,
// synchronous, and fallible: a read error or undecodable payload means
// "nothing to paste", never a hard failure.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// SystemClipboard copies through the operating system clipboard.
type SystemClipboard struct{}

// ReadText returns the system clipboard contents.
func (SystemClipboard) ReadText() (string, error) { return sysclip.ReadAll() }

// WriteText replaces the system clipboard contents.
func (SystemClipboard) WriteText(text string) error { return sysclip.WriteAll(text) }

// MemoryClipboard is an in-process clipboard for tests and headless
// hosts.
type MemoryClipboard struct {
	text string
}

// ReadText returns the stored text.
func (m *MemoryClipboard) ReadText() (string, error) { return m.text, nil }

// WriteText stores the text.
func (m *MemoryClipboard) WriteText(text string) error {
	m.text = text
	return nil
}

// CopySelected serializes the induced subgraph - the selected nodes
// plus only the connections whose both endpoints are selected - to the
// interchange format on the clipboard. Returns whether anything was
// copied.
func (e *Engine) CopySelected() bool {
	if len(e.selected) == 0 {
		return false
	}

	var sub graph.Document
	for _, n := range e.doc.Nodes { // z-order preserved
		if _, ok := e.selected[n.ID]; ok {
			sub.Nodes = append(sub.Nodes, n.Clone())
		}
	}
	for _, c := range e.doc.Connections {
		_, srcSel := e.selected[c.SourceNodeID]
		_, dstSel := e.selected[c.TargetNodeID]
		if srcSel && dstSel {
			sub.Connections = append(sub.Connections, c)
		}
	}

	data, err := graphio.MarshalGraph(&sub)
	if err != nil {
		return false
	}
	return e.clip.WriteText(string(data)) == nil
}

// Paste decodes a previously copied subgraph from the clipboard,
// assigns every node a fresh ID, offsets positions by the paste offset,
// remaps connection endpoints through the old→new ID map (dropping any
// connection that fails to remap), and selects exactly the pasted
// nodes. One history snapshot covers the whole operation. Returns
// whether anything was pasted; clipboard or decode failures paste
// nothing and leave all state untouched.
func (e *Engine) Paste() bool {
	text, err := e.clip.ReadText()
	if err != nil || text == "" {
		return false
	}
	sub, err := graphio.UnmarshalGraph([]byte(text))
	if err != nil || len(sub.Nodes) == 0 {
		return false
	}

	e.snapshot()

	idMap := make(map[string]string, len(sub.Nodes))
	e.selected = make(map[string]struct{}, len(sub.Nodes))
	for _, n := range sub.Nodes {
		pasted := n.Clone()
		pasted.ID = graph.NewID()
		pasted.Position = pasted.Position.Add(e.opts.PasteOffset)
		idMap[n.ID] = pasted.ID
		e.doc.Nodes = append(e.doc.Nodes, pasted)
		e.selected[pasted.ID] = struct{}{}
		e.lastAdded = pasted.ID
	}
	for _, c := range sub.Connections {
		srcID, okS := idMap[c.SourceNodeID]
		dstID, okD := idMap[c.TargetNodeID]
		if !okS || !okD {
			continue
		}
		remapped := c
		remapped.ID = graph.NewID()
		remapped.SourceNodeID = srcID
		remapped.TargetNodeID = dstID
		e.doc.Connections = append(e.doc.Connections, remapped)
	}

	e.selectedConn = ""
	e.notify(Change{Kind: KindGraph})
	e.notify(Change{Kind: KindSelection})
	return true
}

// DuplicateSelected is copy followed by paste.
func (e *Engine) DuplicateSelected() bool {
	if !e.CopySelected() {
		return false
	}
	return e.Paste()
}
