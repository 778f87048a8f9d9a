package canvas

import (
	"fmt"
	"math"
	"testing"

	"github.com/flowcanvas/flowcanvas/pkg/geom"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

func newTestEngine() *Engine {
	opts := DefaultOptions()
	opts.Clipboard = &MemoryClipboard{}
	return New(opts)
}

// addPair adds a trigger and an output sink and returns both.
func addPair(e *Engine) (src, dst graph.Node) {
	src = e.AddNodeAt(graph.NodeTypeTrigger, geom.Point{X: 0, Y: 0})
	dst = e.AddNodeAt(graph.NodeTypeOutput, geom.Point{X: 400, Y: 0})
	return src, dst
}

func connect(e *Engine, src, dst graph.Node) graph.Connection {
	c := graph.NewConnection(src.ID, src.Outputs[0].ID, dst.ID, dst.Inputs[0].ID)
	if !e.AddConnection(c) {
		panic("test connection rejected")
	}
	return c
}

func TestNewZeroOptions(t *testing.T) {
	e := New(Options{Clipboard: &MemoryClipboard{}})
	def := DefaultOptions()

	if e.opts.GridSize != def.GridSize {
		t.Errorf("GridSize = %g, want default %g", e.opts.GridSize, def.GridSize)
	}
	if e.opts.PasteOffset != def.PasteOffset {
		t.Errorf("PasteOffset = %+v, want default %+v", e.opts.PasteOffset, def.PasteOffset)
	}
	if e.opts.MinScale != def.MinScale || e.opts.MaxScale != def.MaxScale {
		t.Errorf("scale bounds = [%g, %g], want defaults [%g, %g]",
			e.opts.MinScale, e.opts.MaxScale, def.MinScale, def.MaxScale)
	}
	if e.opts.ZoomStep != def.ZoomStep {
		t.Errorf("ZoomStep = %g, want default %g", e.opts.ZoomStep, def.ZoomStep)
	}
	// SnapToGrid is documented to stay as given, not inherit the default.
	if e.opts.SnapToGrid {
		t.Error("SnapToGrid = true for zero options, want false")
	}

	n := e.AddNodeAt(graph.NodeTypeTrigger, geom.Point{X: 7, Y: 13})
	e.BeginMove()
	e.MoveSelected(geom.Point{X: 10, Y: 10})
	e.EndMove(true)
	got, _ := e.doc.Node(n.ID)
	if want := (geom.Point{X: 17, Y: 23}); got.Position != want {
		t.Errorf("position after EndMove = %v, want unsnapped %v", got.Position, want)
	}
}

func TestSimpleConnect(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)

	c := graph.NewConnection(src.ID, src.Outputs[0].ID, dst.ID, dst.Inputs[0].ID)
	if !e.AddConnection(c) {
		t.Fatal("AddConnection(valid) = false, want true")
	}
	if got := len(e.Connections()); got != 1 {
		t.Fatalf("connection count = %d, want 1", got)
	}
	got := e.Connections()[0]
	if got.SourceNodeID != src.ID || got.SourcePortID != src.Outputs[0].ID ||
		got.TargetNodeID != dst.ID || got.TargetPortID != dst.Inputs[0].ID {
		t.Errorf("connection tuple = %+v, want (%s, %s, %s, %s)",
			got, src.ID, src.Outputs[0].ID, dst.ID, dst.Inputs[0].ID)
	}
}

func TestDuplicateConnectionRejected(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	connect(e, src, dst)

	dup := graph.NewConnection(src.ID, src.Outputs[0].ID, dst.ID, dst.Inputs[0].ID)
	if e.AddConnection(dup) {
		t.Error("AddConnection(duplicate) = true, want rejection")
	}
	if got := len(e.Connections()); got != 1 {
		t.Errorf("connection count = %d, want 1", got)
	}
}

func TestWrongPolarityRejected(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)

	// Swapped endpoints: source names an input port.
	c := graph.NewConnection(dst.ID, dst.Inputs[0].ID, src.ID, src.Outputs[0].ID)
	if e.AddConnection(c) {
		t.Error("AddConnection(input as source) = true, want rejection")
	}

	// Self-loop across two ports of one node.
	tr := e.AddNodeAt(graph.NodeTypeTransform, geom.Point{X: 0, Y: 300})
	loop := graph.NewConnection(tr.ID, tr.Outputs[0].ID, tr.ID, tr.Inputs[0].ID)
	if e.AddConnection(loop) {
		t.Error("AddConnection(self-loop) = true, want rejection")
	}
	if got := len(e.Connections()); got != 0 {
		t.Errorf("connection count = %d, want 0", got)
	}
}

func TestCascadeDelete(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	mid := e.AddNodeAt(graph.NodeTypeTransform, geom.Point{X: 200, Y: 200})
	connect(e, src, dst)
	c2 := graph.NewConnection(src.ID, src.Outputs[0].ID, mid.ID, mid.Inputs[0].ID)
	e.AddConnection(c2)

	e.RemoveNode(src.ID)

	if got := len(e.Connections()); got != 0 {
		t.Fatalf("connection count after cascade = %d, want 0", got)
	}
	for _, c := range e.Connections() {
		if c.Touches(src.ID) {
			t.Errorf("connection %s still references removed node", c.ID)
		}
	}
	if got := len(e.Nodes()); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
}

func TestRemoveSelected_OneHistoryStep(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	connect(e, src, dst)
	e.SelectAll()

	before := e.hist.UndoDepth()
	e.RemoveSelected()
	if got := len(e.Nodes()); got != 0 {
		t.Fatalf("node count = %d, want 0", got)
	}
	if got := e.hist.UndoDepth(); got != before+1 {
		t.Errorf("undo depth grew by %d, want exactly 1 snapshot for the bulk delete", got-before)
	}

	// One undo brings the whole selection back.
	e.Undo()
	if got := len(e.Nodes()); got != 2 {
		t.Errorf("node count after undo = %d, want 2", got)
	}
	if got := len(e.Connections()); got != 1 {
		t.Errorf("connection count after undo = %d, want 1", got)
	}
}

func TestUndoRedoInverse(t *testing.T) {
	e := newTestEngine()
	src, _ := addPair(e)

	before, err := e.ExportJSON()
	if err != nil {
		t.Fatal(err)
	}
	e.RemoveNode(src.ID)
	after, err := e.ExportJSON()
	if err != nil {
		t.Fatal(err)
	}

	e.Undo()
	if got, _ := e.ExportJSON(); string(got) != string(before) {
		t.Error("Undo() did not restore the pre-mutation state")
	}
	e.Redo()
	if got, _ := e.ExportJSON(); string(got) != string(after) {
		t.Error("Redo() did not restore the post-mutation state")
	}

	// A new mutation after undo invalidates redo.
	e.Undo()
	e.AddNodeAt(graph.NodeTypeAction, geom.Point{X: 0, Y: 500})
	if e.CanRedo() {
		t.Error("CanRedo() = true after new edit, want false")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	e := newTestEngine()
	e.Undo() // must not panic or change anything
	e.Redo()
	if got := len(e.Nodes()); got != 0 {
		t.Errorf("node count = %d, want 0", got)
	}
}

func TestBoundedHistory(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 60; i++ {
		e.AddNodeAt(graph.NodeTypeAction, geom.Point{X: float64(i) * 10, Y: 0})
	}

	restores := 0
	for i := 0; i < 55; i++ {
		if !e.CanUndo() {
			break
		}
		e.Undo()
		restores++
	}
	if restores != 50 {
		t.Errorf("restored %d states, want 50 (stack bounded)", restores)
	}
	// The oldest 10 mutations are unrecoverable.
	if got := len(e.Nodes()); got != 10 {
		t.Errorf("node count after exhausting undo = %d, want 10", got)
	}
}

func TestDragNonDrift(t *testing.T) {
	e := newTestEngine()
	n := e.AddNodeAt(graph.NodeTypeLLM, geom.Point{X: 100, Y: 100})

	e.BeginMove()
	e.MoveSelected(geom.Point{X: 30, Y: 0})
	e.MoveSelected(geom.Point{X: 55, Y: 10})
	e.EndMove(false)

	got, _ := e.doc.Node(n.ID)
	want := geom.Point{X: 155, Y: 110}
	if got.Position != want {
		t.Errorf("position = %v, want %v (P0 + d2, not P0 + d1 + d2)", got.Position, want)
	}
}

func TestEndMoveSnapsToGrid(t *testing.T) {
	e := newTestEngine() // grid 20, snapping on
	n := e.AddNodeAt(graph.NodeTypeLLM, geom.Point{X: 100, Y: 100})

	e.BeginMove()
	e.MoveSelected(geom.Point{X: 7, Y: 13})
	e.EndMove(true)
	got, _ := e.doc.Node(n.ID)
	if got.Position != (geom.Point{X: 100, Y: 120}) {
		t.Errorf("snapped position = %v, want (100, 120)", got.Position)
	}

	// Shift-drag bypasses the grid.
	e.BeginMove()
	e.MoveSelected(geom.Point{X: 7, Y: 3})
	e.EndMove(false)
	got, _ = e.doc.Node(n.ID)
	if got.Position != (geom.Point{X: 107, Y: 123}) {
		t.Errorf("unsnapped position = %v, want (107, 123)", got.Position)
	}
}

func TestMoveIsOneHistoryStep(t *testing.T) {
	e := newTestEngine()
	n := e.AddNodeAt(graph.NodeTypeLLM, geom.Point{X: 100, Y: 100})

	e.BeginMove()
	for i := 1; i <= 20; i++ {
		e.MoveSelected(geom.Point{X: float64(i * 5), Y: 0})
	}
	e.EndMove(false)

	e.Undo()
	got, _ := e.doc.Node(n.ID)
	if got.Position != (geom.Point{X: 100, Y: 100}) {
		t.Errorf("position after undo = %v, want the pre-drag (100, 100)", got.Position)
	}
}

func TestNudgePrecision(t *testing.T) {
	e := newTestEngine()
	n := e.AddNodeAt(graph.NodeTypeAction, geom.Point{X: 0, Y: 0})

	e.NudgeSelected(geom.Point{X: 1, Y: 0}, PrecisionFine)
	got, _ := e.doc.Node(n.ID)
	if got.Position.X != 1 {
		t.Errorf("fine nudge moved to %v, want x=1", got.Position)
	}

	e.NudgeSelected(geom.Point{X: 0, Y: 1}, PrecisionNormal)
	got, _ = e.doc.Node(n.ID)
	if got.Position.Y != 20 {
		t.Errorf("normal nudge moved to %v, want y=20 (one grid cell)", got.Position)
	}

	e.NudgeSelected(geom.Point{X: -1, Y: 0}, PrecisionCoarse)
	got, _ = e.doc.Node(n.ID)
	if got.Position.X != -99 {
		t.Errorf("coarse nudge moved to %v, want x=-99", got.Position)
	}
}

func TestConnectionDragProtocol(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)

	e.StartConnectionFromPort(src.ID, src.Outputs[0].ID)
	if _, ok := e.PendingConnection(); !ok {
		t.Fatal("PendingConnection() = none after drag start")
	}
	if !e.IsValidDropPort(dst.ID, dst.Inputs[0].ID) {
		t.Fatal("sink input not a valid drop port")
	}
	if e.IsValidDropPort(src.ID, src.Outputs[0].ID) {
		t.Error("origin port listed as its own drop target")
	}

	pos, _ := e.PortPosition(dst.ID, dst.Inputs[0].ID)
	e.UpdatePendingPointer(geom.Point{X: pos.X - 5, Y: pos.Y + 3})
	if !e.CompleteConnectionAt(geom.Point{X: pos.X - 5, Y: pos.Y + 3}) {
		t.Fatal("CompleteConnectionAt(near valid port) = false, want commit")
	}
	if got := len(e.Connections()); got != 1 {
		t.Errorf("connection count = %d, want 1", got)
	}
	if _, ok := e.PendingConnection(); ok {
		t.Error("pending state survived completion")
	}
	if got := len(e.ValidDropPorts()); got != 0 {
		t.Errorf("valid drop ports after completion = %d, want 0", got)
	}
}

func TestConnectionDragCancel(t *testing.T) {
	e := newTestEngine()
	src, _ := addPair(e)

	e.StartConnectionFromPort(src.ID, src.Outputs[0].ID)
	e.CancelPendingConnection()
	if _, ok := e.PendingConnection(); ok {
		t.Error("pending state survived cancel")
	}
	if got := len(e.Connections()); got != 0 {
		t.Errorf("connection count = %d, want 0", got)
	}

	// Dropping in empty space behaves like cancel.
	e.StartConnectionFromPort(src.ID, src.Outputs[0].ID)
	if e.CompleteConnectionAt(geom.Point{X: -500, Y: -500}) {
		t.Error("CompleteConnectionAt(empty space) = true, want no commit")
	}
	if got := len(e.Connections()); got != 0 {
		t.Errorf("connection count = %d, want 0", got)
	}
}

func TestReconnectionCancelPreservesOriginal(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	orig := connect(e, src, dst)

	if !e.StartReconnection(orig.ID, true) {
		t.Fatal("StartReconnection() = false")
	}
	e.CompleteReconnection(nil) // cancel

	if got := len(e.Connections()); got != 1 {
		t.Fatalf("connection count = %d, want 1", got)
	}
	if e.Connections()[0] != orig {
		t.Errorf("connection = %+v, want untouched original %+v", e.Connections()[0], orig)
	}
	if _, ok := e.ReconnectingConnection(); ok {
		t.Error("reconnection state survived cancel")
	}
}

func TestReconnectionRewiresAtomically(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	other := e.AddNodeAt(graph.NodeTypeOutput, geom.Point{X: 400, Y: 300})
	orig := connect(e, src, dst)

	// Drag the target end from dst to other; fixed end is the source.
	if !e.StartReconnection(orig.ID, false) {
		t.Fatal("StartReconnection() = false")
	}
	pos, _ := e.PortPosition(other.ID, other.Inputs[0].ID)
	target := graph.Anchor{NodeID: other.ID, PortID: other.Inputs[0].ID, Position: pos, Input: true}
	if !e.CompleteReconnection(&target) {
		t.Fatal("CompleteReconnection(valid) = false, want commit")
	}

	if got := len(e.Connections()); got != 1 {
		t.Fatalf("connection count = %d, want 1 (swap, not add)", got)
	}
	got := e.Connections()[0]
	if got.SourceNodeID != src.ID || got.TargetNodeID != other.ID {
		t.Errorf("rewired tuple = %+v, want %s → %s", got, src.ID, other.ID)
	}

	// The swap is one undoable step restoring the original.
	e.Undo()
	if len(e.Connections()) != 1 || e.Connections()[0] != orig {
		t.Errorf("after undo connections = %+v, want original %+v", e.Connections(), orig)
	}
}

func TestReconnectionAllowsOwnPartner(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	orig := connect(e, src, dst)

	// The edited connection is excluded from duplicate checks, so its
	// own original partner is a legal drop.
	if !e.StartReconnection(orig.ID, true) {
		t.Fatal("StartReconnection() = false")
	}
	if !e.IsValidDropPort(src.ID, src.Outputs[0].ID) {
		t.Error("original partner port not in valid drop set")
	}
}

func TestSelectionNotHistoryTracked(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	c := connect(e, src, dst)

	depth := e.hist.UndoDepth()
	e.SelectNode(src.ID)
	e.ToggleNodeSelection(dst.ID)
	e.SelectConnection(c.ID)
	e.SelectAll()
	e.ClearSelection()
	if got := e.hist.UndoDepth(); got != depth {
		t.Errorf("undo depth = %d after selection churn, want unchanged %d", got, depth)
	}
}

func TestSelectionDomainsMutuallyExclusive(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	c := connect(e, src, dst)

	e.SelectNode(src.ID)
	e.SelectConnection(c.ID)
	if got := len(e.SelectedNodeIDs()); got != 0 {
		t.Errorf("selected nodes = %d after selecting connection, want 0", got)
	}
	if id, ok := e.SelectedConnectionID(); !ok || id != c.ID {
		t.Errorf("SelectedConnectionID() = %q, %v, want %q", id, ok, c.ID)
	}

	e.SelectNode(dst.ID)
	if _, ok := e.SelectedConnectionID(); ok {
		t.Error("connection stayed selected after node selection")
	}
}

func TestPasteRemapClosure(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	connect(e, src, dst)

	e.SelectAll()
	if !e.CopySelected() {
		t.Fatal("CopySelected() = false")
	}
	if !e.Paste() {
		t.Fatal("Paste() = false")
	}

	if got := len(e.Nodes()); got != 4 {
		t.Fatalf("node count = %d, want 4", got)
	}
	if got := len(e.Connections()); got != 2 {
		t.Fatalf("connection count = %d, want 2", got)
	}

	// Pasted nodes carry fresh IDs, offset positions, and exclusive selection.
	originals := map[string]graph.Node{src.ID: src, dst.ID: dst}
	sel := e.SelectedNodeIDs()
	if len(sel) != 2 {
		t.Fatalf("selection size = %d, want the 2 pasted nodes", len(sel))
	}
	for _, id := range sel {
		if _, old := originals[id]; old {
			t.Error("pasted selection contains an original node ID")
		}
	}
	for _, n := range e.Nodes()[2:] {
		orig, ok := findByTitle(e.Nodes()[:2], n.Title)
		if !ok {
			t.Fatalf("no original for pasted node %q", n.Title)
		}
		wantPos := orig.Position.Add(geom.Point{X: 20, Y: 20})
		if n.Position != wantPos {
			t.Errorf("pasted position = %v, want %v", n.Position, wantPos)
		}
	}

	// Same topology among the fresh IDs: the pasted connection joins
	// the two pasted nodes.
	pasted := e.Connections()[1]
	if _, old := originals[pasted.SourceNodeID]; old {
		t.Error("pasted connection still references an original node")
	}
	if _, old := originals[pasted.TargetNodeID]; old {
		t.Error("pasted connection still references an original node")
	}
}

func findByTitle(nodes []graph.Node, title string) (graph.Node, bool) {
	for _, n := range nodes {
		if n.Title == title {
			return n, true
		}
	}
	return graph.Node{}, false
}

func TestCopyInducedSubgraphOnly(t *testing.T) {
	e := newTestEngine()
	src, dst := addPair(e)
	mid := e.AddNodeAt(graph.NodeTypeTransform, geom.Point{X: 200, Y: 200})
	connect(e, src, dst)
	e.AddConnection(graph.NewConnection(src.ID, src.Outputs[0].ID, mid.ID, mid.Inputs[0].ID))

	// Select src and dst only: the src→mid connection crosses the
	// selection boundary and must not be copied.
	e.SelectNode(src.ID)
	e.ToggleNodeSelection(dst.ID)
	e.CopySelected()
	e.Paste()

	if got := len(e.Connections()); got != 3 {
		t.Errorf("connection count = %d, want 3 (2 originals + 1 pasted)", got)
	}
}

func TestPasteGarbageIsNoop(t *testing.T) {
	e := newTestEngine()
	addPair(e)
	e.clip.WriteText("definitely not a graph")

	depth := e.hist.UndoDepth()
	if e.Paste() {
		t.Error("Paste(garbage) = true, want nothing to paste")
	}
	if got := len(e.Nodes()); got != 2 {
		t.Errorf("node count = %d, want 2", got)
	}
	if got := e.hist.UndoDepth(); got != depth {
		t.Error("failed paste recorded a history snapshot")
	}
}

func TestDuplicateSelected(t *testing.T) {
	e := newTestEngine()
	src, _ := addPair(e)
	e.SelectNode(src.ID)

	if !e.DuplicateSelected() {
		t.Fatal("DuplicateSelected() = false")
	}
	if got := len(e.Nodes()); got != 3 {
		t.Errorf("node count = %d, want 3", got)
	}
}

func TestZOrder(t *testing.T) {
	e := newTestEngine()
	a := e.AddNodeAt(graph.NodeTypeAction, geom.Point{X: 0, Y: 0})
	b := e.AddNodeAt(graph.NodeTypeAction, geom.Point{X: 50, Y: 50})
	overlap := geom.Point{X: 60, Y: 60}

	if n, _ := e.NodeAt(overlap); n.ID != b.ID {
		t.Fatalf("NodeAt(overlap) = %s, want later node %s", n.ID, b.ID)
	}

	e.SelectNode(a.ID)
	e.BringSelectedToFront()
	if n, _ := e.NodeAt(overlap); n.ID != a.ID {
		t.Errorf("NodeAt(overlap) after BringSelectedToFront = %s, want %s", n.ID, a.ID)
	}

	e.SendSelectedToBack()
	if n, _ := e.NodeAt(overlap); n.ID != b.ID {
		t.Errorf("NodeAt(overlap) after SendSelectedToBack = %s, want %s", n.ID, b.ID)
	}
}

func TestImportReplacesWholesale(t *testing.T) {
	e := newTestEngine()
	addPair(e)
	payload, _ := e.ExportJSON()

	other := newTestEngine()
	other.AddNodeAt(graph.NodeTypeCondition, geom.Point{X: 9, Y: 9})
	if !other.ImportJSON(payload) {
		t.Fatal("ImportJSON(valid) = false")
	}
	if got := len(other.Nodes()); got != 2 {
		t.Errorf("node count = %d, want 2 (wholesale replace)", got)
	}

	// Undo restores the pre-import graph.
	other.Undo()
	if got := len(other.Nodes()); got != 1 {
		t.Errorf("node count after undo = %d, want 1", got)
	}
}

func TestImportFailsClosed(t *testing.T) {
	e := newTestEngine()
	addPair(e)

	if e.ImportJSON([]byte(`{"nodes": [`)) {
		t.Error("ImportJSON(malformed) = true, want false")
	}
	if got := len(e.Nodes()); got != 2 {
		t.Errorf("node count = %d, want prior state untouched (2)", got)
	}
}

func TestViewOps(t *testing.T) {
	e := newTestEngine()

	e.Pan(geom.Point{X: 40, Y: -20})
	if e.Offset() != (geom.Point{X: 40, Y: -20}) {
		t.Errorf("Offset() = %v, want (40, -20)", e.Offset())
	}

	e.SetZoom(100)
	if e.TargetScale() != e.opts.MaxScale {
		t.Errorf("TargetScale() = %v, want clamped to %v", e.TargetScale(), e.opts.MaxScale)
	}
	e.SetZoom(0.0001)
	if e.TargetScale() != e.opts.MinScale {
		t.Errorf("TargetScale() = %v, want clamped to %v", e.TargetScale(), e.opts.MinScale)
	}

	// Animation converges onto the target.
	e.SetZoom(2)
	for i := 0; i < 100 && e.TickZoom(); i++ {
	}
	if e.Scale() != 2 {
		t.Errorf("Scale() after animation = %v, want 2", e.Scale())
	}

	e.ResetView()
	if e.Scale() != 1 || e.TargetScale() != 1 || e.Offset() != (geom.Point{}) {
		t.Error("ResetView() did not restore the identity transform")
	}
}

func TestZoomTowardKeepsFocusStationary(t *testing.T) {
	e := newTestEngine()
	e.Pan(geom.Point{X: 100, Y: 50})
	focus := geom.Point{X: 300, Y: 200}
	before := geom.CanvasPoint(focus, e.Offset(), e.Scale())

	e.ZoomToward(focus, 1.5)
	after := geom.CanvasPoint(focus, e.Offset(), e.Scale())

	if math.Abs(after.X-before.X) > 1e-9 || math.Abs(after.Y-before.Y) > 1e-9 {
		t.Errorf("canvas point under focus moved: %v → %v", before, after)
	}
}

func TestZoomToFit(t *testing.T) {
	e := newTestEngine()
	e.AddNodeAt(graph.NodeTypeTrigger, geom.Point{X: 0, Y: 0})
	e.AddNodeAt(graph.NodeTypeOutput, geom.Point{X: 1000, Y: 800})

	e.ZoomToFit(geom.Size{Width: 800, Height: 600})

	// All four extreme corners land inside the viewport.
	bounds, _ := e.doc.Bounds()
	corners := []geom.Point{
		{X: bounds.X, Y: bounds.Y},
		{X: bounds.X + bounds.Width, Y: bounds.Y + bounds.Height},
	}
	for _, c := range corners {
		s := geom.ScreenPoint(c, e.Offset(), e.Scale())
		if s.X < 0 || s.X > 800 || s.Y < 0 || s.Y > 600 {
			t.Errorf("corner %v maps to %v, outside the 800x600 viewport", c, s)
		}
	}
}

func TestViewOpsNotHistoryTracked(t *testing.T) {
	e := newTestEngine()
	depth := e.hist.UndoDepth()
	e.Pan(geom.Point{X: 10, Y: 10})
	e.ZoomIn()
	e.ZoomToward(geom.Point{X: 5, Y: 5}, 1.1)
	e.ResetView()
	if got := e.hist.UndoDepth(); got != depth {
		t.Errorf("undo depth = %d after view ops, want unchanged %d", got, depth)
	}
}

func TestAutoPlacement(t *testing.T) {
	e := newTestEngine()
	first := e.AddNode(graph.NodeTypeTrigger, "", nil)
	second := e.AddNode(graph.NodeTypeLLM, "Summarize", graph.Configuration{"model": "gpt-4o"})

	if first.Position != autoPlaceOrigin {
		t.Errorf("first auto position = %v, want %v", first.Position, autoPlaceOrigin)
	}
	wantY := first.Position.Y + first.Size.Height + autoPlaceGap
	if second.Position.Y != wantY || second.Position.X != first.Position.X {
		t.Errorf("second auto position = %v, want below first at y=%v", second.Position, wantY)
	}
	if second.Title != "Summarize" {
		t.Errorf("title = %q, want explicit title kept", second.Title)
	}
	if first.Title != "Trigger" {
		t.Errorf("title = %q, want type default", first.Title)
	}
	// The auto-position variant leaves selection untouched.
	if got := len(e.SelectedNodeIDs()); got != 0 {
		t.Errorf("selection size = %d, want 0", got)
	}
}

func TestUpdateNode(t *testing.T) {
	e := newTestEngine()
	n := e.AddNodeAt(graph.NodeTypeLLM, geom.Point{X: 0, Y: 0})

	n.Title = "Classifier"
	n.Color = "#ff8800"
	n.Config = graph.Configuration{"model": "gpt-4o-mini"}
	e.UpdateNode(n)

	got, _ := e.doc.Node(n.ID)
	if got.Title != "Classifier" || got.Color != "#ff8800" {
		t.Errorf("node = %+v, want full-value replace", got)
	}

	// Unknown ID is a no-op, not a create.
	ghost := graph.NewNode(graph.NodeTypeAction, geom.Point{})
	e.UpdateNode(ghost)
	if got := len(e.Nodes()); got != 1 {
		t.Errorf("node count = %d, want 1", got)
	}
}

func TestNotifications(t *testing.T) {
	e := newTestEngine()
	var kinds []ChangeKind
	unsub := e.Subscribe(func(c Change) { kinds = append(kinds, c.Kind) })

	e.AddNodeAt(graph.NodeTypeTrigger, geom.Point{})
	if len(kinds) == 0 {
		t.Fatal("no notification for AddNodeAt")
	}
	sawGraph := false
	for _, k := range kinds {
		if k == KindGraph {
			sawGraph = true
		}
	}
	if !sawGraph {
		t.Error("AddNodeAt emitted no KindGraph change")
	}

	unsub()
	n := len(kinds)
	e.AddNodeAt(graph.NodeTypeAction, geom.Point{X: 300})
	if len(kinds) != n {
		t.Error("unsubscribed listener still notified")
	}
}

func TestHistoryDedupOnDoubleInvocation(t *testing.T) {
	e := newTestEngine()
	n := e.AddNodeAt(graph.NodeTypeAction, geom.Point{})
	depth := e.hist.UndoDepth()

	// Replaying an update that changes nothing records one snapshot:
	// the second push captures the same pre-state as the first and is
	// deduplicated against the top of the stack.
	e.UpdateNode(n)
	e.UpdateNode(n)
	if got := e.hist.UndoDepth(); got != depth+1 {
		t.Errorf("undo depth grew by %d, want 1 (dedup)", got-depth)
	}
}

func TestConcurrentishSequence(t *testing.T) {
	// Interleave unrelated gestures and verify the engine never ends up
	// in a partially mutated state.
	e := newTestEngine()
	src, dst := addPair(e)

	e.StartConnectionFromPort(src.ID, src.Outputs[0].ID)
	e.SelectNode(dst.ID)
	e.BeginMove()
	e.MoveSelected(geom.Point{X: 10, Y: 10})
	e.EndMove(false)
	pos, _ := e.PortPosition(dst.ID, dst.Inputs[0].ID)
	if !e.CompleteConnectionAt(pos) {
		t.Fatal("connect after interleaved move failed")
	}

	for i := 0; i < 5; i++ {
		e.Undo()
	}
	for i := 0; i < 5; i++ {
		e.Redo()
	}
	if err := e.doc.Validate(); err != nil {
		t.Errorf("document invalid after undo/redo churn: %v", err)
	}
}

func ExampleEngine() {
	opts := DefaultOptions()
	opts.Clipboard = &MemoryClipboard{}
	e := New(opts)

	trigger := e.AddNodeAt(graph.NodeTypeTrigger, geom.Point{X: 0, Y: 0})
	sink := e.AddNodeAt(graph.NodeTypeOutput, geom.Point{X: 400, Y: 0})
	e.AddConnection(graph.NewConnection(
		trigger.ID, trigger.Outputs[0].ID, sink.ID, sink.Inputs[0].ID))

	fmt.Println("nodes:", len(e.Nodes()))
	fmt.Println("connections:", len(e.Connections()))
	e.Undo()
	fmt.Println("connections after undo:", len(e.Connections()))
	// Output:
	// nodes: 2
	// connections: 1
	// connections after undo: 0
}
