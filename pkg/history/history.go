// Package history implements the snapshot-based undo/redo stacks for
// the canvas. A Snapshot is an immutable deep copy of the graph plus
// the node selection; the Manager keeps a bounded undo stack and a redo
// stack with standard linear-history semantics (new edits invalidate
// redo).
package history

import (
	"slices"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// DefaultLimit is the maximum number of undo snapshots retained.
// The oldest snapshot is discarded when the stack overflows.
const DefaultLimit = 50

// Snapshot captures the graph and node selection at one instant.
// Snapshots are deep copies: once taken they share no mutable state
// with the live document, and they are never modified after Capture.
type Snapshot struct {
	Document graph.Document
	Selected []string
}

// Capture takes a snapshot of the document and the selected node IDs.
func Capture(d *graph.Document, selected []string) Snapshot {
	sel := slices.Clone(selected)
	slices.Sort(sel)
	return Snapshot{Document: d.Clone(), Selected: sel}
}

// Equal reports structural equality with another snapshot.
func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.Selected, o.Selected) && s.Document.Equal(&o.Document)
}

// Manager is the two-stack undo/redo store. The zero value is not
// usable; use New. Not safe for concurrent use, matching the engine's
// single-threaded contract.
type Manager struct {
	undo  []Snapshot
	redo  []Snapshot
	limit int
}

// New creates a manager retaining at most limit undo snapshots.
// A limit of zero or less falls back to DefaultLimit.
func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Push records a pre-mutation snapshot and clears the redo stack.
// The push is skipped when s is structurally identical to the current
// top of the undo stack, which de-duplicates accidental double
// invocations of the same mutation path.
func (m *Manager) Push(s Snapshot) {
	if n := len(m.undo); n > 0 && m.undo[n-1].Equal(s) {
		m.redo = m.redo[:0]
		return
	}
	m.undo = append(m.undo, s)
	if len(m.undo) > m.limit {
		m.undo = slices.Delete(m.undo, 0, len(m.undo)-m.limit)
	}
	m.redo = m.redo[:0]
}

// Undo pops the most recent undo snapshot, pushing current onto the
// redo stack. Returns false without touching either stack when there is
// nothing to undo.
func (m *Manager) Undo(current Snapshot) (Snapshot, bool) {
	n := len(m.undo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := m.undo[n-1]
	m.undo = m.undo[:n-1]
	m.redo = append(m.redo, current)
	return s, true
}

// Redo pops the most recent redo snapshot, pushing current onto the
// undo stack. Returns false when there is nothing to redo.
func (m *Manager) Redo(current Snapshot) (Snapshot, bool) {
	n := len(m.redo)
	if n == 0 {
		return Snapshot{}, false
	}
	s := m.redo[n-1]
	m.redo = m.redo[:n-1]
	m.undo = append(m.undo, current)
	return s, true
}

// CanUndo reports whether an undo snapshot is available.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoDepth returns the number of retained undo snapshots.
func (m *Manager) UndoDepth() int { return len(m.undo) }

// RedoDepth returns the number of retained redo snapshots.
func (m *Manager) RedoDepth() int { return len(m.redo) }
