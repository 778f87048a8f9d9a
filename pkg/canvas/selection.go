package canvas

// Selection operations are not history-tracked: undo restores graph
// edits, not hover/selection churn. Node selection and connection
// selection are mutually exclusive domains.

// SelectNode makes the node the exclusive selection and clears any
// selected connection. No-op for an unknown ID.
func (e *Engine) SelectNode(id string) {
	if _, ok := e.doc.Node(id); !ok {
		return
	}
	e.selected = map[string]struct{}{id: {}}
	e.selectedConn = ""
	e.notify(Change{Kind: KindSelection})
}

// ToggleNodeSelection adds or removes the node from the selection,
// clearing any selected connection. No-op for an unknown ID.
func (e *Engine) ToggleNodeSelection(id string) {
	if _, ok := e.doc.Node(id); !ok {
		return
	}
	if _, sel := e.selected[id]; sel {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
	e.selectedConn = ""
	e.notify(Change{Kind: KindSelection})
}

// SelectAll selects every node.
func (e *Engine) SelectAll() {
	e.selected = make(map[string]struct{}, len(e.doc.Nodes))
	for _, n := range e.doc.Nodes {
		e.selected[n.ID] = struct{}{}
	}
	e.selectedConn = ""
	e.notify(Change{Kind: KindSelection})
}

// ClearSelection empties both selection domains.
func (e *Engine) ClearSelection() {
	e.selected = make(map[string]struct{})
	e.selectedConn = ""
	e.notify(Change{Kind: KindSelection})
}

// SelectConnection makes the connection the selection, clearing all
// node selection. No-op for an unknown ID.
func (e *Engine) SelectConnection(id string) {
	if _, ok := e.doc.Connection(id); !ok {
		return
	}
	e.selected = make(map[string]struct{})
	e.selectedConn = id
	e.notify(Change{Kind: KindSelection})
}

// IsSelected reports whether the node is selected.
func (e *Engine) IsSelected(id string) bool {
	_, ok := e.selected[id]
	return ok
}
