package canvas

import "github.com/flowcanvas/flowcanvas/pkg/graphio"

// ExportJSON serializes the current graph to the interchange format.
func (e *Engine) ExportJSON() ([]byte, error) {
	return graphio.MarshalGraph(&e.doc)
}

// ImportJSON replaces the entire graph wholesale with the decoded
// payload - there is no merge. The import fails closed: on any decode
// or integrity error it returns false and the prior state is left
// untouched. A successful import is one undoable step; selection and
// any in-flight gesture are cleared.
func (e *Engine) ImportJSON(data []byte) bool {
	doc, err := graphio.UnmarshalGraph(data)
	if err != nil {
		return false
	}
	e.snapshot()
	e.doc = doc
	e.selected = make(map[string]struct{})
	e.selectedConn = ""
	e.lastAdded = ""
	e.clearGesture()
	e.notify(Change{Kind: KindGraph})
	e.notify(Change{Kind: KindSelection})
	return true
}
