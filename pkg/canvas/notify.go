package canvas

// ChangeKind classifies a change notification.
type ChangeKind int

const (
	// KindGraph signals a change to nodes or connections.
	KindGraph ChangeKind = iota
	// KindSelection signals a change to the selected nodes or connection.
	KindSelection
	// KindView signals a pan or zoom change.
	KindView
	// KindGesture signals pending-connection or drag-session updates.
	KindGesture
)

// Change describes one state change emitted to subscribers.
type Change struct {
	Kind ChangeKind
}

// Subscribe registers fn to be called synchronously after every state
// change, and returns a function that removes the subscription. The
// engine stays independent of any UI framework; rendering layers
// subscribe here and redraw from the read accessors.
//
// fn runs on the engine's event thread and must not mutate the engine
// re-entrantly.
func (e *Engine) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

func (e *Engine) notify(c Change) {
	for _, fn := range e.subs {
		fn(c)
	}
}
