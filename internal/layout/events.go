package layout

// EventKind distinguishes full rebuilds from single-cell updates.
type EventKind int

const (
	EventRebuilt     EventKind = iota // Whole grid was rebuilt; Index is -1
	EventCellChanged                  // Only the cell of Index changed
)

func (k EventKind) String() string {
	if k == EventCellChanged {
		return "CellChanged"
	}
	return "Rebuilt"
}

// Event describes a change of the derived grid.
type Event struct {
	Kind     EventKind
	Index    int
	Position Position
}

// Listener receives layout change events. Listeners are invoked synchronously
// on the goroutine that mutated the layout, in subscription order.
type Listener interface {
	LayoutChanged(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// LayoutChanged calls f(e).
func (f ListenerFunc) LayoutChanged(e Event) {
	f(e)
}

type subscription struct {
	id       int
	listener Listener
}
