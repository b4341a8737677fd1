package layout

import "github.com/piwi3910/packassist/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the sample list at a point in time.
type Snapshot struct {
	Samples []model.Sample
	Label   string // e.g. "Insert blank"
}

// MakeSnapshot captures the current samples of l with a label.
func MakeSnapshot(l *Layout, label string) Snapshot {
	return Snapshot{Samples: l.Samples(), Label: label}
}

// History keeps bounded undo and redo stacks of snapshots.
type History struct {
	undo     []Snapshot
	redo     []Snapshot
	maxDepth int
}

// NewHistory creates a History holding at most 50 undo steps.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push records the state before a modification and drops the redo stack.
func (h *History) Push(s Snapshot) {
	h.undo = append(h.undo, s)
	if len(h.undo) > h.maxDepth {
		h.undo = h.undo[len(h.undo)-h.maxDepth:]
	}
	h.redo = nil
}

// Undo returns the snapshot to restore and saves current for Redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return Snapshot{}, false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return last, true
}

// Redo returns the snapshot to restore and saves current for Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return Snapshot{}, false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return last, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear drops all history, as after loading a new file.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
