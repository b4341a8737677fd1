package selection

import (
	"fmt"

	"github.com/piwi3910/packassist/internal/layout"
	"github.com/piwi3910/packassist/internal/model"
)

// Navigator tracks the selected sample of a layout and applies the
// step/insert/remove policies to it. Structural changes are recorded in
// history when one is attached. Like the layout, it is single-goroutine.
type Navigator struct {
	layout   *layout.Layout
	history  *layout.History
	index    int
	selected bool
}

// NewNavigator binds a navigator to l. history may be nil.
func NewNavigator(l *layout.Layout, history *layout.History) *Navigator {
	return &Navigator{layout: l, history: history}
}

// Selected returns the selected index.
func (n *Navigator) Selected() (int, bool) {
	if !n.selected || n.index >= n.layout.Len() {
		return 0, false
	}
	return n.index, true
}

// Select makes index the selection. Out-of-range indices clear it.
func (n *Navigator) Select(index int) bool {
	if index < 0 || index >= n.layout.Len() {
		n.selected = false
		return false
	}
	n.index, n.selected = index, true
	return true
}

// SelectCell selects the sample rendered at a grid cell. Separator and free
// cells leave the selection unchanged.
func (n *Navigator) SelectCell(row, col int) bool {
	index, ok := n.layout.IndexAt(row, col)
	if !ok {
		return false
	}
	return n.Select(index)
}

// Clear drops the selection.
func (n *Navigator) Clear() { n.selected = false }

// Step moves the selection. Without a selection, Forward starts at the first
// sample and Backward at the last. It reports whether the selection changed.
func (n *Navigator) Step(dir Direction, step Step) bool {
	index, ok := n.Selected()
	if !ok {
		if n.layout.Len() == 0 {
			return false
		}
		if dir == Forward {
			return n.Select(0)
		}
		return n.Select(n.layout.Len() - 1)
	}
	target, ok := Move(index, n.layout.Len(), n.layout.Geometry().Columns, dir, step)
	if !ok || target == index {
		return false
	}
	return n.Select(target)
}

// Insert adds blanks next to the selection (or into an empty list) and
// selects the first inserted blank.
func (n *Navigator) Insert(dir Direction, multi bool) (int, error) {
	plan := PlanInsert(dir, multi, n.layout.Geometry().Columns)
	anchor, ok := n.Selected()
	if !ok && n.layout.Len() > 0 {
		if dir == Forward {
			anchor = n.layout.Len() - 1
		} else {
			anchor = 0
		}
	}
	snap := layout.MakeSnapshot(n.layout, fmt.Sprintf("Insert %d blank", plan.Count))
	at, err := n.layout.Insert(anchor, plan.Count, plan.Placement)
	if err != nil {
		return 0, err
	}
	n.record(snap)
	n.Select(at)
	return at, nil
}

// Remove deletes the selected sample and reselects its successor, or the
// new last sample.
func (n *Navigator) Remove() (model.Sample, error) {
	index, ok := n.Selected()
	if !ok {
		return model.Sample{}, fmt.Errorf("remove: %w", model.ErrIndexOutOfRange)
	}
	snap := layout.MakeSnapshot(n.layout, "Remove sample")
	s, err := n.layout.Remove(index)
	if err != nil {
		return model.Sample{}, err
	}
	n.record(snap)
	if next, ok := RemoveThenReselect(index, n.layout.Len()); ok {
		n.Select(next)
	} else {
		n.Clear()
	}
	return s, nil
}

// Shift moves the selected sample in dir by step and keeps it selected.
func (n *Navigator) Shift(dir Direction, step Step) error {
	index, ok := n.Selected()
	if !ok {
		return fmt.Errorf("shift: %w", model.ErrIndexOutOfRange)
	}
	target, ok := Move(index, n.layout.Len(), n.layout.Geometry().Columns, dir, step)
	if !ok || target == index {
		return nil
	}
	snap := layout.MakeSnapshot(n.layout, "Move sample")
	if err := n.layout.Move(index, target); err != nil {
		return err
	}
	n.record(snap)
	n.Select(target)
	return nil
}

// SetWeight stores a weight on the selected sample. With advance set the
// selection then moves to the next sample, if any.
func (n *Navigator) SetWeight(w *float64, advance bool) error {
	index, ok := n.Selected()
	if !ok {
		return fmt.Errorf("set weight: %w", model.ErrIndexOutOfRange)
	}
	if err := n.layout.SetWeight(index, w); err != nil {
		return err
	}
	if advance {
		n.Step(Forward, Unit)
	}
	return nil
}

// SetWeightText parses text and stores it on the selected sample.
func (n *Navigator) SetWeightText(text string, advance bool) error {
	w, err := model.ParseWeight(text)
	if err != nil {
		return err
	}
	return n.SetWeight(w, advance)
}

// Undo restores the state before the last structural change.
func (n *Navigator) Undo() bool {
	if n.history == nil {
		return false
	}
	snap, ok := n.history.Undo(layout.MakeSnapshot(n.layout, "Undo"))
	if !ok {
		return false
	}
	n.restore(snap)
	return true
}

// Redo reapplies the last undone change.
func (n *Navigator) Redo() bool {
	if n.history == nil {
		return false
	}
	snap, ok := n.history.Redo(layout.MakeSnapshot(n.layout, "Redo"))
	if !ok {
		return false
	}
	n.restore(snap)
	return true
}

// restore puts back the sample order of snap. Weights are not part of the
// undo stack: samples still present keep the weight they have now.
func (n *Navigator) restore(snap layout.Snapshot) {
	index, had := n.Selected()
	current := make(map[string]*float64, n.layout.Len())
	for _, s := range n.layout.Samples() {
		current[s.ID] = s.Weight
	}
	samples := make([]model.Sample, len(snap.Samples))
	copy(samples, snap.Samples)
	for i := range samples {
		if w, ok := current[samples[i].ID]; ok {
			samples[i].Weight = w
		}
	}
	n.layout.Replace(samples)
	if !had {
		return
	}
	if next, ok := RemoveThenReselect(index, n.layout.Len()); ok {
		n.Select(next)
	} else {
		n.Clear()
	}
}

// record pushes a snapshot taken before a change that has succeeded.
func (n *Navigator) record(snap layout.Snapshot) {
	if n.history != nil {
		n.history.Push(snap)
	}
}
