// Package selection resolves where the list selection goes when the operator
// steps, inserts or removes, and binds those policies to a layout.
package selection

import "github.com/piwi3910/packassist/internal/layout"

// Direction of a step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) sign() int {
	if d == Backward {
		return -1
	}
	return 1
}

// Step is the size of a selection move, chosen by a keyboard modifier.
type Step int

const (
	Unit   Step = iota // ±1
	BoxRow             // ±columns, one physical map row
	Edge               // first or last sample
)

func (s Step) String() string {
	switch s {
	case BoxRow:
		return "BoxRow"
	case Edge:
		return "Edge"
	default:
		return "Unit"
	}
}

// Move returns the index reached from index in a list of length samples.
// ok is false when the target would leave [0, length-1]; the caller decides
// whether to stay put or clamp.
func Move(index, length, columns int, dir Direction, step Step) (target int, ok bool) {
	if length <= 0 || index < 0 || index >= length {
		return 0, false
	}
	switch step {
	case Edge:
		if dir == Backward {
			return 0, true
		}
		return length - 1, true
	case BoxRow:
		target = index + dir.sign()*columns
	default:
		target = index + dir.sign()
	}
	if target < 0 || target >= length {
		return 0, false
	}
	return target, true
}

// InsertPlan says where blanks go relative to the selection and how many.
type InsertPlan struct {
	Placement layout.Placement
	Count     int
}

// PlanInsert resolves an insert from two independent modifiers: dir picks
// the side (Forward inserts after the selection) and multi picks a full map
// row of blanks instead of one.
func PlanInsert(dir Direction, multi bool, columns int) InsertPlan {
	plan := InsertPlan{Placement: layout.Before, Count: 1}
	if dir == Forward {
		plan.Placement = layout.After
	}
	if multi {
		plan.Count = columns
	}
	return plan
}

// RemoveThenReselect returns the selection after removing index, given the
// new list length. ok is false when the list became empty.
func RemoveThenReselect(index, newLength int) (int, bool) {
	switch {
	case newLength <= 0:
		return 0, false
	case index < 0:
		return 0, true
	case index < newLength:
		return index, true
	default:
		return newLength - 1, true
	}
}

// WithSelection runs op with the index returned by selector. It reports
// whether op ran, which it does not when nothing is selected.
func WithSelection(selector func() (int, bool), op func(index int)) bool {
	index, ok := selector()
	if !ok {
		return false
	}
	op(index)
	return true
}
