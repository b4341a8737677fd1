package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/packassist/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, defaultMaxDepth, h.maxDepth)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistoryUndoRedoRestoresLayout(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 3)
	h := NewHistory()

	h.Push(MakeSnapshot(l, "Insert blank"))
	_, err := l.Insert(0, 1, Before)
	require.NoError(t, err)

	snap, ok := h.Undo(MakeSnapshot(l, "current"))
	require.True(t, ok)
	assert.Equal(t, "Insert blank", snap.Label)
	l.Replace(snap.Samples)
	assert.Equal(t, []string{"S0", "S1", "S2"}, layoutCodes(l))
	assert.True(t, h.CanRedo())

	snap, ok = h.Redo(MakeSnapshot(l, "undone"))
	require.True(t, ok)
	l.Replace(snap.Samples)
	assert.Equal(t, []string{"", "S0", "S1", "S2"}, layoutCodes(l))
}

func TestHistorySnapshotIsIsolated(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 1)
	snap := MakeSnapshot(l, "before weight")

	require.NoError(t, l.SetWeight(0, weight(5)))
	assert.False(t, snap.Samples[0].HasWeight())
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(Snapshot{Label: "a"})
	_, _ = h.Undo(Snapshot{Label: "b"})
	require.True(t, h.CanRedo())

	h.Push(Snapshot{Label: "c"})
	assert.False(t, h.CanRedo())
}

func TestHistoryMaxDepth(t *testing.T) {
	h := NewHistory()
	for i := 0; i < defaultMaxDepth+10; i++ {
		h.Push(Snapshot{Label: fmt.Sprintf("s%d", i)})
	}
	assert.Len(t, h.undo, defaultMaxDepth)
	assert.Equal(t, "s10", h.undo[0].Label)

	h.Clear()
	assert.False(t, h.CanUndo())
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory()
	_, ok := h.Undo(Snapshot{})
	assert.False(t, ok)
	_, ok = h.Redo(Snapshot{})
	assert.False(t, ok)
}
