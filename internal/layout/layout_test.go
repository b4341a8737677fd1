package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/piwi3910/packassist/internal/model"
)

func newTestLayout(t *testing.T, g model.BoxGeometry, n int) *Layout {
	t.Helper()
	l, err := New(g, model.DefaultColumns(), zaptest.NewLogger(t))
	require.NoError(t, err)
	samples := make([]model.Sample, n)
	for i := range samples {
		samples[i] = model.NewSample(fmt.Sprintf("S%d", i))
	}
	l.Replace(samples)
	return l
}

func layoutCodes(l *Layout) []string {
	out := make([]string, 0, l.Len())
	for _, s := range l.Samples() {
		out = append(out, s.Code)
	}
	return out
}

func weight(v float64) *float64 { return &v }

// ─── Construction Tests ───

func TestNewRejectsInvalidGeometry(t *testing.T) {
	_, err := New(model.BoxGeometry{Rows: 0, Columns: 3}, model.DefaultColumns(), nil)
	assert.True(t, errors.Is(err, model.ErrInvalidGeometry))
}

func TestEmptyLayout(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 0)
	assert.Equal(t, 0, l.BoxAmount())
	assert.Equal(t, 0, l.RowCount())
}

// ─── Grid Tests ───

func TestGridShapeAndContent(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 10)

	assert.Equal(t, 2, l.BoxAmount())
	assert.Equal(t, 8, l.RowCount())

	grid := l.Grid()
	assert.Equal(t, []string{"a", "b", "c"}, grid.Columns)
	assert.Equal(t, []string{"1", "2", "3", "", "1", "2", "3", ""}, grid.RowLabels)

	c, ok := grid.At(4, 0)
	require.True(t, ok)
	assert.Equal(t, CellItem, c.Kind)
	assert.Equal(t, 9, c.Index)
	assert.Equal(t, "S9", c.Text)

	c, _ = grid.At(4, 1)
	assert.Equal(t, CellFree, c.Kind)
	assert.Equal(t, "", c.Text)

	c, _ = grid.At(3, 2)
	assert.Equal(t, CellSeparator, c.Kind)
	assert.Equal(t, StatusSeparator, l.Status(3, 2))
}

func TestEveryIndexRenderedOnce(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 85)

	seen := map[int]int{}
	grid := l.Grid()
	for r := range grid.Rows {
		for _, c := range grid.Rows[r] {
			if c.Kind == CellItem {
				seen[c.Index]++
			}
		}
	}
	require.Len(t, seen, 85)
	for i := 0; i < 85; i++ {
		assert.Equal(t, 1, seen[i], "index %d", i)
	}
	assert.Equal(t, 2, l.BoxAmount())
	assert.Equal(t, 22, l.RowCount())
}

func TestIndexAtAndStatus(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 85)
	require.NoError(t, l.SetWeight(84, weight(1.5)))

	idx, ok := l.IndexAt(11, 3)
	require.True(t, ok)
	assert.Equal(t, 84, idx)
	assert.Equal(t, StatusPacked, l.Status(11, 3))
	assert.Equal(t, StatusUnpacked, l.Status(11, 2))
	assert.Equal(t, StatusFree, l.Status(11, 4))

	_, ok = l.IndexAt(11, 4)
	assert.False(t, ok, "free cell has no sample")
	_, ok = l.IndexAt(9, 0)
	assert.False(t, ok, "separator has no sample")
}

func TestPositionOf(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 85)

	pos, err := l.PositionOf(84)
	require.NoError(t, err)
	assert.Equal(t, Position{11, 3}, pos)

	_, err = l.PositionOf(85)
	assert.True(t, errors.Is(err, model.ErrIndexOutOfRange))
}

// ─── Load Tests ───

func TestLoadTable(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 0)
	var events []Event
	l.Subscribe(ListenerFunc(func(e Event) { events = append(events, e) }))

	table := model.Table{
		Columns: []string{"Код", "st0", "st1", "st2", "st3", "st4", "Weight"},
		Rows: [][]string{
			{"A1", "x", "", "", "", "", "12.5"},
			{"A2", "y", "", "", "", "", ""},
		},
	}
	require.NoError(t, l.Load(table))

	assert.Equal(t, []string{"A1", "A2"}, layoutCodes(l))
	s, _ := l.Sample(0)
	assert.False(t, s.HasWeight(), "weights are not loaded from the table")
	require.Len(t, events, 1)
	assert.Equal(t, EventRebuilt, events[0].Kind)
}

func TestLoadMissingColumnsKeepsState(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 3)
	before := l.Grid()

	err := l.Load(model.Table{Columns: []string{"Код"}})
	require.Error(t, err)

	var mc *model.MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Contains(t, mc.Columns, "st0")
	assert.Equal(t, []string{"S0", "S1", "S2"}, layoutCodes(l))
	assert.Equal(t, before, l.Grid())
}

// ─── Mutation Tests ───

func TestInsertBeforeAndAfter(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 3)

	at, err := l.Insert(1, 1, Before)
	require.NoError(t, err)
	assert.Equal(t, 1, at)
	assert.Equal(t, []string{"S0", "", "S1", "S2"}, layoutCodes(l))

	at, err = l.Insert(3, 2, After)
	require.NoError(t, err)
	assert.Equal(t, 4, at)
	assert.Equal(t, []string{"S0", "", "S1", "S2", "", ""}, layoutCodes(l))
}

func TestInsertIntoEmptyList(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 0)

	at, err := l.Insert(0, 3, After)
	require.NoError(t, err)
	assert.Equal(t, 0, at)
	assert.Equal(t, 3, l.Len())
}

func TestInsertErrors(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 3)

	_, err := l.Insert(0, 0, Before)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = l.Insert(3, 1, Before)
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)
	assert.Equal(t, 3, l.Len())
}

func TestInsertThenRemoveRestores(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 12)
	require.NoError(t, l.SetWeight(4, weight(2)))
	before := l.Grid()

	at, err := l.Insert(4, 1, Before)
	require.NoError(t, err)
	_, err = l.Remove(at)
	require.NoError(t, err)

	assert.Equal(t, before, l.Grid())
}

func TestInsertShiftsAcrossBoxes(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 9)
	assert.Equal(t, 1, l.BoxAmount())

	_, err := l.Insert(0, 1, Before)
	require.NoError(t, err)

	assert.Equal(t, 2, l.BoxAmount())
	c, ok := l.CellAt(4, 0)
	require.True(t, ok)
	assert.Equal(t, "S8", c.Text)
}

func TestRemove(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 3)

	s, err := l.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "S1", s.Code)
	assert.Equal(t, []string{"S0", "S2"}, layoutCodes(l))

	_, err = l.Remove(5)
	assert.ErrorIs(t, err, model.ErrIndexOutOfRange)
}

func TestMove(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 4)

	require.NoError(t, l.Move(0, 3))
	assert.Equal(t, []string{"S1", "S2", "S3", "S0"}, layoutCodes(l))

	c, _ := l.CellAt(0, 3)
	assert.Equal(t, "S0", c.Text)

	assert.ErrorIs(t, l.Move(0, 4), model.ErrIndexOutOfRange)
}

// ─── Weight Tests ───

func TestSetWeightPatchesSingleCell(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 85)
	var events []Event
	unsubscribe := l.Subscribe(ListenerFunc(func(e Event) { events = append(events, e) }))
	defer unsubscribe()

	require.NoError(t, l.SetWeight(84, weight(12.5)))

	require.Len(t, events, 1)
	assert.Equal(t, EventCellChanged, events[0].Kind)
	assert.Equal(t, 84, events[0].Index)
	assert.Equal(t, Position{11, 3}, events[0].Position)

	c, _ := l.CellAt(11, 3)
	assert.Equal(t, "S84 12.5", c.Text)
	assert.True(t, c.Packed)
}

func TestPatchEqualsRebuild(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 20)

	for i, w := range []float64{1, 0.5, 100, 7.25} {
		require.NoError(t, l.SetWeight(i*5, weight(w)))
	}
	require.NoError(t, l.SetWeight(5, nil))
	require.NoError(t, l.SetWeightText(6, "3,5"))
	patched := l.Grid()

	l.Rebuild()
	assert.Equal(t, l.Grid(), patched)
}

func TestSetWeightRejected(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 2)
	var events int
	l.Subscribe(ListenerFunc(func(Event) { events++ }))

	assert.ErrorIs(t, l.SetWeight(0, weight(-1)), model.ErrInvalidWeight)
	assert.ErrorIs(t, l.SetWeightText(0, "abc"), model.ErrInvalidWeight)
	assert.ErrorIs(t, l.SetWeight(2, weight(1)), model.ErrIndexOutOfRange)
	assert.Equal(t, 0, events)

	s, _ := l.Sample(0)
	assert.False(t, s.HasWeight())
}

func TestSetWeightTextClears(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 1)
	require.NoError(t, l.SetWeightText(0, "4.2"))
	require.NoError(t, l.SetWeightText(0, "  "))

	c, _ := l.CellAt(0, 0)
	assert.Equal(t, "S0", c.Text)
	assert.False(t, c.Packed)
}

// ─── Listener Tests ───

func TestUnsubscribe(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 1)
	var a, b int
	unsubA := l.Subscribe(ListenerFunc(func(Event) { a++ }))
	l.Subscribe(ListenerFunc(func(Event) { b++ }))

	l.Rebuild()
	unsubA()
	l.Rebuild()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

// ─── Describe Tests ───

func TestDescribe(t *testing.T) {
	l := newTestLayout(t, model.DefaultGeometry(), 85)

	info, ok := l.Describe(84)
	require.True(t, ok)
	assert.Equal(t, "S84", info.Code)
	assert.Equal(t, 2, info.Box)
	assert.Equal(t, 1, info.Row)
	assert.Equal(t, "d", info.Column)
	assert.Equal(t, "2.1d", info.String())

	_, ok = l.Describe(85)
	assert.False(t, ok)
}
