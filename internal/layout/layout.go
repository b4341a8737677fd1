package layout

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/piwi3910/packassist/internal/model"
)

// ErrInvalidCount is returned when an insert asks for fewer than one blank.
var ErrInvalidCount = errors.New("insert count must be positive")

// Placement selects the side of the anchor index an insert lands on.
type Placement int

const (
	Before Placement = iota
	After
)

// Layout owns the sample list and its grid rendering for one geometry.
// It is not safe for concurrent use; the UI drives it from its main goroutine.
type Layout struct {
	geometry model.BoxGeometry
	columns  model.ColumnSet
	mapper   Mapper
	samples  *model.SampleList
	grid     Grid

	subs   []subscription
	nextID int

	logger *zap.Logger
}

// New creates an empty layout. The geometry is validated once here and
// stays fixed for the lifetime of the layout.
func New(geometry model.BoxGeometry, columns model.ColumnSet, logger *zap.Logger) (*Layout, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Layout{
		geometry: geometry,
		columns:  columns,
		mapper:   NewMapper(geometry),
		samples:  model.NewSampleList(),
		logger:   logger,
	}
	l.grid = l.buildGrid()
	return l, nil
}

// Geometry returns the box geometry.
func (l *Layout) Geometry() model.BoxGeometry { return l.geometry }

// Columns returns the column set used by Load.
func (l *Layout) Columns() model.ColumnSet { return l.columns }

// Mapper returns the position mapper for the layout geometry.
func (l *Layout) Mapper() Mapper { return l.mapper }

// Len returns the number of samples.
func (l *Layout) Len() int { return l.samples.Len() }

// Sample returns the sample at i.
func (l *Layout) Sample(i int) (model.Sample, bool) { return l.samples.Get(i) }

// Samples returns a deep copy of all samples in order.
func (l *Layout) Samples() []model.Sample { return l.samples.Samples() }

// BoxAmount returns the number of boxes needed, ceil(len/capacity).
func (l *Layout) BoxAmount() int {
	return BoxAmount(l.samples.Len(), l.geometry.Capacity())
}

// BoxAmount returns ceil(n/capacity), 0 for an empty list.
func BoxAmount(n, capacity int) int {
	if n <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// Grid returns a copy of the current grid rendering.
func (l *Layout) Grid() Grid { return l.grid.Clone() }

// RowCount returns the number of rendered grid rows.
func (l *Layout) RowCount() int { return l.grid.RowCount() }

// RowLabel returns the label of a rendered grid row.
func (l *Layout) RowLabel(row int) string {
	if row < 0 || row >= len(l.grid.RowLabels) {
		return ""
	}
	return l.grid.RowLabels[row]
}

// CellAt returns the rendered cell at row, col.
func (l *Layout) CellAt(row, col int) (Cell, bool) { return l.grid.At(row, col) }

// Status returns the packing state of a grid cell.
func (l *Layout) Status(row, col int) PositionStatus {
	c, ok := l.grid.At(row, col)
	if !ok {
		if l.mapper.IsSeparatorRow(row) {
			return StatusSeparator
		}
		return StatusFree
	}
	return c.Status()
}

// IndexAt returns the sample index rendered at row, col. ok is false for
// separators and free cells.
func (l *Layout) IndexAt(row, col int) (int, bool) {
	idx, ok := l.mapper.GridToList(row, col)
	if !ok || idx >= l.samples.Len() {
		return 0, false
	}
	return idx, true
}

// PositionOf returns the grid position of the sample at index.
func (l *Layout) PositionOf(index int) (Position, error) {
	if index < 0 || index >= l.samples.Len() {
		return Position{}, fmt.Errorf("position of %d: %w", index, model.ErrIndexOutOfRange)
	}
	return l.mapper.ListToGrid(index), nil
}

// Load replaces the sample list with the rows of an imported table.
// Weights in the table are ignored. On error the layout is unchanged.
func (l *Layout) Load(t model.Table) error {
	samples, err := l.columns.Samples(t)
	if err != nil {
		return err
	}
	l.samples.Replace(samples)
	l.logger.Info("samples loaded", zap.Int("samples", len(samples)), zap.Int("boxes", l.BoxAmount()))
	l.Rebuild()
	return nil
}

// Replace swaps in a new list of samples, as done when restoring a session or
// an undo snapshot, and rebuilds the grid.
func (l *Layout) Replace(samples []model.Sample) {
	l.samples.Replace(samples)
	l.Rebuild()
}

// Rebuild recomputes the whole grid from the list and notifies listeners.
func (l *Layout) Rebuild() {
	l.grid = l.buildGrid()
	l.emit(Event{Kind: EventRebuilt, Index: -1})
}

// Patch recomputes the single cell of index and notifies listeners.
func (l *Layout) Patch(index int) error {
	s, ok := l.samples.Get(index)
	if !ok {
		return fmt.Errorf("patch %d: %w", index, model.ErrIndexOutOfRange)
	}
	pos := l.mapper.ListToGrid(index)
	if pos.Row >= len(l.grid.Rows) {
		l.Rebuild()
		return nil
	}
	l.grid.Rows[pos.Row][pos.Col] = itemCell(index, s)
	l.emit(Event{Kind: EventCellChanged, Index: index, Position: pos})
	return nil
}

// Insert adds count blank samples next to the anchor index and returns the
// index of the first inserted sample. On an empty list the blanks go to 0.
func (l *Layout) Insert(anchor, count int, place Placement) (int, error) {
	if count < 1 {
		return 0, ErrInvalidCount
	}
	at := 0
	if l.samples.Len() > 0 {
		if anchor < 0 || anchor >= l.samples.Len() {
			return 0, fmt.Errorf("insert at %d: %w", anchor, model.ErrIndexOutOfRange)
		}
		at = anchor
		if place == After {
			at++
		}
	}
	blanks := make([]model.Sample, count)
	for i := range blanks {
		blanks[i] = model.BlankSample()
	}
	if err := l.samples.Insert(at, blanks...); err != nil {
		return 0, err
	}
	l.logger.Debug("blank samples inserted", zap.Int("at", at), zap.Int("count", count))
	l.Rebuild()
	return at, nil
}

// Remove deletes the sample at index and shifts the tail left.
func (l *Layout) Remove(index int) (model.Sample, error) {
	s, err := l.samples.Remove(index)
	if err != nil {
		return model.Sample{}, err
	}
	l.logger.Debug("sample removed", zap.Int("index", index), zap.String("code", s.Code))
	l.Rebuild()
	return s, nil
}

// Move relocates the sample at from so it ends up at index to.
func (l *Layout) Move(from, to int) error {
	if err := l.samples.Move(from, to); err != nil {
		return err
	}
	if from != to {
		l.Rebuild()
	}
	return nil
}

// SetWeight stores w on the sample at index and patches its cell.
// A nil weight clears it.
func (l *Layout) SetWeight(index int, w *float64) error {
	if err := l.samples.SetWeight(index, w); err != nil {
		return err
	}
	return l.Patch(index)
}

// SetWeightText parses text as a weight ("," accepted as decimal separator,
// blank clears) and stores it on the sample at index.
func (l *Layout) SetWeightText(index int, text string) error {
	w, err := model.ParseWeight(text)
	if err != nil {
		return err
	}
	return l.SetWeight(index, w)
}

// Subscribe registers a listener and returns a function that removes it.
func (l *Layout) Subscribe(listener Listener) (unsubscribe func()) {
	id := l.nextID
	l.nextID++
	l.subs = append(l.subs, subscription{id: id, listener: listener})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *Layout) emit(e Event) {
	for _, s := range append([]subscription(nil), l.subs...) {
		s.listener.LayoutChanged(e)
	}
}

// SampleInfo locates a sample inside its box.
type SampleInfo struct {
	Index  int
	Code   string
	Box    int    // 1-based box number
	Row    int    // 1-based row inside the box
	Column string // Column letter
}

// String renders the location as "<box>.<row><column>", e.g. "2.1d".
func (i SampleInfo) String() string {
	return strconv.Itoa(i.Box) + "." + strconv.Itoa(i.Row) + i.Column
}

// Describe returns where the sample at index sits.
func (l *Layout) Describe(index int) (SampleInfo, bool) {
	s, ok := l.samples.Get(index)
	if !ok {
		return SampleInfo{}, false
	}
	inBox := index % l.geometry.Capacity()
	return SampleInfo{
		Index:  index,
		Code:   s.Code,
		Box:    l.mapper.BoxOf(index) + 1,
		Row:    inBox/l.geometry.Columns + 1,
		Column: columnLetter(inBox % l.geometry.Columns),
	}, true
}

func (l *Layout) buildGrid() Grid {
	g := l.geometry
	cycle := g.Cycle()
	rows := l.BoxAmount() * cycle
	grid := Grid{
		Columns:   ColumnLetters(g.Columns),
		RowLabels: make([]string, rows),
		Rows:      make([][]Cell, rows),
	}
	for r := 0; r < rows; r++ {
		kind := CellFree
		if inBox := r % cycle; inBox < g.Rows {
			grid.RowLabels[r] = strconv.Itoa(inBox + 1)
		} else {
			kind = CellSeparator
		}
		row := make([]Cell, g.Columns)
		for c := range row {
			row[c] = Cell{Kind: kind, Index: -1}
		}
		grid.Rows[r] = row
	}
	for i, s := range l.samples.Samples() {
		pos := l.mapper.ListToGrid(i)
		grid.Rows[pos.Row][pos.Col] = itemCell(i, s)
	}
	return grid
}

func itemCell(index int, s model.Sample) Cell {
	return Cell{Kind: CellItem, Index: index, Text: s.Display(), Packed: s.HasWeight()}
}
