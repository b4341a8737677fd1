package layout

// CellKind tags what a grid cell represents.
type CellKind int

const (
	CellFree      CellKind = iota // Inside a box but past the last sample
	CellItem                      // Holds a sample
	CellSeparator                 // Gap row between boxes
)

func (k CellKind) String() string {
	switch k {
	case CellItem:
		return "Item"
	case CellSeparator:
		return "Separator"
	default:
		return "Free"
	}
}

// PositionStatus is the packing state shown for a cell.
type PositionStatus int

const (
	StatusFree PositionStatus = iota
	StatusUnpacked
	StatusPacked
	StatusSeparator
)

func (s PositionStatus) String() string {
	switch s {
	case StatusUnpacked:
		return "Unpacked"
	case StatusPacked:
		return "Packed"
	case StatusSeparator:
		return "Separator"
	default:
		return "Free"
	}
}

// Cell is one rendered grid position.
type Cell struct {
	Kind   CellKind
	Index  int    // Sample index, only meaningful for CellItem
	Text   string // "<code>" or "<code> <weight>"
	Packed bool   // Sample has a weight
}

// Status derives the packing state of the cell.
func (c Cell) Status() PositionStatus {
	switch c.Kind {
	case CellItem:
		if c.Packed {
			return StatusPacked
		}
		return StatusUnpacked
	case CellSeparator:
		return StatusSeparator
	default:
		return StatusFree
	}
}

// Grid is the two-dimensional rendering of all boxes.
type Grid struct {
	Columns   []string // Column letters: a, b, c, ...
	RowLabels []string // "1".."rows" inside a box, "" for separators
	Rows      [][]Cell
}

// RowCount returns the number of rendered rows.
func (g Grid) RowCount() int {
	return len(g.Rows)
}

// At returns the cell at row, col.
func (g Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.Rows) || col < 0 || col >= len(g.Rows[row]) {
		return Cell{}, false
	}
	return g.Rows[row][col], true
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	cp := Grid{
		Columns:   append([]string(nil), g.Columns...),
		RowLabels: append([]string(nil), g.RowLabels...),
		Rows:      make([][]Cell, len(g.Rows)),
	}
	for i, row := range g.Rows {
		cp.Rows[i] = append([]Cell(nil), row...)
	}
	return cp
}

// ColumnLetters returns spreadsheet-style lower-case letters for n columns:
// a..z, aa, ab, ...
func ColumnLetters(n int) []string {
	letters := make([]string, n)
	for i := range letters {
		letters[i] = columnLetter(i)
	}
	return letters
}

func columnLetter(i int) string {
	var b []byte
	for i >= 0 {
		b = append([]byte{byte('a' + i%26)}, b...)
		i = i/26 - 1
	}
	return string(b)
}
