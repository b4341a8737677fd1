package layout

import "github.com/piwi3910/packassist/internal/model"

// Position is a cell coordinate in the rendered grid.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Mapper converts between list indices and grid positions for one geometry.
// Every index maps to a grid cell, but separator rows map to no index.
type Mapper struct {
	g model.BoxGeometry
}

// NewMapper creates a mapper for g. g must be valid.
func NewMapper(g model.BoxGeometry) Mapper {
	return Mapper{g: g}
}

// ListToGrid returns the grid position of the sample at index.
func (m Mapper) ListToGrid(index int) Position {
	fullBoxes := index / m.g.Capacity()
	return Position{
		Row: index/m.g.Columns + m.g.SeparatorRows*fullBoxes,
		Col: index % m.g.Columns,
	}
}

// GridToList returns the list index addressed by a grid cell. ok is false for
// separator rows and for coordinates outside the grid columns.
func (m Mapper) GridToList(row, col int) (index int, ok bool) {
	if row < 0 || col < 0 || col >= m.g.Columns {
		return 0, false
	}
	cycle := m.g.Cycle()
	fullBoxes := row / cycle
	rowInBox := row % cycle
	if rowInBox >= m.g.Rows {
		return 0, false
	}
	return fullBoxes*m.g.Capacity() + rowInBox*m.g.Columns + col, true
}

// IsSeparatorRow reports whether a grid row is a gap between boxes.
func (m Mapper) IsSeparatorRow(row int) bool {
	return row >= 0 && row%m.g.Cycle() >= m.g.Rows
}

// BoxOf returns the zero-based box that holds index.
func (m Mapper) BoxOf(index int) int {
	return index / m.g.Capacity()
}
