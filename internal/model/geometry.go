package model

import "fmt"

// BoxGeometry describes the physical grid of a single shipment box.
// Boxes are rendered one below the other, each followed by SeparatorRows blank rows.
type BoxGeometry struct {
	Rows          int `json:"rows"`
	Columns       int `json:"columns"`
	SeparatorRows int `json:"separator_rows"`
}

// DefaultGeometry returns the standard 9x9 box with two separator rows.
func DefaultGeometry() BoxGeometry {
	return BoxGeometry{Rows: 9, Columns: 9, SeparatorRows: 2}
}

// NewGeometry returns a validated geometry.
func NewGeometry(rows, columns, separatorRows int) (BoxGeometry, error) {
	g := BoxGeometry{Rows: rows, Columns: columns, SeparatorRows: separatorRows}
	if err := g.Validate(); err != nil {
		return BoxGeometry{}, err
	}
	return g, nil
}

// Validate checks rows >= 1, columns >= 1 and separator rows >= 0.
func (g BoxGeometry) Validate() error {
	if g.Rows < 1 || g.Columns < 1 || g.SeparatorRows < 0 {
		return fmt.Errorf("%w: got %dx%d with %d separator rows", ErrInvalidGeometry, g.Rows, g.Columns, g.SeparatorRows)
	}
	return nil
}

// Capacity returns the number of samples one box holds.
func (g BoxGeometry) Capacity() int {
	return g.Rows * g.Columns
}

// Cycle returns the number of grid rows occupied by one box and its trailing separators.
func (g BoxGeometry) Cycle() int {
	return g.Rows + g.SeparatorRows
}

func (g BoxGeometry) String() string {
	return fmt.Sprintf("%dx%d+%d", g.Rows, g.Columns, g.SeparatorRows)
}
