package layout

import "strconv"

// RowKind tags the rows of an export grid.
type RowKind int

const (
	RowBoxLabel RowKind = iota
	RowColumnHeader
	RowData
	RowSeparator
)

// ExportRow is one row of the exported map. Label is the row-index column.
type ExportRow struct {
	Kind   RowKind
	Label  string
	Cells  []string
	Packed []bool // Per cell, set for weighed samples in data rows
}

// BoxSpan records which export rows belong to a box, for drawing borders.
type BoxSpan struct {
	Ordinal      int    // 1-based
	Label        string // "<shipment>.<ordinal>"
	LabelRow     int
	HeaderRow    int
	FirstDataRow int
	LastDataRow  int
	FirstIndex   int // List index of the first sample in the box
	Count        int // Samples in the box, excluding padding
}

// ExportGrid is the printable map. Every box gets a label row and a column
// letter row above its data rows, boxes are separated by blank rows and the
// last box is padded to capacity.
type ExportGrid struct {
	Shipment string
	Columns  int
	Rows     []ExportRow
	Boxes    []BoxSpan
}

// BoxLabel returns the label printed above a box.
func BoxLabel(shipment string, ordinal int) string {
	if shipment == "" {
		return strconv.Itoa(ordinal)
	}
	return shipment + "." + strconv.Itoa(ordinal)
}

// ExportGrid builds the printable map for the current samples.
func (l *Layout) ExportGrid(shipment string) ExportGrid {
	g := l.geometry
	samples := l.samples.Samples()
	boxes := l.BoxAmount()
	letters := ColumnLetters(g.Columns)

	out := ExportGrid{Shipment: shipment, Columns: g.Columns}
	for b := 0; b < boxes; b++ {
		span := BoxSpan{
			Ordinal:    b + 1,
			Label:      BoxLabel(shipment, b+1),
			FirstIndex: b * g.Capacity(),
			Count:      min(g.Capacity(), len(samples)-b*g.Capacity()),
		}

		labelCells := make([]string, g.Columns)
		labelCells[0] = span.Label
		span.LabelRow = len(out.Rows)
		out.Rows = append(out.Rows, ExportRow{Kind: RowBoxLabel, Cells: labelCells})

		span.HeaderRow = len(out.Rows)
		out.Rows = append(out.Rows, ExportRow{Kind: RowColumnHeader, Cells: append([]string(nil), letters...)})

		span.FirstDataRow = len(out.Rows)
		for r := 0; r < g.Rows; r++ {
			cells := make([]string, g.Columns)
			packed := make([]bool, g.Columns)
			for c := range cells {
				if idx := b*g.Capacity() + r*g.Columns + c; idx < len(samples) {
					cells[c] = samples[idx].Display()
					packed[c] = samples[idx].HasWeight()
				}
			}
			out.Rows = append(out.Rows, ExportRow{Kind: RowData, Label: strconv.Itoa(r + 1), Cells: cells, Packed: packed})
		}
		span.LastDataRow = len(out.Rows) - 1

		for s := 0; b < boxes-1 && s < g.SeparatorRows; s++ {
			out.Rows = append(out.Rows, ExportRow{Kind: RowSeparator, Cells: make([]string, g.Columns)})
		}
		out.Boxes = append(out.Boxes, span)
	}
	return out
}
