package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportGridStructure(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 10)
	require.NoError(t, l.SetWeight(0, weight(1.25)))

	eg := l.ExportGrid("417")

	// Per box: label row, header row, 3 data rows; 1 separator between boxes.
	require.Len(t, eg.Rows, 11)
	require.Len(t, eg.Boxes, 2)
	assert.Equal(t, 3, eg.Columns)

	assert.Equal(t, RowBoxLabel, eg.Rows[0].Kind)
	assert.Equal(t, []string{"417.1", "", ""}, eg.Rows[0].Cells)
	assert.Equal(t, RowColumnHeader, eg.Rows[1].Kind)
	assert.Equal(t, []string{"a", "b", "c"}, eg.Rows[1].Cells)
	assert.Equal(t, RowData, eg.Rows[2].Kind)
	assert.Equal(t, "1", eg.Rows[2].Label)
	assert.Equal(t, []string{"S0 1.25", "S1", "S2"}, eg.Rows[2].Cells)
	assert.Equal(t, []bool{true, false, false}, eg.Rows[2].Packed)
	assert.Equal(t, RowSeparator, eg.Rows[5].Kind)

	second := eg.Boxes[1]
	assert.Equal(t, "417.2", second.Label)
	assert.Equal(t, 6, second.LabelRow)
	assert.Equal(t, 7, second.HeaderRow)
	assert.Equal(t, 8, second.FirstDataRow)
	assert.Equal(t, 10, second.LastDataRow)
	assert.Equal(t, 9, second.FirstIndex)
	assert.Equal(t, 1, second.Count)
	assert.Equal(t, 9, eg.Boxes[0].Count)
	assert.Equal(t, RowData, eg.Rows[len(eg.Rows)-1].Kind)
}

func TestExportGridPadsLastBox(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 10)
	eg := l.ExportGrid("1")

	last := eg.Boxes[1]
	assert.Equal(t, []string{"S9", "", ""}, eg.Rows[last.FirstDataRow].Cells)
	for r := last.FirstDataRow + 1; r <= last.LastDataRow; r++ {
		assert.Equal(t, []string{"", "", ""}, eg.Rows[r].Cells)
	}
}

func TestExportGridEmpty(t *testing.T) {
	l := newTestLayout(t, mustGeometry(t, 3, 3, 1), 0)
	eg := l.ExportGrid("1")
	assert.Empty(t, eg.Rows)
	assert.Empty(t, eg.Boxes)
}

func TestBoxLabel(t *testing.T) {
	assert.Equal(t, "12.3", BoxLabel("12", 3))
	assert.Equal(t, "3", BoxLabel("", 3))
}
