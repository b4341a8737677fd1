package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/packassist/internal/layout"
	"github.com/piwi3910/packassist/internal/model"
)

const (
	listCodeWidth   = 110
	listFieldWidth  = 70
	listWeightWidth = 80
	mapCellWidth    = 120
)

// newCell creates a table cell: a status-colored background behind a label.
func newCell() fyne.CanvasObject {
	bg := canvas.NewRectangle(color.Transparent)
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return container.NewStack(bg, label)
}

func setCell(o fyne.CanvasObject, text string, status layout.PositionStatus, mono bool) {
	c := o.(*fyne.Container)
	bg := c.Objects[0].(*canvas.Rectangle)
	label := c.Objects[1].(*widget.Label)

	bg.FillColor = theme.Color(statusColorName(status))
	bg.Refresh()
	label.TextStyle = fyne.TextStyle{Monospace: mono}
	label.SetText(text)
}

func newHeader() fyne.CanvasObject {
	return widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

// listHeaders returns the list view column titles.
func listHeaders(cols model.ColumnSet) []string {
	headers := append([]string{cols.Code}, cols.Positional...)
	return append(headers, cols.Weight)
}

// listCellText returns the list view text of sample s in column col.
func listCellText(s model.Sample, col, positional int) string {
	switch {
	case col == 0:
		return s.Code
	case col <= positional:
		if col-1 < len(s.Fields) {
			return s.Fields[col-1]
		}
		return ""
	default:
		return s.WeightText()
	}
}

func (a *App) weightColumn() int {
	return len(a.core.Layout().Columns().Positional) + 1
}

// buildListView creates the sample list table: one row per sample.
func (a *App) buildListView() *widget.Table {
	l := a.core.Layout()
	headers := listHeaders(l.Columns())
	positional := len(l.Columns().Positional)

	t := widget.NewTableWithHeaders(
		func() (int, int) { return l.Len(), len(headers) },
		newCell,
		func(id widget.TableCellID, o fyne.CanvasObject) {
			s, ok := l.Sample(id.Row)
			if !ok {
				setCell(o, "", layout.StatusFree, false)
				return
			}
			status := layout.StatusUnpacked
			if s.HasWeight() {
				status = layout.StatusPacked
			}
			setCell(o, listCellText(s, id.Col, positional), status, false)
		},
	)
	t.CreateHeader = newHeader
	t.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		label := o.(*widget.Label)
		if id.Row < 0 && id.Col >= 0 && id.Col < len(headers) {
			label.SetText(headers[id.Col])
			return
		}
		label.SetText(strconv.Itoa(id.Row + 1))
	}

	t.SetColumnWidth(0, listCodeWidth)
	for i := 1; i <= positional; i++ {
		t.SetColumnWidth(i, listFieldWidth)
	}
	t.SetColumnWidth(positional+1, listWeightWidth)

	t.OnSelected = func(id widget.TableCellID) {
		if a.syncing {
			return
		}
		if a.core.Navigator().Select(id.Row) {
			a.selectionChanged()
		}
	}
	return t
}

// buildMapView creates the box map table: one cell per grid position.
func (a *App) buildMapView() *widget.Table {
	l := a.core.Layout()
	letters := layout.ColumnLetters(l.Geometry().Columns)

	t := widget.NewTableWithHeaders(
		func() (int, int) { return l.RowCount(), len(letters) },
		newCell,
		func(id widget.TableCellID, o fyne.CanvasObject) {
			cell, ok := l.CellAt(id.Row, id.Col)
			if !ok {
				setCell(o, "", layout.StatusFree, true)
				return
			}
			setCell(o, cell.Text, cell.Status(), true)
		},
	)
	t.CreateHeader = newHeader
	t.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		label := o.(*widget.Label)
		if id.Row < 0 && id.Col >= 0 && id.Col < len(letters) {
			label.SetText(letters[id.Col])
			return
		}
		label.SetText(l.RowLabel(id.Row))
	}
	for i := range letters {
		t.SetColumnWidth(i, mapCellWidth)
	}

	t.OnSelected = func(id widget.TableCellID) {
		if a.syncing {
			return
		}
		if a.core.Navigator().SelectCell(id.Row, id.Col) {
			a.selectionChanged()
		}
	}
	return t
}

// layoutChanged refreshes the views after a layout mutation. Weight edits
// only refresh the affected cells.
func (a *App) layoutChanged(e layout.Event) {
	switch e.Kind {
	case layout.EventCellChanged:
		for col := 0; col <= a.weightColumn(); col++ {
			a.list.RefreshItem(widget.TableCellID{Row: e.Index, Col: col})
		}
		a.grid.RefreshItem(widget.TableCellID{Row: e.Position.Row, Col: e.Position.Col})
	default:
		a.list.Refresh()
		a.grid.Refresh()
	}
	a.updateInfo()
	a.core.Autosave()
}

// selectionChanged mirrors the navigator selection into both views.
func (a *App) selectionChanged() {
	a.syncing = true
	defer func() { a.syncing = false }()

	nav := a.core.Navigator()
	index, ok := nav.Selected()
	if !ok {
		a.list.UnselectAll()
		a.grid.UnselectAll()
		a.updateInfo()
		return
	}
	listID := widget.TableCellID{Row: index, Col: a.weightColumn()}
	a.list.Select(listID)
	a.list.ScrollTo(listID)
	if pos, err := a.core.Layout().PositionOf(index); err == nil {
		gridID := widget.TableCellID{Row: pos.Row, Col: pos.Col}
		a.grid.Select(gridID)
		a.grid.ScrollTo(gridID)
	}
	a.updateInfo()
}
