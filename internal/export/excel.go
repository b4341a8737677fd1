package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/packassist/internal/layout"
	"github.com/piwi3910/packassist/internal/model"
)

// Sheet names of the exported workbook.
const (
	SamplesSheet = "Samples"
	MapSheet     = "Map"
)

// Workbook is everything written to an Excel export.
type Workbook struct {
	Columns model.ColumnSet
	Samples []model.Sample
	Map     layout.ExportGrid
}

// ExportExcel writes the sample list with weights and the box map to path.
func ExportExcel(path string, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SamplesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeSamples(f, wb.Columns, wb.Samples); err != nil {
		return err
	}
	if _, err := f.NewSheet(MapSheet); err != nil {
		return fmt.Errorf("create map sheet: %w", err)
	}
	if err := writeMap(f, wb.Map); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSamples(f *excelize.File, cols model.ColumnSet, samples []model.Sample) error {
	header := make([]interface{}, 0, len(cols.Positional)+2)
	header = append(header, cols.Code)
	for _, p := range cols.Positional {
		header = append(header, p)
	}
	header = append(header, cols.Weight)
	if err := f.SetSheetRow(SamplesSheet, "A1", &header); err != nil {
		return fmt.Errorf("write samples header: %w", err)
	}

	for i, s := range samples {
		row := make([]interface{}, 0, len(header))
		row = append(row, s.Code)
		for j := range cols.Positional {
			v := ""
			if j < len(s.Fields) {
				v = s.Fields[j]
			}
			row = append(row, v)
		}
		if s.Weight != nil {
			row = append(row, *s.Weight)
		} else {
			row = append(row, "")
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SamplesSheet, cell, &row); err != nil {
			return fmt.Errorf("write sample %d: %w", i, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SamplesSheet, "A1", last, bold)
}

type mapStyles struct {
	box, header, packed int
}

func newMapStyles(f *excelize.File) (mapStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	var s mapStyles
	var err error
	if s.box, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: center,
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E6E6E6"}},
	}); err != nil {
		return s, err
	}
	s.packed, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: center,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C8EBC8"}},
	})
	return s, err
}

// writeMap puts row labels in column A and box cells from column B on.
func writeMap(f *excelize.File, eg layout.ExportGrid) error {
	styles, err := newMapStyles(f)
	if err != nil {
		return fmt.Errorf("create map styles: %w", err)
	}
	for r, row := range eg.Rows {
		values := make([]interface{}, 0, len(row.Cells)+1)
		values = append(values, row.Label)
		for _, c := range row.Cells {
			values = append(values, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(MapSheet, cell, &values); err != nil {
			return fmt.Errorf("write map row %d: %w", r+1, err)
		}
	}

	for _, box := range eg.Boxes {
		if err := styleRange(f, box.LabelRow, box.HeaderRow, 1, eg.Columns+1, styles.header); err != nil {
			return err
		}
		if err := styleRange(f, box.FirstDataRow, box.LastDataRow, 1, 1, styles.header); err != nil {
			return err
		}
		if err := styleRange(f, box.FirstDataRow, box.LastDataRow, 2, eg.Columns+1, styles.box); err != nil {
			return err
		}
		for r := box.FirstDataRow; r <= box.LastDataRow; r++ {
			for c, packed := range eg.Rows[r].Packed {
				if packed {
					if err := styleRange(f, r, r, c+2, c+2, styles.packed); err != nil {
						return err
					}
				}
			}
		}
	}

	if eg.Columns > 0 {
		lastCol, err := excelize.ColumnNumberToName(eg.Columns + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(MapSheet, "A", "A", 4); err != nil {
			return err
		}
		if err := f.SetColWidth(MapSheet, "B", lastCol, 14); err != nil {
			return err
		}
	}
	return nil
}

// styleRange styles zero-based rows r1..r2 and one-based columns c1..c2.
func styleRange(f *excelize.File, r1, r2, c1, c2, style int) error {
	top, err := excelize.CoordinatesToCellName(c1, r1+1)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(c2, r2+1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(MapSheet, top, bottom, style); err != nil {
		return fmt.Errorf("style %s:%s: %w", top, bottom, err)
	}
	return nil
}
