// Package export writes the packing map to Excel workbooks, printable PDF
// maps and QR-coded box labels.
package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/packassist/internal/layout"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	marginBottom = 12.0
	headerHeight = 10.0
	rowLabelW    = 8.0
	letterRowH   = 6.0
)

// Cell fill colors for weighed and unweighed samples.
var (
	packedFill   = [3]int{200, 235, 200}
	unpackedFill = [3]int{255, 255, 255}
)

// ExportPDF renders one page per box with the box label as title and the
// box grid below it.
func ExportPDF(path string, eg layout.ExportGrid, opts PDFOptions) error {
	if len(eg.Boxes) == 0 {
		return fmt.Errorf("no boxes to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	font := newTextFont(pdf, opts)

	for _, box := range eg.Boxes {
		pdf.AddPage()
		renderBoxPage(pdf, font, eg, box)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

func renderBoxPage(pdf *fpdf.Fpdf, font *textFont, eg layout.ExportGrid, box layout.BoxSpan) {
	contentW := pageWidth - marginLeft - marginRight

	font.set("B", 16)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s  (%d)", box.Label, box.Count)
	pdf.CellFormat(contentW, headerHeight, font.tr(title), "", 0, "L", false, 0, "")

	dataRows := box.LastDataRow - box.FirstDataRow + 1
	cellW := (contentW - rowLabelW) / float64(eg.Columns)
	top := marginTop + headerHeight + 2
	cellH := (pageHeight - top - marginBottom - letterRowH) / float64(dataRows)

	// Column letters
	font.set("B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.2)
	pdf.SetXY(marginLeft, top)
	pdf.CellFormat(rowLabelW, letterRowH, "", "1", 0, "C", true, 0, "")
	for _, letter := range eg.Rows[box.HeaderRow].Cells {
		pdf.CellFormat(cellW, letterRowH, letter, "1", 0, "C", true, 0, "")
	}

	for r := box.FirstDataRow; r <= box.LastDataRow; r++ {
		row := eg.Rows[r]
		y := top + letterRowH + float64(r-box.FirstDataRow)*cellH

		font.set("B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(rowLabelW, cellH, row.Label, "1", 0, "C", true, 0, "")

		font.set("", 8)
		for c, text := range row.Cells {
			fill := unpackedFill
			if c < len(row.Packed) && row.Packed[c] {
				fill = packedFill
			}
			pdf.SetFillColor(fill[0], fill[1], fill[2])
			pdf.CellFormat(cellW, cellH, font.fit(text, cellW-1), "1", 0, "C", true, 0, "")
		}
	}

	// Heavier outline around the box
	pdf.SetLineWidth(0.6)
	pdf.Rect(marginLeft, top, rowLabelW+cellW*float64(eg.Columns), letterRowH+cellH*float64(dataRows), "D")
}
