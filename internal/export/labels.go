package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/packassist/internal/layout"
)

// LabelInfo holds the data encoded into each box label's QR code.
type LabelInfo struct {
	Shipment string `json:"shipment"`
	Box      int    `json:"box"`
	Label    string `json:"label"`
	First    int    `json:"first"` // 1-based sample number
	Last     int    `json:"last"`
	Count    int    `json:"count"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// CollectLabelInfos returns one label per box of the export grid.
func CollectLabelInfos(eg layout.ExportGrid) []LabelInfo {
	labels := make([]LabelInfo, 0, len(eg.Boxes))
	for _, b := range eg.Boxes {
		labels = append(labels, LabelInfo{
			Shipment: eg.Shipment,
			Box:      b.Ordinal,
			Label:    b.Label,
			First:    b.FirstIndex + 1,
			Last:     b.FirstIndex + b.Count,
			Count:    b.Count,
		})
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels, one per box, laid out on
// a standard label sheet (Avery 5160, 3 columns x 10 rows on US Letter).
func ExportLabels(path string, eg layout.ExportGrid, opts PDFOptions) error {
	labels := CollectLabelInfos(eg)
	if len(labels) == 0 {
		return fmt.Errorf("no boxes to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	font := newTextFont(pdf, opts)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		pos := i % labelsPerPage
		x := labelMarginLeft + float64(pos%labelCols)*labelWidth
		y := labelMarginTop + float64(pos/labelCols)*labelHeight

		if err := renderLabel(pdf, font, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, font *textFont, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_box_%d", info.Box)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	font.set("B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 7, font.fit(info.Label, textW), "", 1, "L", false, 0, "")

	font.set("", 8)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 4, fmt.Sprintf("#%d - #%d", info.First, info.Last), "", 1, "L", false, 0, "")

	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+14)
	pdf.CellFormat(textW, 4, fmt.Sprintf("%d pcs", info.Count), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
