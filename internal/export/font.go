package export

import "github.com/go-pdf/fpdf"

// PDFOptions controls PDF rendering.
type PDFOptions struct {
	// FontPath is a TrueType font with Cyrillic glyphs. Without it the core
	// Helvetica font is used and characters outside cp1252 are lost.
	FontPath string
}

const utf8Family = "body"

// textFont selects fonts and translates strings for one document.
type textFont struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func newTextFont(pdf *fpdf.Fpdf, opts PDFOptions) *textFont {
	if opts.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", opts.FontPath)
		pdf.AddUTF8Font(utf8Family, "B", opts.FontPath)
		return &textFont{pdf: pdf, family: utf8Family, tr: func(s string) string { return s }}
	}
	return &textFont{pdf: pdf, family: "Helvetica", tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (f *textFont) set(style string, size float64) {
	f.pdf.SetFont(f.family, style, size)
}

// fit translates s and truncates it with "..." to width w.
func (f *textFont) fit(s string, w float64) string {
	s = f.tr(s)
	if f.pdf.GetStringWidth(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && f.pdf.GetStringWidth(string(r)+"...") > w {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
