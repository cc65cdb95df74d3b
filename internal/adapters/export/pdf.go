package export

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFContentType is the MIME type of WritePDF output
const PDFContentType = "application/pdf"

// column widths in mm; they add up to the A4 width minus margins
var pdfWidths = []float64{10, 45, 30, 20, 35, 22, 18}

// WritePDF renders rows as a titled A4 table
func WritePDF(w io.Writer, title string, rows []Row) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("KADA System", true)
	pdf.SetAuthor("KADA System", true)
	pdf.SetTitle(title, true)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range Headers {
		pdf.CellFormat(pdfWidths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range rows {
		for i, cell := range r.Cells() {
			align := "L"
			if i == 0 {
				align = "C"
			} else if i == 5 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 6, tr(fit(pdf, cell, pdfWidths[i])), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// fit shortens s so it does not spill out of a cell of width w
func fit(pdf *fpdf.Fpdf, s string, w float64) string {
	const pad = 2
	if pdf.GetStringWidth(s) <= w-pad {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w-pad {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
