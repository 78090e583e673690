package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/finance-ledger/api/internal/domain/entity"
)

const (
	pdfRowHeight  = 7.0
	pdfCellMargin = 2.0
)

// Column widths in mm, in entity.ReportColumns order. They fill an A4 page
// with 10mm margins.
var pdfColumnWidths = []float64{12, 26, 22, 34, 56, 18, 22}

// PDFRenderer lays the report out as a paginated table with a totals block.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDFRenderer instance.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render implements adapter.ReportRenderer.
func (r *PDFRenderer) Render(report *entity.Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator("finance-ledger", false)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	// Core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, tr(report.Title), "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr("Period: "+report.RangeLabel()), "", 1, "C", false, 0, "")
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, column := range entity.ReportColumns {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, column, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 9)

	for _, row := range rows(report) {
		for i, value := range row {
			align := "L"
			if i == 1 {
				align = "R"
			}
			text := fit(pdf, tr, value, pdfColumnWidths[i]-pdfCellMargin)
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, text, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range summaryLines(report) {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to lay out pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// fit trims text with an ellipsis until its translated form is no wider than width.
func fit(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) string {
	if out := tr(text); pdf.GetStringWidth(out) <= width {
		return out
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := tr(string(runes) + "...")
		if pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
