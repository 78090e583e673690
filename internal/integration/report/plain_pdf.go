package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/finance-ledger/api/internal/domain/entity"
)

const (
	plainLinesPerPage = 60
	plainFontSize     = 9
	plainLeading      = 12
	plainLeft         = 40
	plainTop          = 800
)

// Fixed column widths in characters, in entity.ReportColumns order.
var plainColumnWidths = []int{6, 12, 11, 16, 24, 9, 10}

// PlainPDFRenderer writes a single-font PDF of fixed-width text lines.
// It depends on nothing beyond the report itself and cannot fail.
type PlainPDFRenderer struct{}

// NewPlainPDFRenderer creates a new PlainPDFRenderer instance.
func NewPlainPDFRenderer() *PlainPDFRenderer {
	return &PlainPDFRenderer{}
}

// Render implements adapter.PlainRenderer.
func (r *PlainPDFRenderer) Render(report *entity.Report) []byte {
	return writePlainPDF(paginate(plainLines(report), plainLinesPerPage))
}

func plainLines(report *entity.Report) []string {
	lines := []string{
		report.Title,
		"Period: " + report.RangeLabel(),
		"",
		fixedWidth(entity.ReportColumns),
	}
	for _, row := range rows(report) {
		lines = append(lines, fixedWidth(row))
	}
	lines = append(lines, "")
	return append(lines, summaryLines(report)...)
}

func fixedWidth(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		width := plainColumnWidths[i]
		runes := []rune(cell)
		if len(runes) > width {
			runes = runes[:width]
		}
		b.WriteString(string(runes))
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", width-len(runes)+1))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func paginate(lines []string, perPage int) [][]string {
	if len(lines) == 0 {
		return [][]string{{}}
	}
	pages := make([][]string, 0, (len(lines)+perPage-1)/perPage)
	for start := 0; start < len(lines); start += perPage {
		end := min(start+perPage, len(lines))
		pages = append(pages, lines[start:end])
	}
	return pages
}

// writePlainPDF emits catalog, page tree and font objects followed by a
// content stream and page object for each page.
func writePlainPDF(pages [][]string) []byte {
	var buf bytes.Buffer
	offsets := []int{0}

	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets)-1, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding >>")

	for i, page := range pages {
		stream := contentStream(page)
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
		object(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			4+2*i,
		))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets))
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets), xref)

	return buf.Bytes()
}

func contentStream(lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 %d Tf\n%d TL\n%d %d Td\n", plainFontSize, plainLeading, plainLeft, plainTop)
	for _, line := range lines {
		fmt.Fprintf(&b, "(%s) Tj T*\n", escapePDFText(line))
	}
	b.WriteString("ET")
	return b.String()
}

// escapePDFText escapes string delimiters and replaces anything outside
// printable ASCII with '?'.
func escapePDFText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x20 || r > 0x7e:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
