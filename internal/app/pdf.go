package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeSimplePDF renders the summary Markdown as a minimal PDF: headings,
// bullet lines and paragraphs. No full Markdown layout.
func writeSimplePDF(markdown string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		switch {
		case s == "":
			pdf.Ln(5)
		case s == "---":
			pdf.Ln(3)
			pdf.Line(pdf.GetX(), pdf.GetY(), 200, pdf.GetY())
			pdf.Ln(3)
		case strings.HasPrefix(s, "#"):
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.TrimSpace(s[i:])
			if text == "" {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
		case strings.HasPrefix(s, "• "):
			pdf.SetX(14)
			pdf.MultiCell(0, 5, tr("- "+strings.TrimPrefix(s, "• ")), "", "L", false)
			pdf.SetX(10)
		default:
			pdf.MultiCell(0, 5, tr(s), "", "L", false)
		}
	}
	return pdf.OutputFileAndClose(outPath)
}
