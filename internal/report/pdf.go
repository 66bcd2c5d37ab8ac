package report

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Candidate CJK-capable fonts, probed in order. The report text can carry
// native-script titles, so a Unicode font is preferred; without one the
// built-in Helvetica still renders Latin content.
var fontPaths = []string{
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/arphic/uming.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/PingFang.ttc",
	"C:\\Windows\\Fonts\\msjh.ttc",
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`_(.*?)_`)
	mdLinkRe = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

type pdfWriter struct {
	doc      *fpdf.Fpdf
	fontName string
}

func newPDFWriter() *pdfWriter {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)

	name := "Helvetica"
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		doc.AddUTF8Font("unicode", "", path)
		doc.AddUTF8Font("unicode", "B", path)
		if doc.Err() {
			// Some font files fail to load; reset and try the next one.
			doc = fpdf.New("P", "mm", "A4", "")
			doc.SetMargins(20, 20, 20)
			doc.SetAutoPageBreak(true, 20)
			continue
		}
		name = "unicode"
		break
	}

	doc.AddPage()
	return &pdfWriter{doc: doc, fontName: name}
}

// renderMarkdown walks the report line by line and maps the small markdown
// vocabulary the analysis stage emits (headings, lists, bold labels,
// links, rules) onto PDF paragraphs.
func (w *pdfWriter) renderMarkdown(content string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			w.doc.Ln(3)
		case strings.HasPrefix(line, "# "):
			w.heading(strings.TrimPrefix(line, "# "), 20, 10)
		case strings.HasPrefix(line, "## "):
			w.heading(strings.TrimPrefix(line, "## "), 15, 6)
		case strings.HasPrefix(line, "### "):
			w.heading(strings.TrimPrefix(line, "### "), 12, 4)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			w.paragraph("  \u2022 "+cleanInline(line[2:]), 10)
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "***"):
			w.rule()
		default:
			w.paragraph(cleanInline(line), 10)
		}
	}
}

func (w *pdfWriter) heading(text string, size float64, gap float64) {
	w.doc.SetFont(w.fontName, "B", size)
	w.doc.SetTextColor(26, 84, 144)
	w.doc.MultiCell(0, size*0.55, cleanInline(text), "", "L", false)
	w.doc.Ln(gap)
	w.doc.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) paragraph(text string, size float64) {
	w.doc.SetFont(w.fontName, "", size)
	w.doc.MultiCell(0, 5.5, text, "", "L", false)
	w.doc.Ln(1)
}

func (w *pdfWriter) rule() {
	w.doc.Ln(2)
	x, y := w.doc.GetXY()
	pageW, _ := w.doc.GetPageSize()
	w.doc.SetDrawColor(160, 160, 160)
	w.doc.Line(x, y, pageW-20, y)
	w.doc.Ln(4)
}

func (w *pdfWriter) save(path string) error {
	if err := w.doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf write: %w", err)
	}
	return nil
}

// cleanInline strips inline markdown: bold and italic markers go away and
// [title](url) becomes "title (url)".
func cleanInline(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = mdLinkRe.ReplaceAllString(text, "$1 ($2)")
	return text
}
