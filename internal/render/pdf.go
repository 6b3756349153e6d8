package render

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 7.0
)

// PDF renders three fixed pages: name, bio and projects; education;
// experience. Pages never break on content, so a list longer than one page
// is cut off at the bottom edge. Known limitation.
func PDF(p *portfolio.Portfolio) ([]byte, error) {
	doc := buildPDF(PreviewViewModel(p, Desktop))
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildPDF(vm ViewModel) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(vm.Name, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	heading := hexRGB(vm.Theme.Primary)

	title := func(text string, size float64) {
		doc.SetFont("Helvetica", "B", size)
		doc.SetTextColor(heading[0], heading[1], heading[2])
		doc.CellFormat(0, size/2+2, tr(text), "", 1, "L", false, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.Ln(2)
	}
	bullet := func(text string) {
		doc.SetFont("Helvetica", "", 11)
		doc.MultiCell(0, pdfLineHeight, tr("• "+text), "", "L", false)
	}

	doc.AddPage()
	title(vm.Name, 24)
	if vm.Title != "" {
		doc.SetFont("Helvetica", "I", 13)
		doc.CellFormat(0, pdfLineHeight, tr(vm.Title), "", 1, "L", false, 0, "")
	}
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, pdfLineHeight, tr(vm.Bio), "", "L", false)
	doc.Ln(4)
	title("Projects", 16)
	for _, pr := range vm.Projects {
		line := pr.Title
		if pr.Description != "" {
			line += ": " + pr.Description
		}
		if len(pr.Technologies) > 0 {
			line += " (" + strings.Join(pr.Technologies, ", ") + ")"
		}
		bullet(line)
	}

	doc.AddPage()
	title("Education", 16)
	for _, ed := range vm.Education {
		bullet(timelineLine(ed))
	}

	doc.AddPage()
	title("Experience", 16)
	for _, ex := range vm.Experience {
		bullet(timelineLine(ex))
	}
	return doc
}

func timelineLine(it TimelineItem) string {
	parts := []string{it.Heading}
	if it.Subtitle != "" {
		parts = append(parts, it.Subtitle)
	}
	if it.Period != "" {
		parts = append(parts, it.Period)
	}
	return strings.Join(parts, ", ")
}

// hexRGB parses "#rrggbb", falling back to black.
func hexRGB(hex string) [3]int {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if len(hex) != 6 || err != nil {
		return [3]int{}
	}
	return [3]int{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}
