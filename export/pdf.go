package export

import (
	"fmt"
	"io"
	"strings"

	"living_pages/story"

	"github.com/jung-kurt/gofpdf"
)

const lineHeight = 6.0

// WritePDF renders the story transcript and the character roster as a PDF.
func WritePDF(w io.Writer, title string, snap story.Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Times", "B", 18)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	pdf.Ln(4)

	writeTranscript(pdf, tr, snap.Transcript)

	if len(snap.Characters) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Times", "B", 14)
		pdf.MultiCell(0, 8, "Characters", "", "L", false)
		for _, c := range snap.Characters {
			pdf.SetFont("Times", "B", 12)
			pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%s - %s (%d)", c.Name, c.Standing, c.Affinity)), "", "L", false)
			pdf.SetFont("Times", "", 11)
			if c.Description != "" {
				pdf.MultiCell(0, lineHeight, tr(c.Description), "", "L", false)
			}
			if len(c.Traits) > 0 {
				pdf.MultiCell(0, lineHeight, tr("Traits: "+strings.Join(c.Traits, ", ")), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// writeTranscript prints player actions in bold and twists in italics,
// following the transcript's markdown markers.
func writeTranscript(pdf *gofpdf.Fpdf, tr func(string) string, transcript string) {
	italic := false
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			pdf.Ln(2)
			continue
		}

		if strings.HasPrefix(line, "> ") {
			action := strings.Trim(strings.TrimPrefix(line, "> "), "*")
			pdf.SetFont("Times", "B", 12)
			pdf.MultiCell(0, lineHeight, tr("> "+action), "", "L", false)
			continue
		}

		closes := false
		if !italic && strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "**") {
			italic = true
			line = strings.TrimPrefix(line, "*")
		}
		if italic && strings.HasSuffix(line, "*") {
			closes = true
			line = strings.TrimSuffix(line, "*")
		}

		style := ""
		if italic {
			style = "I"
		}
		pdf.SetFont("Times", style, 12)
		pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		if closes {
			italic = false
		}
	}
}
