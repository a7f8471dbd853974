// internal/export/pdf.go
package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"matchtech-assistant/internal/common/errors"
)

// RenderChatPDF renders a chat transcript as a single PDF document: centered
// title, then the transcript body.
func RenderChatPDF(title, content string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so Spanish accents survive.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 24)
	doc.MultiCell(0, 12, tr(title), "", "C", false)
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 6, tr(content), "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.NewPDFRenderFailedError(err)
	}
	return buf.Bytes(), nil
}
