package render

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 15.0
	lineHeight  = 10.0
	fontSize    = 12.0
	unicodeFont = "DocQAUnicode"
)

// Options controls summary PDF rendering.
type Options struct {
	// FontPath points at a UTF-8 TrueType font. Empty selects core Helvetica
	// with cp1252 translation, which drops characters outside that code page.
	FontPath string
}

// Renderer turns summary text into a PDF document.
type Renderer struct {
	fontBytes []byte
}

// NewRenderer loads the configured font once so each request renders from memory.
func NewRenderer(opts Options) (*Renderer, error) {
	r := &Renderer{}
	if path := strings.TrimSpace(opts.FontPath); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read pdf font %s: %w", path, err)
		}
		r.fontBytes = raw
	}
	return r, nil
}

// SummaryPDF renders text on A4 pages with word wrapping and automatic page breaks.
func (r *Renderer) SummaryPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Summary", true)

	translate := func(s string) string { return s }
	if len(r.fontBytes) > 0 {
		pdf.AddUTF8FontFromBytes(unicodeFont, "", r.fontBytes)
		pdf.SetFont(unicodeFont, "", fontSize)
	} else {
		pdf.SetFont("Helvetica", "", fontSize)
		translate = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()
	pdf.MultiCell(0, lineHeight, translate(normalizeNewlines(text)), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
