package formatter

import (
	"bytes"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Runtime path: the Docker image copies fonts to ./ttf
	// next to the compiled binary.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path for `go run` from the repository root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath tries the runtime layout first, then the source layout.
func resolveFontPath() string {
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}

	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}

	return ""
}

func (mf *PDFFormatter) Format(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Prefer the bundled UTF-8 font; the built-in Arial covers the
	// report's ASCII body if the font file is missing.
	fontName := "Arial"
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 20)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(12)

	pdf.SetFont(fontName, "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, text, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
