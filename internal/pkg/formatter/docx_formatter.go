package formatter

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(text string) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titleRun := titlePar.AddRun()
	titleRun.AddText(baseTitle)

	doc.AddParagraph()

	// One paragraph per report line keeps section spacing readable.
	for _, line := range strings.Split(text, "\n") {
		bodyPar := doc.AddParagraph()
		bodyRun := bodyPar.AddRun()
		bodyRun.AddText(line)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
