package formatter

import (
	"fmt"

	"github.com/vocaprep/interview-engine/internal/entity"
)

const baseTitle = "Interview Performance Report"

type Formatter interface {
	Format(plainText string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ReportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
