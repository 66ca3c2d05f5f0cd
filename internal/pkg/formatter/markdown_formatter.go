package formatter

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format promotes the rendered report layout to markdown: bare section
// lines become headings and the indented entries become nested bullets.
// Header fields such as "Session: <id>" stay as plain lines.
func (mf *MarkdownFormatter) Format(text string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)

	for _, line := range strings.Split(text, "\n") {
		switch {
		case line == "":
			buf.WriteByte('\n')
		case strings.HasPrefix(line, "    - "), strings.HasPrefix(line, "    * "):
			buf.WriteString("  - " + line[6:] + "\n")
		case strings.HasPrefix(line, "  - "):
			buf.WriteString("- " + line[4:] + "\n")
		case strings.HasPrefix(line, "  "):
			buf.WriteString("- " + line[2:] + "\n")
		case strings.Contains(line, ": "):
			buf.WriteString(line + "\n")
		default:
			buf.WriteString("## " + line + "\n")
		}
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
