// Package docgen serializes a task result into a downloadable file. It makes
// no decisions about the text it is given.
package docgen

import (
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// File is a rendered download artifact.
type File struct {
	Name        string
	ContentType string
	Bytes       []byte
}

// Build renders result text into the requested format.
func Build(format Format, title string, generatedAt time.Time, text string) (File, error) {
	if strings.TrimSpace(title) == "" {
		title = "Processed Document"
	}
	switch format {
	case FormatPDF:
		b, err := PDF(title, generatedAt, text)
		if err != nil {
			return File{}, err
		}
		return File{Name: "output.pdf", ContentType: "application/pdf", Bytes: b}, nil
	case FormatDocx:
		b, err := Docx(title, generatedAt, text)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        "output.docx",
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Bytes:       b,
		}, nil
	default:
		return File{}, fmt.Errorf("unsupported download format %q", format)
	}
}
