package extract

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"docflow/internal/util"
)

// extractPDF pulls text page by page, in page order, joined with a newline.
// A page that yields no text contributes an empty line; a page-level error
// never fails the whole document.
func extractPDF(b []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, util.SanitizeText(text))
	}
	return joinLines(pages), nil
}

func joinLines(parts []string) string {
	var buf bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(p)
	}
	return buf.String()
}
