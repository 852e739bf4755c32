package task

import (
	"strings"

	"docflow/internal/models"
)

// Aggregate concatenates extracted document texts in input order, each
// followed by exactly one blank-line separator, the last included. Status is
// not inspected: Unsupported and Failed marker texts flow into the corpus.
func Aggregate(docs []models.ExtractedDocument) string {
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(d.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
