package docgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const pdfLinesPerPage = 44

// PDF renders result text into a PDF through pdfcpu's create-from-JSON API,
// flowing the lines across as many pages as they need.
func PDF(title string, generatedAt time.Time, text string) ([]byte, error) {
	lines := append(
		[]string{title, "Generated " + generatedAt.UTC().Format(time.RFC3339), ""},
		strings.Split(text, "\n")...,
	)

	pages := map[string]any{}
	for nr := 1; len(lines) > 0; nr++ {
		n := pdfLinesPerPage
		if n > len(lines) {
			n = len(lines)
		}
		pages[strconv.Itoa(nr)] = map[string]any{
			"content": map[string]any{
				"text": []map[string]any{
					{
						"value":    strings.Join(lines[:n], "\n"),
						"position": []int{72, 720},
						"width":    468,
						"font": map[string]any{
							"name": "Helvetica",
							"size": 11,
						},
					},
				},
			},
		}
		lines = lines[n:]
	}

	form, err := json.Marshal(map[string]any{"pages": pages})
	if err != nil {
		return nil, fmt.Errorf("marshal pdf form: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(form), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("create pdf: %w", err)
	}
	return buf.Bytes(), nil
}
