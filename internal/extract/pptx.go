package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slideEntryRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractPptx walks every slide in numeric order and, for every shape on that
// slide carrying a text body, appends the shape's text. Paragraphs within a
// shape and shapes within the deck are newline-joined.
func extractPptx(b []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	type slideEntry struct {
		nr   int
		file *zip.File
	}
	var slides []slideEntry
	for _, f := range zr.File {
		m := slideEntryRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		nr, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideEntry{nr: nr, file: f})
	}
	if len(slides) == 0 {
		return "", fmt.Errorf("no slides found in archive")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].nr < slides[j].nr })

	var shapes []string
	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			return "", fmt.Errorf("open slide %d: %w", s.nr, err)
		}
		slideShapes, err := slideShapeTexts(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("parse slide %d: %w", s.nr, err)
		}
		shapes = append(shapes, slideShapes...)
	}
	return joinLines(shapes), nil
}

// slideShapeTexts returns one text per shape text body, in shape order.
func slideShapeTexts(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var shapes []string
	var current strings.Builder
	var inBody, inText bool
	paragraphs := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "txBody":
				inBody = true
				current.Reset()
				paragraphs = 0
			case "p":
				if inBody {
					if paragraphs > 0 {
						current.WriteByte('\n')
					}
					paragraphs++
				}
			case "t":
				inText = inBody
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "txBody":
				if inBody {
					shapes = append(shapes, current.String())
					inBody = false
				}
			}
		}
	}
	return shapes, nil
}
