package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// extractXlsx renders the workbook's first sheet as a whitespace-aligned text
// table without a row index column.
func extractXlsx(b []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("open zip: %w", err)
	}

	shared, err := readSharedStrings(zr)
	if err != nil {
		return "", err
	}

	sheetPath := firstWorksheet(zr)
	if sheetPath == "" {
		return "", fmt.Errorf("no worksheet found in archive")
	}
	rc, err := openZipEntry(b, sheetPath)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	grid, err := readSheetGrid(rc, shared)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", sheetPath, err)
	}
	return renderTable(grid), nil
}

// readSharedStrings parses xl/sharedStrings.xml. The file is optional; a
// workbook with no string cells omits it.
func readSharedStrings(zr *zip.Reader) ([]string, error) {
	var file *zip.File
	for _, f := range zr.File {
		if f.Name == "xl/sharedStrings.xml" {
			file = f
			break
		}
	}
	if file == nil {
		return nil, nil
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open sharedStrings.xml: %w", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var items []string
	var current strings.Builder
	var inItem, inText bool
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sharedStrings.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inItem = true
				current.Reset()
			case "t":
				inText = inItem
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "si":
				if inItem {
					items = append(items, current.String())
					inItem = false
				}
			}
		}
	}
	return items, nil
}

// firstWorksheet resolves the first sheet in workbook order through the
// workbook relationships, falling back to sheet1.xml and then to the
// lexicographically first worksheet entry.
func firstWorksheet(zr *zip.Reader) string {
	if relID := firstSheetRelID(zr); relID != "" {
		if target := workbookRelTarget(zr, relID); target != "" {
			name := target
			if strings.HasPrefix(name, "/") {
				name = strings.TrimPrefix(name, "/")
			} else {
				name = "xl/" + name
			}
			if zipHasEntry(zr, name) {
				return name
			}
		}
	}
	if zipHasEntry(zr, "xl/worksheets/sheet1.xml") {
		return "xl/worksheets/sheet1.xml"
	}
	var names []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/") && strings.HasSuffix(f.Name, ".xml") {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

func firstSheetRelID(zr *zip.Reader) string {
	for _, f := range zr.File {
		if f.Name != "xl/workbook.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer rc.Close()
		decoder := xml.NewDecoder(rc)
		for {
			tok, err := decoder.Token()
			if err != nil {
				return ""
			}
			if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "sheet" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						return attr.Value
					}
				}
				return ""
			}
		}
	}
	return ""
}

func workbookRelTarget(zr *zip.Reader, relID string) string {
	for _, f := range zr.File {
		if f.Name != "xl/_rels/workbook.xml.rels" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer rc.Close()
		decoder := xml.NewDecoder(rc)
		for {
			tok, err := decoder.Token()
			if err != nil {
				return ""
			}
			t, ok := tok.(xml.StartElement)
			if !ok || t.Name.Local != "Relationship" {
				continue
			}
			var id, target string
			for _, attr := range t.Attr {
				switch attr.Name.Local {
				case "Id":
					id = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if id == relID {
				return target
			}
		}
	}
	return ""
}

func zipHasEntry(zr *zip.Reader, name string) bool {
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// readSheetGrid reads rows and cells into a string grid, resolving shared and
// inline strings and padding skipped columns with empty cells.
func readSheetGrid(r io.Reader, shared []string) ([][]string, error) {
	decoder := xml.NewDecoder(r)
	var grid [][]string
	var row []string
	var cellValue strings.Builder
	var cellRef, cellType string
	var inCell, inValue, inInline, inInlineText bool
	nextCol := 0

	flushCell := func() {
		col := nextCol
		if c, ok := columnIndex(cellRef); ok {
			col = c
		}
		for len(row) < col {
			row = append(row, "")
		}
		value := cellValue.String()
		if cellType == "s" {
			idx, err := strconv.Atoi(strings.TrimSpace(value))
			if err == nil && idx >= 0 && idx < len(shared) {
				value = shared[idx]
			}
		}
		row = append(row, value)
		nextCol = col + 1
	}

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
			case "row":
				row = nil
				nextCol = 0
			case "c":
				inCell = true
				cellValue.Reset()
				cellRef, cellType = "", ""
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "r":
						cellRef = attr.Value
					case "t":
						cellType = attr.Value
					}
				}
			case "v":
				inValue = inCell
			case "is":
				inInline = inCell
			case "t":
				inInlineText = inInline
			}
		case xml.CharData:
			if inValue || inInlineText {
				cellValue.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v":
				inValue = false
			case "t":
				inInlineText = false
			case "is":
				inInline = false
			case "c":
				if inCell {
					flushCell()
					inCell = false
				}
			case "row":
				grid = append(grid, row)
				row = nil
			}
		}
	}
	return grid, nil
}

// columnIndex converts the letter prefix of a cell reference like "BC12" into
// a zero-based column number.
func columnIndex(ref string) (int, bool) {
	n := 0
	seen := false
	for _, ch := range ref {
		if ch < 'A' || ch > 'Z' {
			break
		}
		n = n*26 + int(ch-'A') + 1
		seen = true
	}
	if !seen {
		return 0, false
	}
	return n - 1, true
}

// renderTable pads every column to its widest cell, left-aligned, two spaces
// between columns, trailing whitespace trimmed per line.
func renderTable(grid [][]string) string {
	if len(grid) == 0 {
		return ""
	}
	var widths []int
	for _, row := range grid {
		for c, cell := range row {
			w := utf8.RuneCountInString(cell)
			if c >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[c] {
				widths[c] = w
			}
		}
	}

	lines := make([]string, 0, len(grid))
	var buf strings.Builder
	for _, row := range grid {
		buf.Reset()
		for c, cell := range row {
			if c > 0 {
				buf.WriteString("  ")
			}
			buf.WriteString(cell)
			if c < len(row)-1 {
				for i := utf8.RuneCountInString(cell); i < widths[c]; i++ {
					buf.WriteByte(' ')
				}
			}
		}
		lines = append(lines, strings.TrimRight(buf.String(), " \t"))
	}
	return joinLines(lines)
}
