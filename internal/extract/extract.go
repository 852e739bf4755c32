// Package extract turns uploaded files of mixed formats into plain text.
//
// Dispatch is by the file's declared media type, never by content sniffing.
// Failure is a per-file value, not a control-flow escape: one malformed file
// can never abort extraction of the rest of a batch.
package extract

import (
	"errors"
	"fmt"
	"time"

	"docflow/internal/models"
	"docflow/internal/util"
)

// Recognized media type identifiers, matched exactly.
const (
	MediaTypePDF    = "application/pdf"
	MediaTypeDocx   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePptx   = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MediaTypeXlsx   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypeText   = "text/plain"
	MediaTypeBinary = "application/octet-stream"
)

// UnsupportedMarker is recorded as the document text for a declared media
// type outside the recognized set. Never empty.
const UnsupportedMarker = "Unsupported file format"

var errUnsupported = errors.New("unsupported media type")

// Extract runs one uploaded file through the format dispatch table.
func Extract(f models.UploadedFile) models.ExtractedDocument {
	start := time.Now()
	doc := models.ExtractedDocument{
		Filename: f.Filename,
		DocID:    util.SHA256Hex(f.Bytes),
		ByteSize: len(f.Bytes),
	}

	text, err := extractByType(f.MediaType, f.Bytes)
	switch {
	case errors.Is(err, errUnsupported):
		doc.Status = models.StatusUnsupported
		doc.Text = UnsupportedMarker
	case err != nil:
		doc.Status = models.StatusFailed
		doc.FailReason = err.Error()
		doc.Text = fmt.Sprintf("extraction failed: %v", err)
	default:
		doc.Status = models.StatusOk
		doc.Text = text
	}

	doc.Duration = time.Since(start)
	doc.DurationMS = doc.Duration.Milliseconds()
	return doc
}

// extractByType selects the per-format parser. Parser panics on malformed
// bytes (the PDF library panics on some corrupt inputs) are converted into
// ordinary extraction errors here.
func extractByType(mediaType string, b []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	switch mediaType {
	case MediaTypePDF:
		return extractPDF(b)
	case MediaTypeDocx:
		return extractDocx(b)
	case MediaTypePptx:
		return extractPptx(b)
	case MediaTypeXlsx:
		return extractXlsx(b)
	case MediaTypeText, MediaTypeBinary:
		return decodePlainText(b)
	default:
		return "", errUnsupported
	}
}
