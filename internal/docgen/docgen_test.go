package docgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"

	"docflow/internal/extract"
	"docflow/internal/models"
)

var testStamp = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestDocxRoundTripsThroughExtractor(t *testing.T) {
	b, err := Docx("Summary Report", testStamp, "line one\nline two")
	require.NoError(t, err)

	doc := extract.Extract(models.UploadedFile{
		Filename:  "output.docx",
		MediaType: extract.MediaTypeDocx,
		Bytes:     b,
	})
	require.Equal(t, models.StatusOk, doc.Status)
	require.Contains(t, doc.Text, "Summary Report")
	require.Contains(t, doc.Text, "Generated 2026-03-14T09:26:53Z")
	require.Contains(t, doc.Text, "line one\nline two")
}

func TestDocxEscapesMarkup(t *testing.T) {
	b, err := Docx("T", testStamp, "a < b & c > d")
	require.NoError(t, err)

	doc := extract.Extract(models.UploadedFile{MediaType: extract.MediaTypeDocx, Bytes: b})
	require.Equal(t, models.StatusOk, doc.Status)
	require.Contains(t, doc.Text, "a < b & c > d")
}

func TestPDFValidates(t *testing.T) {
	b, err := PDF("Summary Report", testStamp, "line one\nline two")
	require.NoError(t, err)
	require.NotEmpty(t, b)

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(b), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.GreaterOrEqual(t, ctx.PageCount, 1)
}

func TestPDFPaginatesLongText(t *testing.T) {
	long := bytes.Repeat([]byte("a line of output\n"), 200)
	b, err := PDF("T", testStamp, string(long))
	require.NoError(t, err)

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(b), model.NewDefaultConfiguration())
	require.NoError(t, err)
	require.Greater(t, ctx.PageCount, 1)
}

func TestBuildUnknownFormat(t *testing.T) {
	_, err := Build(Format("odt"), "T", testStamp, "x")
	require.Error(t, err)
}

func TestBuildDocxDefaults(t *testing.T) {
	f, err := Build(FormatDocx, "", testStamp, "x")
	require.NoError(t, err)
	require.Equal(t, "output.docx", f.Name)
	require.NotEmpty(t, f.Bytes)
}
