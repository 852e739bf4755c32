package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"docflow/internal/models"
)

func TestAggregateEmpty(t *testing.T) {
	require.Equal(t, "", Aggregate(nil))
	require.Equal(t, "", Aggregate([]models.ExtractedDocument{}))
}

func TestAggregatePreservesOrderAndSeparator(t *testing.T) {
	a := models.ExtractedDocument{Filename: "a", Text: "alpha", Status: models.StatusOk}
	b := models.ExtractedDocument{Filename: "b", Text: "beta", Status: models.StatusOk}

	ab := Aggregate([]models.ExtractedDocument{a, b})
	ba := Aggregate([]models.ExtractedDocument{b, a})

	require.Equal(t, "alpha\n\nbeta\n\n", ab)
	require.Equal(t, "beta\n\nalpha\n\n", ba)
	require.NotEqual(t, ab, ba)
}

func TestAggregateIncludesFailedAndUnsupportedMarkers(t *testing.T) {
	docs := []models.ExtractedDocument{
		{Text: "good", Status: models.StatusOk},
		{Text: "Unsupported file format", Status: models.StatusUnsupported},
		{Text: "extraction failed: open zip: bad header", Status: models.StatusFailed},
	}
	out := Aggregate(docs)
	require.Contains(t, out, "Unsupported file format")
	require.Contains(t, out, "extraction failed")
}
