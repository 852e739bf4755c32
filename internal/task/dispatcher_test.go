package task

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"docflow/internal/extract"
	"docflow/internal/models"
	"docflow/internal/providers"
)

// fakeLLM counts invocations and records the last prompt it saw.
type fakeLLM struct {
	calls      int
	lastPrompt string
	response   string
	err        error
}

func (f *fakeLLM) Generate(ctx context.Context, req providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	f.calls++
	f.lastPrompt = req.Prompt
	info := providers.ProviderInfo{Name: "fake", Model: "fake-1"}
	if f.err != nil {
		return providers.GenerateResponse{}, info, f.err
	}
	return providers.GenerateResponse{Text: f.response}, info, nil
}

func textFile(name, body string) models.UploadedFile {
	return models.UploadedFile{Filename: name, MediaType: extract.MediaTypeText, Bytes: []byte(body)}
}

func TestRunEmptyBatchSkipsLLM(t *testing.T) {
	llm := &fakeLLM{response: "unused"}
	d := NewDispatcher(llm)

	res, docs, err := d.Run(context.Background(), nil, models.TaskRequest{Kind: models.TaskSummarize})
	require.NoError(t, err)
	require.Empty(t, docs)
	require.Equal(t, NoContentMessage, res.Text)
	require.Zero(t, llm.calls)
}

func TestRunWhitespaceCorpusSkipsLLM(t *testing.T) {
	llm := &fakeLLM{response: "unused"}
	d := NewDispatcher(llm)

	res, _, err := d.Run(context.Background(), []models.UploadedFile{textFile("a.txt", "  \n\t ")}, models.TaskRequest{Kind: models.TaskSummarize})
	require.NoError(t, err)
	require.Equal(t, NoContentMessage, res.Text)
	require.Zero(t, llm.calls)
}

func TestRunCombineReturnsCorpusVerbatim(t *testing.T) {
	llm := &fakeLLM{response: "unused"}
	d := NewDispatcher(llm)

	res, docs, err := d.Run(context.Background(), []models.UploadedFile{textFile("a.txt", "hello world")}, models.TaskRequest{Kind: models.TaskCombine})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "hello world\n\n", res.Text)
	require.Zero(t, llm.calls)
	require.NotEmpty(t, res.ResultID)
	require.False(t, res.GeneratedAt.IsZero())
}

func TestRunSummarizeCallsLLMOnce(t *testing.T) {
	llm := &fakeLLM{response: "a fine summary"}
	d := NewDispatcher(llm)

	files := []models.UploadedFile{textFile("a.txt", "first"), textFile("b.txt", "second")}
	res, docs, err := d.Run(context.Background(), files, models.TaskRequest{Kind: models.TaskSummarize})
	require.NoError(t, err)
	require.Equal(t, 1, llm.calls)
	require.Equal(t, "a fine summary", res.Text)
	require.Len(t, docs, 2)
	require.Equal(t, "a.txt", docs[0].Filename)
	require.Equal(t, "b.txt", docs[1].Filename)
	require.Contains(t, llm.lastPrompt, "first\n\nsecond\n\n")
	require.Contains(t, llm.lastPrompt, "Summarize the following content concisely:")
}

func TestRunAnswerQuestionWithoutQuestionIsInvalid(t *testing.T) {
	llm := &fakeLLM{}
	d := NewDispatcher(llm)

	_, _, err := d.Run(context.Background(), []models.UploadedFile{textFile("a.txt", "body")}, models.TaskRequest{Kind: models.TaskAnswerQuestion})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Zero(t, llm.calls)
}

func TestRunUnsupportedFileStillReachesLLM(t *testing.T) {
	llm := &fakeLLM{response: "summary anyway"}
	d := NewDispatcher(llm)

	files := []models.UploadedFile{{Filename: "x.bin", MediaType: "application/x-unknown", Bytes: []byte{1, 2}}}
	res, docs, err := d.Run(context.Background(), files, models.TaskRequest{Kind: models.TaskSummarize})
	require.NoError(t, err)
	require.Equal(t, 1, llm.calls)
	require.Contains(t, llm.lastPrompt, extract.UnsupportedMarker)
	require.Equal(t, models.StatusUnsupported, docs[0].Status)
	require.Equal(t, "summary anyway", res.Text)
}

func TestRunFailedFileDoesNotAbortBatch(t *testing.T) {
	llm := &fakeLLM{response: "ok"}
	d := NewDispatcher(llm)

	files := []models.UploadedFile{
		{Filename: "bad.docx", MediaType: extract.MediaTypeDocx, Bytes: []byte("not a zip")},
		textFile("good.txt", "still here"),
	}
	_, docs, err := d.Run(context.Background(), files, models.TaskRequest{Kind: models.TaskSummarize})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, models.StatusFailed, docs[0].Status)
	require.Equal(t, models.StatusOk, docs[1].Status)
	require.Contains(t, llm.lastPrompt, "still here")
	require.Contains(t, llm.lastPrompt, "extraction failed")
}

func TestRunUpstreamFailureBecomesResult(t *testing.T) {
	llm := &fakeLLM{err: errors.New("upstream exploded")}
	d := NewDispatcher(llm)

	res, _, err := d.Run(context.Background(), []models.UploadedFile{textFile("a.txt", "body")}, models.TaskRequest{Kind: models.TaskSummarize})
	require.NoError(t, err)
	require.Contains(t, res.Text, "LLM request failed")
	require.Contains(t, res.Text, "upstream exploded")
}

func TestRunUnknownKindIsError(t *testing.T) {
	llm := &fakeLLM{}
	d := NewDispatcher(llm)

	_, _, err := d.Run(context.Background(), []models.UploadedFile{textFile("a.txt", "body")}, models.TaskRequest{Kind: models.TaskKind("translate")})
	require.ErrorIs(t, err, ErrInvalidRequest)
	require.Zero(t, llm.calls)
}
