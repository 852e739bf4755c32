// Package task is the orchestration core: it extracts an upload batch in
// order, aggregates the corpus, builds the task prompt and invokes the LLM
// provider, folding every upstream fault into an ordinary result.
package task

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"docflow/internal/extract"
	"docflow/internal/models"
	"docflow/internal/providers"
)

// NoContentMessage is returned when the aggregated corpus is empty or
// all-whitespace; the LLM is never invoked for such a batch.
const NoContentMessage = "No content to process."

type Dispatcher struct {
	llm providers.LLMProvider
}

// NewDispatcher wires the dispatcher to an injected LLM provider, so tests
// can substitute a fake.
func NewDispatcher(llm providers.LLMProvider) *Dispatcher {
	return &Dispatcher{llm: llm}
}

// Run processes one upload batch start to finish. The returned documents
// carry per-file extraction metadata for observability. The only non-nil
// error is ErrInvalidRequest, raised before any network call; provider
// failures become a readable TaskResult, never an escaping fault.
func (d *Dispatcher) Run(ctx context.Context, files []models.UploadedFile, req models.TaskRequest) (models.TaskResult, []models.ExtractedDocument, error) {
	docs := make([]models.ExtractedDocument, 0, len(files))
	for _, f := range files {
		doc := extract.Extract(f)
		if doc.Status != models.StatusOk {
			log.Printf("extract %s: status=%s reason=%q", doc.Filename, doc.Status, doc.FailReason)
		}
		docs = append(docs, doc)
	}
	corpus := Aggregate(docs)

	// Validate before touching the network.
	if req.Kind == models.TaskAnswerQuestion && strings.TrimSpace(req.Question) == "" {
		return models.TaskResult{}, docs, fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}
	if _, err := ParseKind(string(req.Kind)); err != nil {
		return models.TaskResult{}, docs, err
	}

	if strings.TrimSpace(corpus) == "" {
		return newResult(req.Kind, NoContentMessage), docs, nil
	}
	if req.Kind == models.TaskCombine {
		return newResult(req.Kind, corpus), docs, nil
	}

	prompt, err := BuildPrompt(req.Kind, corpus, req.Question)
	if err != nil {
		return models.TaskResult{}, docs, err
	}
	resp, info, err := d.llm.Generate(ctx, providers.GenerateRequest{
		Operation: string(req.Kind),
		Prompt:    prompt,
	})
	if err != nil {
		log.Printf("llm generate failed: provider=%s model=%s class=%s err=%v",
			info.Name, info.Model, providers.ClassifyError(err), err)
		return newResult(req.Kind, fmt.Sprintf("LLM request failed: %v", err)), docs, nil
	}
	return newResult(req.Kind, resp.Text), docs, nil
}

func newResult(kind models.TaskKind, text string) models.TaskResult {
	return models.TaskResult{
		ResultID:    uuid.NewString(),
		Kind:        kind,
		Text:        text,
		GeneratedAt: time.Now().UTC(),
	}
}
