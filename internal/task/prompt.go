package task

import (
	"errors"
	"fmt"
	"strings"

	"docflow/internal/models"
)

// ErrInvalidRequest marks request validation failures that must be reported
// to the caller before any network call is made.
var ErrInvalidRequest = errors.New("invalid task request")

// BuildPrompt produces the literal instruction text for the LLM. Combine
// never reaches this function: the dispatcher returns the corpus verbatim.
func BuildPrompt(kind models.TaskKind, corpus, question string) (string, error) {
	switch kind {
	case models.TaskSummarize:
		return "Summarize the following content concisely:\n\n" + corpus, nil
	case models.TaskAnswerQuestion:
		if strings.TrimSpace(question) == "" {
			return "", fmt.Errorf("%w: question is required", ErrInvalidRequest)
		}
		return "Answer based on the content provided:\n\nContent:\n" + corpus + "\n\nQuestion: " + question, nil
	default:
		return "", fmt.Errorf("no prompt for task kind %q", kind)
	}
}

// ParseKind maps a task selection string from the upload surface onto the
// closed set of task kinds.
func ParseKind(s string) (models.TaskKind, error) {
	switch models.TaskKind(strings.ToLower(strings.TrimSpace(s))) {
	case models.TaskSummarize:
		return models.TaskSummarize, nil
	case models.TaskAnswerQuestion:
		return models.TaskAnswerQuestion, nil
	case models.TaskCombine:
		return models.TaskCombine, nil
	default:
		return "", fmt.Errorf("%w: unknown task %q", ErrInvalidRequest, s)
	}
}
