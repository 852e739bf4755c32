package providers

import "strings"

// ErrorType coarsely classifies an upstream generation failure. The
// dispatcher folds failures into the task result, so classification only
// feeds the log line.
type ErrorType string

const (
	ErrorQuota     ErrorType = "quota"
	ErrorRate      ErrorType = "rate"
	ErrorContext   ErrorType = "context"
	ErrorTransient ErrorType = "transient"
	ErrorPermanent ErrorType = "permanent"
)

// ClassifyError buckets the error strings the Groq, OpenAI and Ollama
// backends return. Empty completions and connection failures count as
// transient; anything unrecognized is permanent.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	e := strings.ToLower(err.Error())
	switch {
	case strings.Contains(e, "insufficient_quota"), strings.Contains(e, "quota"), strings.Contains(e, "billing"):
		return ErrorQuota
	case strings.Contains(e, "error 429"), strings.Contains(e, "rate limit"), strings.Contains(e, "rate_limit"):
		return ErrorRate
	case strings.Contains(e, "context length"), strings.Contains(e, "context_length"), strings.Contains(e, "too long"):
		return ErrorContext
	case strings.Contains(e, "timeout"), strings.Contains(e, "connection refused"),
		strings.Contains(e, "unavailable"), strings.Contains(e, "error 502"), strings.Contains(e, "error 503"),
		strings.Contains(e, "empty choices"), strings.Contains(e, "empty response"):
		return ErrorTransient
	default:
		return ErrorPermanent
	}
}
