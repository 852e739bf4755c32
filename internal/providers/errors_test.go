package providers

import (
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := map[string]ErrorType{
		"openai generate error 400: insufficient_quota":                ErrorQuota,
		"groq generate error 429: rate_limit_exceeded":                 ErrorRate,
		"groq generate error 400: prompt exceeds context length":       ErrorContext,
		"ollama generate request failed: dial tcp: connection refused": ErrorTransient,
		"groq returned empty choices":                                  ErrorTransient,
		"ollama returned empty response":                               ErrorTransient,
		"groq generate error 503: service unavailable":                 ErrorTransient,
		"decode groq response: unexpected end of JSON input":           ErrorPermanent,
	}
	for msg, want := range cases {
		if got := ClassifyError(errors.New(msg)); got != want {
			t.Fatalf("classify %q: got %s want %s", msg, got, want)
		}
	}
}

func TestClassifyErrorNil(t *testing.T) {
	if got := ClassifyError(nil); got != "" {
		t.Fatalf("expected empty type for nil error, got %s", got)
	}
}
