package models

import "time"

// TaskKind selects prompt construction and whether the LLM is invoked.
type TaskKind string

const (
	TaskSummarize      TaskKind = "summarize"
	TaskAnswerQuestion TaskKind = "ask"
	TaskCombine        TaskKind = "combine"
)

// ExtractionStatus is the per-file outcome of text extraction.
type ExtractionStatus string

const (
	StatusOk          ExtractionStatus = "ok"
	StatusUnsupported ExtractionStatus = "unsupported"
	StatusFailed      ExtractionStatus = "failed"
)

// UploadedFile is one file as received from the upload surface, immutable for
// the lifetime of a single processing request.
type UploadedFile struct {
	Filename  string `json:"filename"`
	MediaType string `json:"media_type"`
	Bytes     []byte `json:"-"`
}

// ExtractedDocument is the result of running one UploadedFile through the
// format extractor. Text is empty only when Status != StatusOk, unless the
// source itself was empty.
type ExtractedDocument struct {
	Filename   string           `json:"filename"`
	DocID      string           `json:"doc_id,omitempty"`
	ByteSize   int              `json:"byte_size"`
	Text       string           `json:"-"`
	Status     ExtractionStatus `json:"status"`
	FailReason string           `json:"fail_reason,omitempty"`
	Duration   time.Duration    `json:"-"`
	DurationMS int64            `json:"duration_ms"`
}

type TaskRequest struct {
	Kind     TaskKind `json:"kind"`
	Question string   `json:"question,omitempty"`
}

type TaskResult struct {
	ResultID    string    `json:"result_id"`
	Kind        TaskKind  `json:"kind"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}
