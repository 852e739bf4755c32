package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"docflow/internal/config"
	"docflow/internal/docgen"
	"docflow/internal/models"
	"docflow/internal/providers"
	"docflow/internal/task"
)

type Server struct {
	cfg        config.Config
	providers  *providers.Manager
	dispatcher *task.Dispatcher
}

func NewServer(cfg config.Config, pm *providers.Manager) *Server {
	return &Server{
		cfg:        cfg,
		providers:  pm,
		dispatcher: task.NewDispatcher(pm.ActiveLLMProvider()),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/process", s.handleProcess)
	mux.HandleFunc("/download", s.handleDownload)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "provider": s.providers.ActiveRef().Name})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)

	files, form, err := readMultipart(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	kind, err := task.ParseKind(form["task"])
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	req := models.TaskRequest{Kind: kind, Question: form["question"]}

	if len(files) == 0 {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no files provided"))
		return
	}

	result, docs, err := s.dispatcher.Run(r.Context(), files, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, task.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		writeErr(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result, "documents": docs})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Text   string `json:"text"`
		Title  string `json:"title"`
		Format string `json:"format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("text is required"))
		return
	}
	format := docgen.Format(strings.ToLower(strings.TrimSpace(req.Format)))
	if format == "" {
		format = docgen.FormatPDF
	}

	file, err := docgen.Build(format, req.Title, time.Now().UTC(), req.Text)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Bytes)
}

// readMultipart consumes the request body part by part so that file parts
// keep their wire order. Parts without a filename are collected as form
// values; any part with a filename is treated as an upload regardless of
// its field name.
func readMultipart(r *http.Request) ([]models.UploadedFile, map[string]string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, nil, fmt.Errorf("parse multipart: %w", err)
	}

	var files []models.UploadedFile
	form := map[string]string{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read multipart: %w", err)
		}
		b, err := io.ReadAll(part)
		if err != nil {
			return nil, nil, fmt.Errorf("read upload %s: %w", part.FormName(), err)
		}
		if part.FileName() == "" {
			form[part.FormName()] = string(b)
			continue
		}
		files = append(files, models.UploadedFile{
			Filename:  filepath.Base(part.FileName()),
			MediaType: declaredMediaType(part.Header.Get("Content-Type"), part.FileName()),
			Bytes:     b,
		})
	}
	return files, form, nil
}

func declaredMediaType(ct, filename string) string {
	if mt, _, err := mime.ParseMediaType(ct); err == nil && mt != "" {
		return mt
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		if mt, _, err := mime.ParseMediaType(byExt); err == nil {
			return mt
		}
	}
	return "application/octet-stream"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "DF-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		return apiError{
			Code:    "DF-API-5000",
			Message: "Internal server error. Please retry or check service logs.",
		}
	case status == http.StatusBadRequest:
		code = "DF-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusMethodNotAllowed:
		code = "DF-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		switch {
		case strings.Contains(raw, "question is required"):
			msg = "A question is required for the ask task."
		case strings.Contains(raw, "unknown task"):
			msg = "Task must be one of summarize, ask, combine."
		case strings.Contains(raw, "no files provided"):
			msg = "No files were provided."
		case strings.Contains(raw, "request body too large"):
			msg = "Upload exceeds the size limit."
		case strings.Contains(raw, "text is required"):
			msg = "Result text is required for download."
		case strings.Contains(raw, "unsupported download format"):
			msg = "Download format must be pdf or docx."
		case strings.Contains(raw, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
