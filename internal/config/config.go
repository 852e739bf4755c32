package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIAddr      string
	LLMProviders string
	GroqModel    string
	MaxUploadMB  int64
}

func Load() Config {
	return Config{
		APIAddr:      getenv("DOCFLOW_API_ADDR", ":8080"),
		LLMProviders: getenv("DOCFLOW_LLM_PROVIDERS", "groq"),
		GroqModel:    getenv("DOCFLOW_GROQ_MODEL", "llama-3.1-70b-versatile"),
		MaxUploadMB:  getenvInt64("DOCFLOW_MAX_UPLOAD_MB", 64),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt64(k string, fallback int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
