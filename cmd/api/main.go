package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"docflow/internal/api"
	"docflow/internal/config"
	"docflow/internal/providers"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	pm, err := providers.NewManager(cfg)
	if err != nil {
		log.Fatal(err)
	}
	// A missing provider credential is fatal here, never a per-request error.
	if err := pm.CheckCredentials(); err != nil {
		log.Fatal(err)
	}
	h := api.NewServer(cfg, pm)
	log.Printf("docflow api listening on %s llm_providers=%q model=%q", cfg.APIAddr, cfg.LLMProviders, cfg.GroqModel)
	if err := http.ListenAndServe(cfg.APIAddr, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
