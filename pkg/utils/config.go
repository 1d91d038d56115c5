package utils

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv pulls variables from a .env file in the working directory.
// godotenv.Load does NOT overwrite existing env vars, so the real
// environment always wins. A missing file is fine.
func LoadDotenv() {
	_ = godotenv.Load()
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// LoadGeminiConfig reads the Gemini settings from the environment. Model
// and base URL fall back to the client defaults when empty. A missing API
// key is warned about here, once; every call through the client will then
// fail until it is set.
func LoadGeminiConfig() GeminiConfig {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		log.Println("Warning: GEMINI_API_KEY environment variable not set. API calls will fail.")
	}
	return GeminiConfig{
		APIKey:  key,
		Model:   os.Getenv("GEMINI_MODEL"),
		BaseURL: os.Getenv("GEMINI_BASE_URL"),
	}
}

// SetupLogFile routes the standard logger to both stdout and an append-only
// log file, and returns the file for the caller to close on shutdown.
func SetupLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}
