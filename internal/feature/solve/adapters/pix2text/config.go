// Package pix2text provides a formula recognizer backed by a Pix2Text server (`p2t serve`).
package pix2text

import (
	"os"
	"time"
)

const (
	defaultBaseURL = "http://127.0.0.1:8503"
	defaultTimeout = 60 * time.Second
)

// Config holds configuration for the Pix2Text client.
type Config struct {
	BaseURL string        // Base URL of the Pix2Text server (e.g., "http://127.0.0.1:8503")
	Timeout time.Duration // HTTP request timeout; model inference on CPU can be slow
}

// LoadConfig loads Pix2Text configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv("PIX2TEXT_URL"),
		Timeout: defaultTimeout,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v := os.Getenv("PIX2TEXT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
