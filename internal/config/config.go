package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Core
	BotToken string `env:"BOT_TOKEN,required"`

	// Translation backend selection
	TranslationProvider string `env:"TRANSLATION_PROVIDER" envDefault:"groq"`

	// Groq (chat completions + whisper transcription)
	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`

	// Anthropic (alternate translation backend)
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`

	// Soniox realtime speech-to-text
	SonioxAPIKey string `env:"SONIOX_API_KEY"`
	SonioxModel  string `env:"SONIOX_MODEL" envDefault:"stt-rt-v4"`

	// OCR.space image text extraction
	OCRAPIKey string `env:"OCR_API_KEY"`

	// Session defaults
	DefaultTargetLanguage string `env:"DEFAULT_TARGET_LANGUAGE" envDefault:"en"`

	// Bot behavior
	DropPendingUpdates bool `env:"BOT_DROP_PENDING_UPDATES" envDefault:"false"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// WarnMissingCredentials logs one upfront warning per absent backend key.
// Missing keys are not fatal; the affected backend fails on first use.
func (c *Config) WarnMissingCredentials() {
	if c.GroqAPIKey == "" {
		slog.Warn("GROQ_API_KEY not set; translation, simplification and whisper fallback will fail")
	}
	if c.TranslationProvider == "anthropic" && c.AnthropicAPIKey == "" {
		slog.Warn("ANTHROPIC_API_KEY not set but TRANSLATION_PROVIDER=anthropic; translation will fail")
	}
	if c.SonioxAPIKey == "" {
		slog.Warn("SONIOX_API_KEY not set; voice messages fall back to whisper transcription")
	}
	if c.OCRAPIKey == "" {
		slog.Warn("OCR_API_KEY not set; image translation will fail")
	}
}
