package service

import (
	"fmt"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/translate"
)

// TranslationBackend is the full surface the chat pipeline needs from an
// LLM provider.
type TranslationBackend interface {
	translate.Translator
	translate.Simplifier
}

// NewTranslationBackend picks the provider named by the configuration.
// Clients construct even without credentials; the first call reports the
// missing key instead.
func NewTranslationBackend(cfg *config.Config) (TranslationBackend, error) {
	switch cfg.TranslationProvider {
	case "", "groq":
		return NewGroqService(cfg.GroqAPIKey, cfg.GroqModel), nil
	case "anthropic":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown TRANSLATION_PROVIDER %q (supported: groq, anthropic)", cfg.TranslationProvider)
	}
}
