package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
)

// AnthropicService is the alternate translation backend, speaking the same
// prompt contract as Groq over the Anthropic Messages API.
type AnthropicService struct {
	client *anthropic.Client
	model  string
	apiKey string
}

func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		client: anthropic.NewClient(apiKey),
		model:  model,
		apiKey: apiKey,
	}
}

func (s *AnthropicService) ready() error {
	if s.apiKey == "" {
		return fmt.Errorf("anthropic: %w", domain.ErrNotConfigured)
	}
	return nil
}

func (s *AnthropicService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	sourceName := domain.LanguageName(sourceLang)
	targetName := domain.LanguageName(targetLang)
	userPrompt := fmt.Sprintf(
		"Source language: %s (%s)\nTarget language: %s (%s)\n\nText to translate:\n%s\n",
		sourceName, sourceLang, targetName, targetLang, text,
	)
	return s.message(ctx, translateSystemPrompt, userPrompt, config.TranslateTemperature, config.TranslateMaxTokens)
}

func (s *AnthropicService) Simplify(ctx context.Context, text, targetLang string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	languageName, ok := domain.Languages[targetLang]
	if !ok {
		languageName = "English"
	}
	userPrompt := fmt.Sprintf(
		"Target language: %s (%s)\n\nText to simplify:\n%s\n",
		languageName, targetLang, text,
	)
	return s.message(ctx, simplifySystemPrompt, userPrompt, config.SimplifyTemperature, config.SimplifyMaxTokens)
}

func (s *AnthropicService) message(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := s.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(s.model),
		MultiSystem: []anthropic.MessageSystemPart{
			{Type: "text", Text: system},
		},
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(user)},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			out.WriteString(*block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("anthropic: %w: empty completion", domain.ErrMalformedResponse)
	}
	return text, nil
}

func classifyAnthropicError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch string(apiErr.Type) {
		case "invalid_request_error", "authentication_error", "permission_error",
			"not_found_error", "rate_limit_error":
			return fmt.Errorf("anthropic: %w: %s", domain.ErrBackendRejected, apiErr.Message)
		default:
			return fmt.Errorf("anthropic: %w: %s", domain.ErrBackendUnavailable, apiErr.Message)
		}
	}
	return fmt.Errorf("anthropic: %w: %v", domain.ErrBackendUnavailable, err)
}
