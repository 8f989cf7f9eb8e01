package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

const translateSystemPrompt = "You are a world-class translation engine. " +
	"Your job is to accurately translate text from a source language to a " +
	"target language while preserving meaning, tone, and formatting.\n" +
	"CRITICAL REQUIREMENTS:\n" +
	"- Respond with **ONLY** the translated text.\n" +
	"- Do NOT add explanations, notes, or quotes.\n" +
	"- Maintain markdown formatting when present.\n"

const simplifySystemPrompt = "You are a helpful assistant that simplifies complex text into " +
	"easy, beginner-friendly language.\n" +
	"Requirements:\n" +
	"- Keep the original meaning.\n" +
	"- Use simpler vocabulary and short sentences.\n" +
	"- Respond ONLY with the simplified text in the requested language.\n"

// GroqService talks to Groq's OpenAI-compatible API: chat completions for
// translation and simplification, the audio endpoint for whisper
// transcription. Construction never fails; calls without an API key return
// a configuration error.
type GroqService struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewGroqService(apiKey, model string) *GroqService {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	cfg.HTTPClient = &http.Client{Timeout: config.RequestTimeout}
	return &GroqService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		apiKey: apiKey,
	}
}

func (s *GroqService) ready() error {
	if s.apiKey == "" {
		return fmt.Errorf("groq: %w", domain.ErrNotConfigured)
	}
	return nil
}

func (s *GroqService) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	sourceName := domain.LanguageName(sourceLang)
	targetName := domain.LanguageName(targetLang)
	userPrompt := fmt.Sprintf(
		"Source language: %s (%s)\nTarget language: %s (%s)\n\nText to translate:\n%s\n",
		sourceName, sourceLang, targetName, targetLang, text,
	)
	return s.complete(ctx, translateSystemPrompt, userPrompt, config.TranslateTemperature, config.TranslateMaxTokens)
}

func (s *GroqService) Simplify(ctx context.Context, text, targetLang string) (string, error) {
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
	return s.complete(ctx, simplifySystemPrompt, userPrompt, config.SimplifyTemperature, config.SimplifyMaxTokens)
}

func (s *GroqService) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: &temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", classifyOpenAIError("groq", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq: %w: no choices returned", domain.ErrMalformedResponse)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("groq: %w: empty completion", domain.ErrMalformedResponse)
	}
	return out, nil
}

// Transcribe runs whisper on the recording. The SDK wants a file path, so
// the bytes are staged in a scratch file that is removed on every exit path.
func (s *GroqService) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "voice-*.ogg")
	if err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return "", fmt.Errorf("stage audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}

	req := openai.AudioRequest{
		Model:    config.WhisperModel,
		FilePath: tmpPath,
	}
	if lang := shortLanguageCode(language); lang != "" {
		req.Language = lang
	}

	resp, err := s.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", classifyOpenAIError("whisper", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("whisper: %w", domain.ErrNoSpeech)
	}
	return text, nil
}

// shortLanguageCode reduces a hint to the bare ISO 639-1 code the speech
// engines accept, or "" to let the model decide.
func shortLanguageCode(language string) string {
	if language == "" || language == "auto" {
		return ""
	}
	if i := strings.IndexByte(language, '-'); i > 0 {
		language = language[:i]
	}
	return language
}
