package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/polyglotta/polyglotta/internal/domain"
)

func TestNormalizeTTSLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"", "en"},
		{"  ", "en"},
		{"ES", "es"},
		{"zh-cn", "zh-cn"},
		{"zh-tw", "zh-tw"},
		{"pt-br", "pt"},
		{"az", "tr"},
		{"fr-CA", "fr"},
		{"xx", "en"},
		{"haw", "en"},
	}
	for _, tt := range tests {
		if got := normalizeTTSLanguage(tt.in); got != tt.want {
			t.Errorf("normalizeTTSLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAccentTLDs(t *testing.T) {
	for _, accent := range domain.Accents {
		if _, ok := accentTLDs[accent]; !ok {
			t.Errorf("accent %q has no TTS domain", accent)
		}
	}
	if accentTLDs[domain.AccentBritish] != "co.uk" {
		t.Errorf("british accent maps to %q", accentTLDs[domain.AccentBritish])
	}
	if accentTLDs[domain.AccentAmerican] != "com" {
		t.Errorf("american accent maps to %q", accentTLDs[domain.AccentAmerican])
	}
	if accentTLDs[domain.AccentNeutral] != "com.au" {
		t.Errorf("neutral accent maps to %q", accentTLDs[domain.AccentNeutral])
	}
}

func TestSplitTTSTextShort(t *testing.T) {
	chunks := splitTTSText("hello world", 200)
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTTSTextLong(t *testing.T) {
	words := make([]string, 100)
	for i := range words {
		words[i] = "palabra"
	}
	text := strings.Join(words, " ")

	chunks := splitTTSText(text, 50)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	var rejoined []string
	for _, chunk := range chunks {
		if n := len([]rune(chunk)); n > 50 {
			t.Errorf("chunk of %d runes exceeds limit: %q", n, chunk)
		}
		rejoined = append(rejoined, strings.Fields(chunk)...)
	}
	if len(rejoined) != len(words) {
		t.Errorf("words lost in split: %d != %d", len(rejoined), len(words))
	}
}

func TestSplitTTSTextOverlongWord(t *testing.T) {
	word := strings.Repeat("a", 120)
	chunks := splitTTSText(word, 50)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if got := strings.Join(chunks, ""); got != word {
		t.Errorf("hard cut lost content: %q", got)
	}
}

func TestTranscribeFallsThroughToWhisper(t *testing.T) {
	// Neither engine has credentials, so the chain must end with the
	// whisper configuration error without touching the network.
	svc := NewSpeechService(
		NewSonioxService("", "stt-rt-preview"),
		NewGroqService("", "llama-3.3-70b-versatile"),
		slog.Default(),
	)
	_, err := svc.Transcribe(context.Background(), []byte("audio"), "en")
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected not-configured error, got %v", err)
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	svc := NewSpeechService(
		NewSonioxService("", ""),
		NewGroqService("", ""),
		slog.Default(),
	)
	_, err := svc.Synthesize(context.Background(), "   ", "en", domain.AccentNeutral)
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Fatalf("expected empty input error, got %v", err)
	}
}
