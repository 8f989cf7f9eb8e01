package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/media"
)

// Accent picks the Google Translate TTS domain, which in turn selects the
// voice. Unknown accents read with the neutral voice.
var accentTLDs = map[domain.Accent]string{
	domain.AccentBritish:  "co.uk",
	domain.AccentAmerican: "com",
	domain.AccentNeutral:  "com.au",
}

// Languages the translate_tts endpoint can speak, lowercased.
var ttsLanguages = map[string]bool{
	"af": true, "am": true, "ar": true, "bg": true, "bn": true, "bs": true,
	"ca": true, "cs": true, "cy": true, "da": true, "de": true, "el": true,
	"en": true, "eo": true, "es": true, "et": true, "eu": true, "fi": true,
	"fr": true, "gl": true, "gu": true, "ha": true, "hi": true, "hr": true,
	"hu": true, "id": true, "is": true, "it": true, "iw": true, "ja": true,
	"jw": true, "km": true, "kn": true, "ko": true, "la": true, "lt": true,
	"lv": true, "ml": true, "mr": true, "ms": true, "my": true, "ne": true,
	"nl": true, "no": true, "pa": true, "pl": true, "pt": true, "ro": true,
	"ru": true, "si": true, "sk": true, "sq": true, "sr": true, "su": true,
	"sv": true, "sw": true, "ta": true, "te": true, "th": true, "tl": true,
	"tr": true, "uk": true, "ur": true, "vi": true, "zh-cn": true, "zh-tw": true,
}

// Close-enough substitutes for languages the endpoint cannot speak directly.
var ttsAliases = map[string]string{
	"pt-br": "pt",
	"az":    "tr",
}

// SpeechService routes speech work. Transcription tries the realtime soniox
// engine first and falls back to whisper; synthesis goes through the Google
// Translate TTS endpoint on an accent-selecting domain.
type SpeechService struct {
	soniox     *SonioxService
	groq       *GroqService
	httpClient *http.Client
	logger     *slog.Logger
}

func NewSpeechService(soniox *SonioxService, groq *GroqService, logger *slog.Logger) *SpeechService {
	return &SpeechService{
		soniox:     soniox,
		groq:       groq,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		logger:     logger,
	}
}

func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, languageHint string) (media.Transcript, error) {
	if s.soniox.Configured() {
		text, err := s.soniox.Transcribe(ctx, audio, languageHint)
		if err == nil {
			return media.Transcript{Text: text, Method: "soniox"}, nil
		}
		// Silence is silence on any engine; retrying with whisper only
		// burns quota.
		if errors.Is(err, domain.ErrNoSpeech) {
			return media.Transcript{}, err
		}
		s.logger.Warn("soniox transcription failed, falling back to whisper", "error", err)
	}

	text, err := s.groq.Transcribe(ctx, audio, languageHint)
	if err != nil {
		return media.Transcript{}, err
	}
	return media.Transcript{Text: text, Method: "whisper"}, nil
}

func (s *SpeechService) Synthesize(ctx context.Context, text, language string, accent domain.Accent) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("tts: %w", domain.ErrEmptyInput)
	}

	tld, ok := accentTLDs[accent]
	if !ok {
		tld = accentTLDs[domain.AccentNeutral]
	}
	lang := normalizeTTSLanguage(language)

	chunks := splitTTSText(text, config.TTSMaxChunkLen)
	var audio []byte
	for i, chunk := range chunks {
		part, err := s.fetchTTSChunk(ctx, tld, lang, chunk, i, len(chunks))
		if err != nil {
			return nil, err
		}
		audio = append(audio, part...)
	}
	return audio, nil
}

func (s *SpeechService) fetchTTSChunk(ctx context.Context, tld, lang, chunk string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", lang)
	q.Set("total", fmt.Sprint(total))
	q.Set("idx", fmt.Sprint(idx))
	q.Set("textlen", fmt.Sprint(len([]rune(chunk))))
	endpoint := fmt.Sprintf("https://translate.google.%s/translate_tts?%s", tld, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyHTTPStatus("tts", resp.StatusCode, "")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tts: read response: %w", err)
	}
	return body, nil
}

// normalizeTTSLanguage maps a conversation language onto one the endpoint
// can speak, defaulting to English.
func normalizeTTSLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return "en"
	}
	if ttsLanguages[lang] {
		return lang
	}
	if alias, ok := ttsAliases[lang]; ok {
		return alias
	}
	if i := strings.IndexByte(lang, '-'); i > 0 {
		if base := lang[:i]; ttsLanguages[base] {
			return base
		}
	}
	return "en"
}

// splitTTSText breaks text into chunks of at most maxRunes, preferring
// whitespace boundaries. A single overlong word is cut mid-word.
func splitTTSText(text string, maxRunes int) []string {
	words := strings.Fields(text)
	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
			currentLen = 0
		}
	}

	for _, word := range words {
		runes := []rune(word)
		for len(runes) > maxRunes {
			flush()
			chunks = append(chunks, string(runes[:maxRunes]))
			runes = runes[maxRunes:]
		}
		wordLen := len(runes)
		if wordLen == 0 {
			continue
		}
		// +1 for the joining space.
		if currentLen > 0 && currentLen+1+wordLen > maxRunes {
			flush()
		}
		if currentLen > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += wordLen
	}
	flush()

	if len(chunks) == 0 {
		chunks = append(chunks, text)
	}
	return chunks
}
