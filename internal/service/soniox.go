package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
)

const sonioxWebSocketURL = "wss://stt-rt.soniox.com/transcribe-websocket"

// SonioxService transcribes one recording over the realtime websocket API.
// The exchange is: a JSON config frame, the audio as binary frames, an
// empty text frame to end the stream, then token responses until the server
// reports finished.
type SonioxService struct {
	apiKey string
	model  string
	url    string
}

func NewSonioxService(apiKey, model string) *SonioxService {
	return &SonioxService{
		apiKey: apiKey,
		model:  model,
		url:    sonioxWebSocketURL,
	}
}

func (s *SonioxService) Configured() bool { return s.apiKey != "" }

type sonioxRequest struct {
	APIKey                       string   `json:"api_key"`
	Model                        string   `json:"model"`
	AudioFormat                  string   `json:"audio_format,omitempty"`
	LanguageHints                []string `json:"language_hints,omitempty"`
	EnableLanguageIdentification bool     `json:"enable_language_identification,omitempty"`
}

type sonioxToken struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	IsFinal    bool    `json:"is_final"`
	Language   string  `json:"language,omitempty"`
}

type sonioxResponse struct {
	Tokens       []sonioxToken `json:"tokens"`
	Finished     bool          `json:"finished,omitempty"`
	ErrorCode    *int          `json:"error_code,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

func (s *SonioxService) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("soniox: %w", domain.ErrNotConfigured)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 15 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("soniox: %w: dial: %v", domain.ErrBackendUnavailable, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	req := sonioxRequest{
		APIKey:                       s.apiKey,
		Model:                        s.model,
		AudioFormat:                  "auto",
		EnableLanguageIdentification: true,
	}
	if hint := shortLanguageCode(language); hint != "" {
		req.LanguageHints = []string{hint}
	}
	configFrame, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("soniox: marshal config: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, configFrame); err != nil {
		return "", fmt.Errorf("soniox: %w: send config: %v", domain.ErrBackendUnavailable, err)
	}

	for off := 0; off < len(audio); off += config.SonioxChunkSize {
		end := off + config.SonioxChunkSize
		if end > len(audio) {
			end = len(audio)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, audio[off:end]); err != nil {
			return "", fmt.Errorf("soniox: %w: send audio: %v", domain.ErrBackendUnavailable, err)
		}
	}

	// Empty text frame tells the server the audio is complete.
	if err := conn.WriteMessage(websocket.TextMessage, []byte{}); err != nil {
		return "", fmt.Errorf("soniox: %w: finish stream: %v", domain.ErrBackendUnavailable, err)
	}

	var out strings.Builder
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("soniox: %w: read: %v", domain.ErrBackendUnavailable, err)
		}
		var resp sonioxResponse
		if err := json.Unmarshal(message, &resp); err != nil {
			return "", fmt.Errorf("soniox: %w: %v", domain.ErrMalformedResponse, err)
		}
		if resp.ErrorCode != nil {
			return "", classifyHTTPStatus("soniox", *resp.ErrorCode, resp.ErrorMessage)
		}
		for _, token := range resp.Tokens {
			if token.IsFinal {
				out.WriteString(token.Text)
			}
		}
		if resp.Finished {
			break
		}
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("soniox: %w", domain.ErrNoSpeech)
	}
	return text, nil
}
