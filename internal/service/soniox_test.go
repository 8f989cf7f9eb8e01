package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/polyglotta/polyglotta/internal/domain"
)

// startSonioxServer runs a mock transcription endpoint: it reads the config
// frame, consumes binary audio until the empty text frame, then replies with
// the given response frames.
func startSonioxServer(t *testing.T, onConfig func(sonioxRequest), responses ...sonioxResponse) string {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		_, configFrame, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req sonioxRequest
		if err := json.Unmarshal(configFrame, &req); err != nil {
			t.Errorf("bad config frame: %v", err)
			return
		}
		if onConfig != nil {
			onConfig(req)
		}

		for {
			msgType, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType == websocket.TextMessage && len(msg) == 0 {
				break
			}
		}

		for _, resp := range responses {
			data, _ := json.Marshal(resp)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestSonioxTranscribe(t *testing.T) {
	var gotConfig sonioxRequest
	url := startSonioxServer(t,
		func(req sonioxRequest) { gotConfig = req },
		sonioxResponse{Tokens: []sonioxToken{
			{Text: "Hola", IsFinal: true},
			{Text: " mun", IsFinal: false},
		}},
		sonioxResponse{
			Tokens:   []sonioxToken{{Text: " mundo", IsFinal: true}},
			Finished: true,
		},
	)

	svc := NewSonioxService("test-key", "stt-rt-preview")
	svc.url = url

	text, err := svc.Transcribe(context.Background(), []byte("fake audio data"), "es")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "Hola mundo" {
		t.Errorf("expected final tokens only, got %q", text)
	}

	if gotConfig.APIKey != "test-key" {
		t.Errorf("config api key = %q", gotConfig.APIKey)
	}
	if gotConfig.Model != "stt-rt-preview" {
		t.Errorf("config model = %q", gotConfig.Model)
	}
	if len(gotConfig.LanguageHints) != 1 || gotConfig.LanguageHints[0] != "es" {
		t.Errorf("config language hints = %v", gotConfig.LanguageHints)
	}
	if !gotConfig.EnableLanguageIdentification {
		t.Error("language identification should be enabled")
	}
}

func TestSonioxTranscribeServerError(t *testing.T) {
	code := 401
	url := startSonioxServer(t, nil, sonioxResponse{
		ErrorCode:    &code,
		ErrorMessage: "unauthorized",
	})

	svc := NewSonioxService("bad-key", "stt-rt-preview")
	svc.url = url

	_, err := svc.Transcribe(context.Background(), []byte("audio"), "")
	if !errors.Is(err, domain.ErrBackendRejected) {
		t.Fatalf("expected backend rejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "unauthorized") {
		t.Errorf("error should carry the server message: %v", err)
	}
}

func TestSonioxTranscribeSilence(t *testing.T) {
	url := startSonioxServer(t, nil, sonioxResponse{Finished: true})

	svc := NewSonioxService("test-key", "stt-rt-preview")
	svc.url = url

	_, err := svc.Transcribe(context.Background(), []byte("audio"), "")
	if !errors.Is(err, domain.ErrNoSpeech) {
		t.Fatalf("expected no-speech error, got %v", err)
	}
}

func TestSonioxTranscribeUnconfigured(t *testing.T) {
	svc := NewSonioxService("", "stt-rt-preview")
	_, err := svc.Transcribe(context.Background(), []byte("audio"), "")
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected not-configured error, got %v", err)
	}
}

func TestSonioxHintStripsRegion(t *testing.T) {
	var gotConfig sonioxRequest
	url := startSonioxServer(t,
		func(req sonioxRequest) { gotConfig = req },
		sonioxResponse{
			Tokens:   []sonioxToken{{Text: "ok", IsFinal: true}},
			Finished: true,
		},
	)

	svc := NewSonioxService("test-key", "stt-rt-preview")
	svc.url = url

	if _, err := svc.Transcribe(context.Background(), []byte("audio"), "zh-cn"); err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if len(gotConfig.LanguageHints) != 1 || gotConfig.LanguageHints[0] != "zh" {
		t.Errorf("expected bare hint, got %v", gotConfig.LanguageHints)
	}
}
