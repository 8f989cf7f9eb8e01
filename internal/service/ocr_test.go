package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/polyglotta/polyglotta/internal/domain"
)

func newOCRServer(t *testing.T, status int, body string) *OCRSpaceService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostFormValue("apikey") == "" {
			t.Error("request missing apikey")
		}
		if !strings.HasPrefix(r.PostFormValue("base64Image"), "data:image/jpeg;base64,") {
			t.Error("image not sent as base64 data uri")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	svc := NewOCRSpaceService("test-key")
	svc.url = server.URL
	return svc
}

func TestOCRExtractText(t *testing.T) {
	svc := newOCRServer(t, http.StatusOK, `{
		"ParsedResults": [{"ParsedText": "Bonjour le monde\r\n", "FileParseExitCode": 1}],
		"OCRExitCode": 1,
		"IsErroredOnProcessing": false
	}`)

	text, err := svc.ExtractText(context.Background(), []byte("fake image"), "fre")
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "Bonjour le monde" {
		t.Errorf("text = %q", text)
	}
}

func TestOCRProcessingError(t *testing.T) {
	svc := newOCRServer(t, http.StatusOK, `{
		"ParsedResults": [],
		"OCRExitCode": 99,
		"IsErroredOnProcessing": true,
		"ErrorMessage": ["Unable to recognize the file type", "E216"]
	}`)

	_, err := svc.ExtractText(context.Background(), []byte("fake image"), "")
	if !errors.Is(err, domain.ErrBackendRejected) {
		t.Fatalf("expected backend rejection, got %v", err)
	}
	if !strings.Contains(err.Error(), "Unable to recognize") {
		t.Errorf("error should carry server message: %v", err)
	}
}

func TestOCRNoTextFound(t *testing.T) {
	svc := newOCRServer(t, http.StatusOK, `{
		"ParsedResults": [{"ParsedText": "   ", "FileParseExitCode": 1}],
		"OCRExitCode": 1,
		"IsErroredOnProcessing": false
	}`)

	_, err := svc.ExtractText(context.Background(), []byte("fake image"), "")
	if !errors.Is(err, domain.ErrNoTextFound) {
		t.Fatalf("expected no-text error, got %v", err)
	}
}

func TestOCRServerFailure(t *testing.T) {
	svc := newOCRServer(t, http.StatusInternalServerError, "oops")

	_, err := svc.ExtractText(context.Background(), []byte("fake image"), "")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
}

func TestOCRUnconfigured(t *testing.T) {
	svc := NewOCRSpaceService("")
	_, err := svc.ExtractText(context.Background(), []byte("fake image"), "")
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected not-configured error, got %v", err)
	}
}

func TestOCRErrorTextShapes(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"single message"`, "single message"},
		{`["first", "second"]`, "first; second"},
		{``, "processing failed"},
	}
	for _, tt := range tests {
		if got := ocrErrorText([]byte(tt.raw)); got != tt.want {
			t.Errorf("ocrErrorText(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
