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

func TestWebpageExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>
			<head>
				<title>  News of the Day  </title>
				<style>body { color: red }</style>
				<script>alert("nope")</script>
			</head>
			<body>
				<h1>Top   Story</h1>
				<p>Something happened
				today.</p>
				<ul><li>First point</li><li></li></ul>
				<script>trackEverything()</script>
			</body>
		</html>`))
	}))
	defer server.Close()

	svc := NewWebpageService()
	text, err := svc.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := "News of the Day\nTop Story\nSomething happened today.\nFirst point"
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color") {
		t.Errorf("script/style leaked into text: %q", text)
	}
}

func TestWebpageExtractTruncates(t *testing.T) {
	long := strings.Repeat("<p>word word word word word</p>", 500)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + long + "</body></html>"))
	}))
	defer server.Close()

	svc := NewWebpageService()
	text, err := svc.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if n := len([]rune(text)); n > 4003 {
		t.Errorf("extracted text not capped: %d runes", n)
	}
	if !strings.HasSuffix(text, "...") {
		t.Error("truncated text should end with ellipsis")
	}
}

func TestWebpageExtractNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewWebpageService()
	_, err := svc.Extract(context.Background(), server.URL)
	if !errors.Is(err, domain.ErrBackendRejected) {
		t.Fatalf("expected rejection for 404, got %v", err)
	}
}

func TestWebpageExtractBadURL(t *testing.T) {
	svc := NewWebpageService()
	for _, raw := range []string{"", "not a url", "ftp://example.com/x", "https://"} {
		if _, err := svc.Extract(context.Background(), raw); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestWebpageExtractEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><div>only divs here</div></body></html>"))
	}))
	defer server.Close()

	svc := NewWebpageService()
	_, err := svc.Extract(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for page with no readable elements")
	}
}
