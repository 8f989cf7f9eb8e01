package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
)

// WebpageService fetches a page and reduces it to readable text: the title,
// headings, paragraphs, and list items, whitespace-normalized and capped.
type WebpageService struct {
	httpClient *http.Client
}

func NewWebpageService() *WebpageService {
	return &WebpageService{
		httpClient: &http.Client{Timeout: config.DownloadTimeout},
	}
}

func (s *WebpageService) Extract(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("webpage: not a fetchable url: %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("webpage: create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webpage: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPStatus("webpage", resp.StatusCode, "")
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, config.PageFetchLimit))
	if err != nil {
		return "", fmt.Errorf("webpage: parse html: %w", err)
	}
	text := readableText(doc)
	if text == "" {
		return "", fmt.Errorf("webpage: no readable text at %s", u.Host)
	}
	return text, nil
}

func readableText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	var parts []string
	appendPart := func(text string) {
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			parts = append(parts, text)
		}
	}

	appendPart(doc.Find("title").First().Text())
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		appendPart(sel.Text())
	})

	text := strings.Join(parts, "\n")
	if runes := []rune(text); len(runes) > config.PageExtractLimit {
		text = string(runes[:config.PageExtractLimit]) + "..."
	}
	return text
}
