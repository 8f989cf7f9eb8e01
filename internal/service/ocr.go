package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
)

const ocrSpaceURL = "https://api.ocr.space/parse/image"

// OCRSpaceService extracts text from images through the ocr.space parse API.
type OCRSpaceService struct {
	apiKey     string
	httpClient *http.Client
	url        string
}

func NewOCRSpaceService(apiKey string) *OCRSpaceService {
	return &OCRSpaceService{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		url:        ocrSpaceURL,
	}
}

func (s *OCRSpaceService) Configured() bool { return s.apiKey != "" }

type ocrParseResult struct {
	ParsedText        string `json:"ParsedText"`
	ErrorMessage      string `json:"ErrorMessage"`
	FileParseExitCode int    `json:"FileParseExitCode"`
}

type ocrResponse struct {
	ParsedResults         []ocrParseResult `json:"ParsedResults"`
	OCRExitCode           int              `json:"OCRExitCode"`
	IsErroredOnProcessing bool             `json:"IsErroredOnProcessing"`
	// The API reports this field as either a string or a list of strings.
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

func (s *OCRSpaceService) ExtractText(ctx context.Context, image []byte, language string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ocr: %w", domain.ErrNotConfigured)
	}
	if language == "" {
		language = "eng"
	}

	form := url.Values{}
	form.Set("apikey", s.apiKey)
	form.Set("language", language)
	form.Set("isOverlayRequired", "false")
	form.Set("OCREngine", "2")
	form.Set("base64Image", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(image))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("ocr: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr: %w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPStatus("ocr", resp.StatusCode, "")
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("ocr: %w: %v", domain.ErrMalformedResponse, err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr: %w: %s", domain.ErrBackendRejected, ocrErrorText(parsed.ErrorMessage))
	}
	if len(parsed.ParsedResults) == 0 {
		return "", fmt.Errorf("ocr: %w: no parse results", domain.ErrMalformedResponse)
	}

	var out strings.Builder
	for _, result := range parsed.ParsedResults {
		out.WriteString(result.ParsedText)
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", fmt.Errorf("ocr: %w", domain.ErrNoTextFound)
	}
	return text, nil
}

func ocrErrorText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "processing failed"
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.Join(many, "; ")
	}
	return string(raw)
}
