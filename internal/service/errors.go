package service

import (
	"errors"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/polyglotta/polyglotta/internal/domain"
)

// classifyHTTPStatus folds a provider status code into the backend error
// taxonomy: 4xx means the request was rejected, everything else means the
// backend is unavailable.
func classifyHTTPStatus(backend string, status int, detail string) error {
	kind := domain.ErrBackendUnavailable
	if status >= 400 && status < 500 {
		kind = domain.ErrBackendRejected
	}
	if detail != "" {
		return fmt.Errorf("%s: %w: status %d: %s", backend, kind, status, detail)
	}
	return fmt.Errorf("%s: %w: status %d", backend, kind, status)
}

func classifyOpenAIError(backend string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyHTTPStatus(backend, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyHTTPStatus(backend, reqErr.HTTPStatusCode, "")
	}
	return fmt.Errorf("%s: %w: %v", backend, domain.ErrBackendUnavailable, err)
}
