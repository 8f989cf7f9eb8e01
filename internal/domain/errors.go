package domain

import "errors"

// Backend failures are wrapped around one of these sentinels so callers can
// branch with errors.Is instead of matching message text.
var (
	ErrEmptyInput         = errors.New("empty text provided")
	ErrNotConfigured      = errors.New("api key not configured")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendRejected    = errors.New("request rejected by backend")
	ErrMalformedResponse  = errors.New("malformed backend response")
	ErrMalformedSnapshot  = errors.New("malformed snapshot document")
	ErrNoTextFound        = errors.New("no text found in image")
	ErrNoSpeech           = errors.New("could not understand audio")
	ErrBotBlocked         = errors.New("bot blocked by user")
)
