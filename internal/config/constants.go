package config

import "time"

const (
	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Backend request timeouts
	RequestTimeout  = 90 * time.Second
	DownloadTimeout = 60 * time.Second

	// Chat model parameters
	TranslateTemperature = 0.3
	TranslateMaxTokens   = 2048
	SimplifyTemperature  = 0.5
	SimplifyMaxTokens    = 1000

	// Whisper transcription model served by Groq
	WhisperModel = "whisper-large-v3"

	// Realtime speech-to-text frame size
	SonioxChunkSize = 4096

	// Text-to-speech chunking (the endpoint caps each request)
	TTSMaxChunkLen = 200

	// Web page extraction limits
	PageFetchLimit   = 2 << 20
	PageExtractLimit = 4000

	// Settings pagination
	LanguagesPerPage = 18

	// Bookmark search
	SearchResultLimit = 5
)
