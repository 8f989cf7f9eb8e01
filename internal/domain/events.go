package domain

import (
	"time"
)

type AudioEventKind string

const (
	AudioEventSTT AudioEventKind = "stt"
	AudioEventTTS AudioEventKind = "tts"
)

// AudioEvent records one completed speech interaction kept outside the text
// chat: a transcribed voice message (kind=stt, Source names the engine that
// served it) or a synthesized read-aloud (kind=tts, Source names the
// trigger). Failed attempts are surfaced to the user, not logged.
type AudioEvent struct {
	Timestamp     time.Time
	Kind          AudioEventKind
	Source        string
	Transcript    string
	AssistantText string
	Meta          map[string]string
}

// ImageEvent records one OCR interaction.
type ImageEvent struct {
	Timestamp     time.Time
	Source        string
	ExtractedText string
	AssistantText string
	Error         string
}
