// Package media adapts voice recordings, photos and web pages into text
// turns for the translation pipeline. The adapters own the repeat-submission
// dedup and the audio/image event logs; the session only stores them.
package media

import (
	"crypto/sha256"
	"encoding/hex"
)

// Result reports what an adapter did with one media submission.
type Result struct {
	// Duplicate is set when the submission was a byte-identical repeat of
	// the last one and was dropped without side effects.
	Duplicate bool

	// Text recovered from the media (transcript or extracted text).
	Text string

	// Method names the backend that recovered the text.
	Method string

	// AssistantIndex is the index of the assistant message produced by the
	// translation pipeline, -1 when no turn was created.
	AssistantIndex int
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
