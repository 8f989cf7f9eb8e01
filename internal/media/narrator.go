package media

import (
	"context"
	"fmt"
	"time"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/session"
)

// TextToSpeech renders text as playable audio in the given language and
// accent.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text, language string, accent domain.Accent) ([]byte, error)
}

// Narrator reads assistant replies aloud in the session's target language
// and accent, logging each rendering as a tts audio event.
type Narrator struct {
	tts TextToSpeech
}

func NewNarrator(tts TextToSpeech) *Narrator {
	return &Narrator{tts: tts}
}

func (n *Narrator) ReadAloud(ctx context.Context, sess *session.Session, text string) ([]byte, error) {
	accent := sess.Accent()
	if !accent.Valid() {
		accent = domain.AccentNeutral
	}
	lang := sess.TargetLanguage()

	audio, err := n.tts.Synthesize(ctx, text, lang, accent)
	if err != nil {
		return nil, fmt.Errorf("text to speech: %w", err)
	}

	preview := text
	if len([]rune(preview)) > 140 {
		preview = string([]rune(preview)[:140]) + "..."
	}
	sess.AppendAudioEvent(domain.AudioEvent{
		Timestamp:     time.Now(),
		Kind:          domain.AudioEventTTS,
		Source:        "read-aloud",
		AssistantText: fmt.Sprintf("**TTS (%s)** for: %s", domain.LanguageName(lang), preview),
		Meta:          map[string]string{"accent": string(accent), "lang": lang},
	})
	return audio, nil
}
