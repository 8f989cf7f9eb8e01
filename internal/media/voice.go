package media

import (
	"context"
	"fmt"
	"time"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/session"
	"github.com/polyglotta/polyglotta/internal/translate"
)

// Transcript is a successful speech-to-text result. Method names the engine
// that produced it, which the audio log surfaces to the user.
type Transcript struct {
	Text   string
	Method string
}

// SpeechToText converts a recorded utterance into text. The language hint is
// advisory; engines may ignore it.
type SpeechToText interface {
	Transcribe(ctx context.Context, audio []byte, languageHint string) (Transcript, error)
}

// VoiceProcessor turns voice recordings into translated conversation turns.
type VoiceProcessor struct {
	stt  SpeechToText
	orch *translate.Orchestrator
}

func NewVoiceProcessor(stt SpeechToText, orch *translate.Orchestrator) *VoiceProcessor {
	return &VoiceProcessor{stt: stt, orch: orch}
}

// Process transcribes the audio and forwards the transcript into the
// translation pipeline. A byte-identical repeat of the previous recording is
// dropped. On transcription failure no conversation turn is created and the
// error is returned for the presentation layer to surface.
func (p *VoiceProcessor) Process(ctx context.Context, sess *session.Session, audio []byte) (Result, error) {
	if len(audio) == 0 {
		return Result{AssistantIndex: -1}, fmt.Errorf("%w: no audio data received", domain.ErrEmptyInput)
	}

	hash := contentHash(audio)
	if sess.LastAudioHash() == hash {
		return Result{Duplicate: true, AssistantIndex: -1}, nil
	}
	sess.SetLastAudioHash(hash)

	hint := sess.TargetLanguage()
	tr, err := p.stt.Transcribe(ctx, audio, hint)
	if err != nil {
		return Result{AssistantIndex: -1}, fmt.Errorf("speech recognition: %w", err)
	}

	_, assistantIdx := p.orch.ProcessUserInput(ctx, sess, tr.Text)
	assistantText := ""
	if m := sess.Message(assistantIdx); m != nil {
		assistantText = m.Content
	}

	sess.AppendAudioEvent(domain.AudioEvent{
		Timestamp:     time.Now(),
		Kind:          domain.AudioEventSTT,
		Source:        tr.Method,
		Transcript:    tr.Text,
		AssistantText: assistantText,
		Meta:          map[string]string{"language_hint": hint},
	})

	return Result{Text: tr.Text, Method: tr.Method, AssistantIndex: assistantIdx}, nil
}
