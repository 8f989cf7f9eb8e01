// Package translate coordinates one user utterance through detection,
// translation and optional simplification, recording both turns in the
// session. Failures never escape: they become assistant-visible messages.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/session"
)

type Orchestrator struct {
	detector   Detector
	translator Translator
	simplifier Simplifier
}

func NewOrchestrator(detector Detector, translator Translator, simplifier Simplifier) *Orchestrator {
	return &Orchestrator{
		detector:   detector,
		translator: translator,
		simplifier: simplifier,
	}
}

// ProcessUserInput runs one full turn against the session and returns the
// indexes of the recorded user and assistant messages. The input is recorded
// as given, even when empty; callers are expected to trim and screen first.
func (o *Orchestrator) ProcessUserInput(ctx context.Context, sess *session.Session, input string) (userIdx, assistantIdx int) {
	// 1. Record the user turn
	userIdx = sess.AddMessage(domain.RoleUser, input, nil)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in translation pipeline", "panic", r, "stack", string(debug.Stack()))
			assistantIdx = sess.AddMessage(domain.RoleAssistant, fmt.Sprintf("Error processing input: %v", r), nil)
		}
	}()

	// 2. Resolve the source language: a manual override wins outright,
	// otherwise ask the detector
	var detected string
	var confidence float64
	if src := sess.SourceLanguage(); src != "" && src != session.SourceAuto {
		detected = src
		confidence = 1.0
	} else {
		d := o.detector.Detect(input)
		detected = d.Language
		confidence = d.Confidence
	}

	// 3. Resolve the target language: auto-English mode first, then the
	// language lock, then the picked target
	target := sess.TargetLanguage()
	if sess.AutoEnglishMode() {
		target = "en"
	} else if lock := sess.LanguageLock(); lock != "" {
		target = lock
	}

	// 4. Translate; a degenerate pair passes the text through untouched
	translated, passthrough, err := o.translateOnce(ctx, input, detected, target)

	var responseText string
	var bookmarkText string
	bookmarkable := false

	if err != nil {
		slog.Error("translation failed", "source", detected, "target", target, "error", err)
		responseText = fmt.Sprintf("Translation error: %v", err)
	} else {
		// 5. Optionally simplify; a simplifier failure falls back to the
		// unsimplified text without telling the user. The pass-through
		// path keeps the original wording and skips simplification.
		if sess.SimplifierMode() && !passthrough {
			simplified, serr := o.simplifier.Simplify(ctx, translated, target)
			if serr != nil {
				slog.Debug("simplification fallback", "error", serr)
			} else {
				translated = simplified
			}
		}
		bookmarkText = translated
		bookmarkable = true

		// 6. Compose the assistant block naming the language pair
		sourceName := domain.LanguageName(detected)
		targetName := domain.LanguageName(target)
		responseText = fmt.Sprintf("**Translation (%s → %s):**\n\n%s", sourceName, targetName, translated)
		if detected != target {
			responseText += fmt.Sprintf("\n\n*Detected language: %s*", sourceName)
		}
	}

	// 7. Record the assistant turn with its resolution metadata
	metadata := map[string]any{
		"detected_language": detected,
		"target_language":   target,
		"confidence":        confidence,
	}
	assistantIdx = sess.AddMessage(domain.RoleAssistant, responseText, metadata)

	// 8. Every successful translation is bookmarked automatically
	if bookmarkable {
		sess.AddBookmark(input, bookmarkText, detected, target)
	}
	return userIdx, assistantIdx
}

// translateOnce performs the single outbound translation call. It reports
// passthrough=true when source and target match and no call was made.
func (o *Orchestrator) translateOnce(ctx context.Context, text, sourceLang, targetLang string) (string, bool, error) {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return "", false, domain.ErrEmptyInput
	}
	if sourceLang == targetLang {
		return stripped, true, nil
	}
	out, err := o.translator.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", false, err
	}
	return out, false, nil
}

// Regenerate re-runs the user turn that produced the assistant message at
// index. The stale assistant message is dropped and the exchange is appended
// fresh at the end of the history. Returns the new assistant index, or -1
// when index does not name a regenerable assistant turn.
func (o *Orchestrator) Regenerate(ctx context.Context, sess *session.Session, index int) int {
	msg := sess.Message(index)
	if msg == nil || msg.Role != domain.RoleAssistant || index == 0 {
		return -1
	}
	prev := sess.Message(index - 1)
	if prev == nil || prev.Role != domain.RoleUser {
		return -1
	}
	content := prev.Content
	sess.RemoveMessage(index)
	_, assistantIdx := o.ProcessUserInput(ctx, sess, content)
	return assistantIdx
}
