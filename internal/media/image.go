package media

import (
	"context"
	"fmt"
	"time"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/session"
	"github.com/polyglotta/polyglotta/internal/translate"
)

// OCR extracts text from an image. The "no text found" case is an error
// wrapping domain.ErrNoTextFound.
type OCR interface {
	ExtractText(ctx context.Context, image []byte, language string) (string, error)
}

// DefaultOCRLanguage is what the extractor is asked for when the caller has
// no better idea.
const DefaultOCRLanguage = "eng"

// ImageProcessor turns photographed text into translated conversation turns.
type ImageProcessor struct {
	ocr  OCR
	orch *translate.Orchestrator
}

func NewImageProcessor(ocr OCR, orch *translate.Orchestrator) *ImageProcessor {
	return &ImageProcessor{ocr: ocr, orch: orch}
}

// Process extracts text from the image and forwards it into the translation
// pipeline. A byte-identical repeat of the previous image is dropped. OCR
// failure is recorded as an image event carrying the error; no conversation
// turn is created.
func (p *ImageProcessor) Process(ctx context.Context, sess *session.Session, image []byte) (Result, error) {
	if len(image) == 0 {
		return Result{AssistantIndex: -1}, fmt.Errorf("%w: no image data received", domain.ErrEmptyInput)
	}

	hash := contentHash(image)
	if sess.LastImageHash() == hash {
		return Result{Duplicate: true, AssistantIndex: -1}, nil
	}
	sess.SetLastImageHash(hash)

	extracted, err := p.ocr.ExtractText(ctx, image, DefaultOCRLanguage)
	if err != nil {
		msg := fmt.Sprintf("OCR error: %v", err)
		sess.AppendImageEvent(domain.ImageEvent{
			Timestamp: time.Now(),
			Source:    "ocr",
			Error:     msg,
		})
		return Result{AssistantIndex: -1}, fmt.Errorf("text extraction: %w", err)
	}

	_, assistantIdx := p.orch.ProcessUserInput(ctx, sess, extracted)
	assistantText := ""
	if m := sess.Message(assistantIdx); m != nil {
		assistantText = m.Content
	}

	sess.AppendImageEvent(domain.ImageEvent{
		Timestamp:     time.Now(),
		Source:        "ocr",
		ExtractedText: extracted,
		AssistantText: assistantText,
	})

	return Result{Text: extracted, Method: "ocr", AssistantIndex: assistantIdx}, nil
}
