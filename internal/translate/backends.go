package translate

import (
	"context"
)

// Detection is a backend's guess at the language of a text.
type Detection struct {
	Language   string
	Confidence float64
}

// Detector identifies the language of a text. Implementations never fail:
// unknown or empty input resolves to english with zero confidence.
type Detector interface {
	Detect(text string) Detection
}

// Translator renders text from a source language into a target language.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Simplifier re-renders text into beginner-friendly language.
type Simplifier interface {
	Simplify(ctx context.Context, text, targetLang string) (string, error)
}
