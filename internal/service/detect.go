package service

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/translate"
)

// Codes whatlang emits that the translation providers spell differently.
var detectAliases = map[string]string{
	"zh": "zh-cn",
	"he": "iw",
	"jv": "jw",
}

// DetectService guesses the language of a text locally, without a network
// call. It never fails: anything unrecognizable resolves to english with
// zero confidence.
type DetectService struct{}

func NewDetectService() *DetectService { return &DetectService{} }

func (s *DetectService) Detect(text string) translate.Detection {
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return translate.Detection{Language: "en", Confidence: 0}
	}

	info := whatlanggo.Detect(stripped)
	code := info.Lang.Iso6391()
	if code == "" {
		return translate.Detection{Language: "en", Confidence: 0}
	}
	if alias, ok := detectAliases[code]; ok {
		code = alias
	}
	if !domain.IsSupportedLanguage(code) {
		return translate.Detection{Language: "en", Confidence: 0}
	}
	return translate.Detection{Language: code, Confidence: info.Confidence}
}
