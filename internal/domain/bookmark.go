package domain

import (
	"time"
)

// Bookmark stores one saved translation pair. SourceLang may be "auto" when
// the pair was bookmarked manually and the source was never resolved.
type Bookmark struct {
	OriginalText   string
	TranslatedText string
	SourceLang     string
	TargetLang     string
	Timestamp      time.Time
	Notes          string
}

func NewBookmark(original, translated, sourceLang, targetLang string) Bookmark {
	return Bookmark{
		OriginalText:   original,
		TranslatedText: translated,
		SourceLang:     sourceLang,
		TargetLang:     targetLang,
		Timestamp:      time.Now(),
	}
}
