// Package session holds the per-chat conversational state: the ordered
// message history, bookmarks and translation settings. A Session is a plain
// single-threaded component; callers serialize access to it (the bot does
// this per chat in the middleware layer).
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/polyglotta/polyglotta/internal/domain"
)

const (
	// SourceAuto asks the pipeline to detect the source language.
	SourceAuto = "auto"

	// DefaultContextSize bounds the recent-context window handed to
	// consumers when they pass a non-positive limit.
	DefaultContextSize = 10
)

type Session struct {
	ID        string
	CreatedAt time.Time

	messages  []domain.ConversationMessage
	bookmarks []domain.Bookmark

	sourceLanguage  string
	targetLanguage  string
	languageLock    string
	autoEnglishMode bool
	simplifierMode  bool
	accent          domain.Accent

	audioEvents   []domain.AudioEvent
	imageEvents   []domain.ImageEvent
	lastAudioHash string
	lastImageHash string
}

func New(defaultTarget string) *Session {
	if !domain.IsSupportedLanguage(defaultTarget) {
		defaultTarget = "en"
	}
	return &Session{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now(),
		sourceLanguage: SourceAuto,
		targetLanguage: defaultTarget,
		accent:         domain.AccentNeutral,
	}
}

// AddMessage appends a turn to the history and returns its index. Content is
// recorded as given; empty input is the caller's concern, not rejected here.
func (s *Session) AddMessage(role domain.Role, content string, metadata map[string]any) int {
	s.messages = append(s.messages, domain.NewMessage(role, content, metadata))
	return len(s.messages) - 1
}

// Messages returns the live history slice ordered oldest first.
func (s *Session) Messages() []domain.ConversationMessage {
	return s.messages
}

// Message returns a pointer into the history, or nil when out of range.
func (s *Session) Message(index int) *domain.ConversationMessage {
	if index < 0 || index >= len(s.messages) {
		return nil
	}
	return &s.messages[index]
}

// ContextEntry is one serialized turn of the recent-context window.
type ContextEntry struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
	Liked     bool           `json:"liked"`
	Disliked  bool           `json:"disliked"`
}

// RecentContext returns up to max trailing turns, oldest first, most recent
// last. Non-positive max means DefaultContextSize.
func (s *Session) RecentContext(max int) []ContextEntry {
	if max <= 0 {
		max = DefaultContextSize
	}
	start := len(s.messages) - max
	if start < 0 {
		start = 0
	}
	out := make([]ContextEntry, 0, len(s.messages)-start)
	for _, m := range s.messages[start:] {
		out = append(out, ContextEntry{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339Nano),
			Metadata:  m.Metadata,
			Liked:     m.Liked,
			Disliked:  m.Disliked,
		})
	}
	return out
}

// ClearConversation drops the message history. Bookmarks and settings stay.
func (s *Session) ClearConversation() {
	s.messages = nil
}

// ToggleLike flips the like flag on a message. Liking clears a dislike.
// Out-of-range indexes are ignored.
func (s *Session) ToggleLike(index int) {
	if index < 0 || index >= len(s.messages) {
		return
	}
	m := &s.messages[index]
	m.Liked = !m.Liked
	if m.Liked {
		m.Disliked = false
	}
}

// ToggleDislike flips the dislike flag on a message. Disliking clears a like.
// Out-of-range indexes are ignored.
func (s *Session) ToggleDislike(index int) {
	if index < 0 || index >= len(s.messages) {
		return
	}
	m := &s.messages[index]
	m.Disliked = !m.Disliked
	if m.Disliked {
		m.Liked = false
	}
}

// RemoveMessage drops one turn from the history, shifting later indexes
// down. Out-of-range indexes are ignored.
func (s *Session) RemoveMessage(index int) {
	if index < 0 || index >= len(s.messages) {
		return
	}
	s.messages = append(s.messages[:index], s.messages[index+1:]...)
}

func (s *Session) AddBookmark(original, translated, sourceLang, targetLang string) domain.Bookmark {
	bm := domain.NewBookmark(original, translated, sourceLang, targetLang)
	s.bookmarks = append(s.bookmarks, bm)
	return bm
}

func (s *Session) Bookmarks() []domain.Bookmark {
	return s.bookmarks
}

// RemoveBookmark deletes a bookmark by position. Out-of-range indexes are
// ignored and reported as false.
func (s *Session) RemoveBookmark(index int) bool {
	if index < 0 || index >= len(s.bookmarks) {
		return false
	}
	s.bookmarks = append(s.bookmarks[:index], s.bookmarks[index+1:]...)
	return true
}

func (s *Session) ClearBookmarks() {
	s.bookmarks = nil
}

func (s *Session) SourceLanguage() string { return s.sourceLanguage }

// SetSourceLanguage accepts SourceAuto or any supported code.
func (s *Session) SetSourceLanguage(code string) bool {
	if code != SourceAuto && !domain.IsSupportedLanguage(code) {
		return false
	}
	s.sourceLanguage = code
	return true
}

func (s *Session) TargetLanguage() string { return s.targetLanguage }

func (s *Session) SetTargetLanguage(code string) bool {
	if !domain.IsSupportedLanguage(code) {
		return false
	}
	s.targetLanguage = code
	return true
}

// LanguageLock returns the pinned target code, or "" when unlocked.
func (s *Session) LanguageLock() string { return s.languageLock }

// SetLanguageLock pins the target language; an empty code clears the lock.
func (s *Session) SetLanguageLock(code string) bool {
	if code != "" && !domain.IsSupportedLanguage(code) {
		return false
	}
	s.languageLock = code
	return true
}

func (s *Session) AutoEnglishMode() bool        { return s.autoEnglishMode }
func (s *Session) SetAutoEnglishMode(on bool)   { s.autoEnglishMode = on }
func (s *Session) SimplifierMode() bool         { return s.simplifierMode }
func (s *Session) SetSimplifierMode(on bool)    { s.simplifierMode = on }
func (s *Session) Accent() domain.Accent        { return s.accent }

func (s *Session) SetAccent(a domain.Accent) bool {
	if !a.Valid() {
		return false
	}
	s.accent = a
	return true
}
