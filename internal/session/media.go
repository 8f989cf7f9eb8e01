package session

import (
	"github.com/polyglotta/polyglotta/internal/domain"
)

// Media side-channel state. The voice and image adapters own the dedup and
// logging logic; the session only stores what they record so it lives and
// dies with the chat.

func (s *Session) AudioEvents() []domain.AudioEvent {
	return s.audioEvents
}

func (s *Session) AppendAudioEvent(ev domain.AudioEvent) {
	s.audioEvents = append(s.audioEvents, ev)
}

func (s *Session) ImageEvents() []domain.ImageEvent {
	return s.imageEvents
}

func (s *Session) AppendImageEvent(ev domain.ImageEvent) {
	s.imageEvents = append(s.imageEvents, ev)
}

func (s *Session) LastAudioHash() string        { return s.lastAudioHash }
func (s *Session) SetLastAudioHash(hash string) { s.lastAudioHash = hash }
func (s *Session) LastImageHash() string        { return s.lastImageHash }
func (s *Session) SetLastImageHash(hash string) { s.lastImageHash = hash }
