package domain

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is one turn of the translation chat. Metadata carries
// per-turn annotations such as detected_language, target_language and
// confidence on assistant turns.
type ConversationMessage struct {
	Role      Role
	Content   string
	Timestamp time.Time
	Metadata  map[string]any
	Liked     bool
	Disliked  bool
}

func NewMessage(role Role, content string, metadata map[string]any) ConversationMessage {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
}
