package session

import (
	"sync"
)

// Chat wraps one chat's session together with the mutex the bot layer uses
// to serialize handlers for that chat. The session itself stays lock-free.
type Chat struct {
	mu      sync.Mutex
	ID      int64
	Session *Session
}

func (c *Chat) Lock()   { c.mu.Lock() }
func (c *Chat) Unlock() { c.mu.Unlock() }

// Registry hands out chat states, creating a fresh session with the
// configured default target language on first sight of a chat.
type Registry struct {
	mu            sync.Mutex
	chats         map[int64]*Chat
	defaultTarget string
}

func NewRegistry(defaultTarget string) *Registry {
	return &Registry{
		chats:         make(map[int64]*Chat),
		defaultTarget: defaultTarget,
	}
}

func (r *Registry) Chat(chatID int64) *Chat {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		c = &Chat{ID: chatID, Session: New(r.defaultTarget)}
		r.chats[chatID] = c
	}
	return c
}

// Len reports how many chats have live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chats)
}
