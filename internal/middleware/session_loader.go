package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/session"
)

type ctxKey string

const chatKey ctxKey = "chat"

// ChatState extracts the chat's session state from context. Returns nil for
// updates that carry no chat, which handlers treat as nothing-to-do.
func ChatState(ctx context.Context) *session.Chat {
	c, ok := ctx.Value(chatKey).(*session.Chat)
	if !ok {
		return nil
	}
	return c
}

// SessionLoader returns middleware that resolves the update's chat, loads or
// creates its session state, and holds the chat's lock for the duration of
// the handler. Updates for the same chat are processed one at a time; the
// session itself needs no further locking downstream.
func SessionLoader(registry *session.Registry) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID, ok := updateChatID(update)
			if !ok {
				next(ctx, b, update)
				return
			}

			chat := registry.Chat(chatID)
			chat.Lock()
			defer chat.Unlock()

			next(context.WithValue(ctx, chatKey, chat), b, update)
		}
	}
}

func updateChatID(update *models.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message.Message != nil:
		return update.CallbackQuery.Message.Message.Chat.ID, true
	default:
		return 0, false
	}
}
