package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/middleware"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// HandleText runs plain private text through the translation pipeline.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionTyping)
	defer stopTyping()

	h.processAndReply(ctx, b, chat, update.Message.Text)
}
