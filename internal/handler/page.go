package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/middleware"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// handlePage fetches a web page, extracts its readable text, and runs it
// through the translation pipeline.
func (h *Handler) handlePage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		h.sendError(ctx, b, chat.ID, "Usage: /page <url>")
		return
	}
	pageURL := strings.TrimSpace(parts[1])

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionTyping)
	defer stopTyping()

	text, err := h.webpage.Extract(ctx, pageURL)
	if err != nil {
		slog.Error("extract page", "error", err, "url", pageURL, "chat_id", chat.ID)
		h.sendError(ctx, b, chat.ID, "🌐 Could not read that page: "+err.Error())
		return
	}

	h.processAndReply(ctx, b, chat, text)
}
