package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/middleware"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// HandlePhoto extracts text from a photo (or image document) and translates
// it.
func (h *Handler) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	fileID := ""
	switch {
	case len(update.Message.Photo) > 0:
		// Highest resolution is last.
		fileID = update.Message.Photo[len(update.Message.Photo)-1].FileID
	case update.Message.Document != nil && strings.HasPrefix(update.Message.Document.MimeType, "image/"):
		fileID = update.Message.Document.FileID
	default:
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionTyping)
	defer stopTyping()

	image, err := tg.DownloadFile(ctx, b, fileID)
	if err != nil {
		slog.Error("download photo", "error", err, "chat_id", chat.ID)
		h.sendError(ctx, b, chat.ID, "❌ Could not download the image.")
		return
	}

	result, err := h.images.Process(ctx, chat.Session, image)
	if err != nil {
		slog.Error("process image", "error", err, "chat_id", chat.ID)
		switch {
		case errors.Is(err, domain.ErrNoTextFound):
			h.sendError(ctx, b, chat.ID, "🖼 No text found in image.")
		case errors.Is(err, domain.ErrNotConfigured):
			h.sendError(ctx, b, chat.ID, "🖼 Image text extraction is not configured.")
		default:
			h.sendError(ctx, b, chat.ID, fmt.Sprintf("🖼 Image text extraction failed: %v", err))
		}
		return
	}
	if result.Duplicate {
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chat.ID,
		Text:      fmt.Sprintf("🖼 _%s_", result.Text),
		ParseMode: models.ParseModeMarkdownV1,
	})

	h.syncBookmarks(chat)
	h.sendAssistantTurn(ctx, b, chat, result.AssistantIndex)
}
