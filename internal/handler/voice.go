package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/middleware"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// HandleVoice transcribes a voice or audio message and translates the
// transcript.
func (h *Handler) HandleVoice(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	fileID := ""
	switch {
	case update.Message.Voice != nil:
		fileID = update.Message.Voice.FileID
	case update.Message.Audio != nil:
		fileID = update.Message.Audio.FileID
	default:
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionTyping)
	defer stopTyping()

	audio, err := tg.DownloadFile(ctx, b, fileID)
	if err != nil {
		slog.Error("download voice", "error", err, "chat_id", chat.ID)
		h.sendError(ctx, b, chat.ID, "❌ Could not download the voice message.")
		return
	}

	result, err := h.voice.Process(ctx, chat.Session, audio)
	if err != nil {
		slog.Error("process voice", "error", err, "chat_id", chat.ID)
		switch {
		case errors.Is(err, domain.ErrNoSpeech):
			h.sendError(ctx, b, chat.ID, "🎤 Could not understand the audio. Please try again.")
		case errors.Is(err, domain.ErrNotConfigured):
			h.sendError(ctx, b, chat.ID, "🎤 Speech recognition is not configured.")
		default:
			h.sendError(ctx, b, chat.ID, fmt.Sprintf("🎤 Speech recognition failed: %v", err))
		}
		return
	}
	if result.Duplicate {
		return
	}

	// Echo the transcript so the user sees what was heard.
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chat.ID,
		Text:      fmt.Sprintf("🎤 _%s_", result.Text),
		ParseMode: models.ParseModeMarkdownV1,
	})

	h.syncBookmarks(chat)
	h.sendAssistantTurn(ctx, b, chat, result.AssistantIndex)
}
