package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/middleware"
	"github.com/polyglotta/polyglotta/internal/session"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

func (h *Handler) handleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	turns := len(chat.Session.Messages())
	marks := len(chat.Session.Bookmarks())
	if turns == 0 && marks == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "📦 Nothing to export yet.",
		})
		return
	}

	data, err := chat.Session.ExportSnapshot()
	if err != nil {
		h.sendError(ctx, b, chat.ID, "📦 Could not build the snapshot.")
		return
	}

	caption := fmt.Sprintf("📦 %d turns, %d bookmarks. Send this file back to restore the conversation.", turns, marks)
	if err := tg.SendDocument(ctx, b, chat.ID, session.ExportFilename(time.Now()), data, caption); err != nil {
		h.sendError(ctx, b, chat.ID, "📦 Could not deliver the snapshot file.")
	}
}

// HandleImport restores a conversation from a snapshot document. Wired to
// incoming .json documents by the default handler.
func (h *Handler) HandleImport(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.Document == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionTyping)
	defer stopTyping()

	data, err := tg.DownloadFile(ctx, b, msg.Document.FileID)
	if err != nil {
		h.sendError(ctx, b, chat.ID, "📦 Could not download that file.")
		return
	}

	if err := chat.Session.ImportSnapshot(data); err != nil {
		h.sendError(ctx, b, chat.ID, fmt.Sprintf("📦 Import failed: %v", err))
		return
	}
	h.syncBookmarks(chat)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chat.ID,
		Text: fmt.Sprintf("📦 Snapshot restored: %d turns, %d bookmarks.",
			len(chat.Session.Messages()), len(chat.Session.Bookmarks())),
	})
}
