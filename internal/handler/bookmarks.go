package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/middleware"
	"github.com/polyglotta/polyglotta/internal/session"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

const bookmarkTimeFormat = "02 Jan 15:04"

func (h *Handler) handleBookmarks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}
	h.sendBookmarks(ctx, b, chat)
}

func (h *Handler) sendBookmarks(ctx context.Context, b *bot.Bot, chat *session.Chat) {
	bookmarks := chat.Session.Bookmarks()
	if len(bookmarks) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "⭐ No bookmarks yet. Save a translation with the ⭐ button under any response.",
		})
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "⭐ *Bookmarks* (%d)\n", len(bookmarks))
	for i, bm := range bookmarks {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "*%d.*", i+1)
		if bm.OriginalText != "" {
			fmt.Fprintf(&sb, " %s\n→ %s\n", snippet(bm.OriginalText, 160), snippet(bm.TranslatedText, 160))
		} else {
			fmt.Fprintf(&sb, " %s\n", snippet(bm.TranslatedText, 160))
		}
		fmt.Fprintf(&sb, "_%s → %s · %s_\n", bm.SourceLang, bm.TargetLang, bm.Timestamp.Format(bookmarkTimeFormat))
	}

	// One delete button per bookmark, five to a row.
	var rows [][]models.InlineKeyboardButton
	row := make([]models.InlineKeyboardButton, 0, 5)
	for i := range bookmarks {
		row = append(row, tg.InlineButton(fmt.Sprintf("🗑 %d", i+1), fmt.Sprintf("bmdel:%d", i)))
		if len(row) == 5 {
			rows = append(rows, row)
			row = make([]models.InlineKeyboardButton, 0, 5)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	tg.SendLongMessage(ctx, b, chat.ID, sb.String(), tg.InlineKeyboard(rows...))
}

func (h *Handler) handleBookmarkDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	pos, ok := callbackIndex(update.CallbackQuery.Data, "bmdel:")
	if !ok {
		ack(ctx, b, update, "")
		return
	}

	if !chat.Session.RemoveBookmark(pos) {
		alert(ctx, b, update, "That bookmark is already gone.")
		return
	}
	h.syncBookmarks(chat)

	ack(ctx, b, update, "🗑 Bookmark removed")
	h.sendBookmarks(ctx, b, chat)
}

func (h *Handler) handleClearBookmarks(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	n := len(chat.Session.Bookmarks())
	if n == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "⭐ No bookmarks to clear.",
		})
		return
	}

	chat.Session.ClearBookmarks()
	h.syncBookmarks(chat)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chat.ID,
		Text:   fmt.Sprintf("🗑 Cleared %d bookmarks.", n),
	})
}

// snippet clips s to max runes for list rendering.
func snippet(s string, max int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
