package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/middleware"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

func (h *Handler) handleSearch(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	parts := strings.SplitN(update.Message.Text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "🔎 Usage: /search <words>\nSearches your bookmarked translations.",
		})
		return
	}
	query := strings.TrimSpace(parts[1])

	results, err := h.bookmarks.Search(chat.ID, query, config.SearchResultLimit)
	if err != nil {
		h.sendError(ctx, b, chat.ID, "🔎 Search failed.")
		return
	}
	if len(results) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   fmt.Sprintf("🔎 No bookmarks match %q.", query),
		})
		return
	}

	bookmarks := chat.Session.Bookmarks()

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔎 *Matches for* _%s_\n", query)
	for _, r := range results {
		// Positions refer to the bookmark list at last sync.
		if r.Position < 0 || r.Position >= len(bookmarks) {
			continue
		}
		bm := bookmarks[r.Position]
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "*%d.*", r.Position+1)
		if bm.OriginalText != "" {
			fmt.Fprintf(&sb, " %s\n→ %s\n", snippet(bm.OriginalText, 160), snippet(bm.TranslatedText, 160))
		} else {
			fmt.Fprintf(&sb, " %s\n", snippet(bm.TranslatedText, 160))
		}
		fmt.Fprintf(&sb, "_%s → %s · %s_\n", bm.SourceLang, bm.TargetLang, bm.Timestamp.Format(bookmarkTimeFormat))
	}

	tg.SendLongMessage(ctx, b, chat.ID, sb.String(), nil)
}
