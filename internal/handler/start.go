package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/middleware"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi! I translate anything you send me.\n\n"+
			"Send *text*, a *voice message*, or a *photo of text* and I reply "+
			"with the translation into *%s*.\n\n"+
			"📋 *Commands:*\n"+
			"/settings — Languages, accent, and modes\n"+
			"/history — Recent conversation\n"+
			"/clear — Reset the conversation\n"+
			"/bookmarks — Saved translations\n"+
			"/search <query> — Search your bookmarks\n"+
			"/page <url> — Translate a web page\n"+
			"/export — Download the conversation as JSON\n"+
			"/audiolog — Voice and read-aloud history\n"+
			"/imagelog — Image translation history\n\n"+
			"Every reply has buttons: 👍 👎 rate it, 🔄 redo it, "+
			"🔊 hear it, ⭐ bookmark it.\n\n"+
			"Send an exported .json file back to me to restore a conversation.",
		domain.LanguageDisplayName(chat.Session.TargetLanguage()),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chat.ID,
		Text:      welcomeText,
		ParseMode: models.ParseModeMarkdownV1,
	})
}
