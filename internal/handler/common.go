package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/middleware"
	"github.com/polyglotta/polyglotta/internal/session"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// actionRow builds the inline buttons attached to every assistant reply.
// The callbacks carry the message index the action applies to.
func actionRow(idx int) *models.InlineKeyboardMarkup {
	return tg.InlineKeyboard(tg.ButtonRow(
		tg.InlineButton("👍", fmt.Sprintf("like:%d", idx)),
		tg.InlineButton("👎", fmt.Sprintf("dislike:%d", idx)),
		tg.InlineButton("🔄", fmt.Sprintf("regen:%d", idx)),
		tg.InlineButton("🔊", fmt.Sprintf("speak:%d", idx)),
		tg.InlineButton("⭐", fmt.Sprintf("save:%d", idx)),
	))
}

// processAndReply runs text through the translation pipeline, refreshes the
// bookmark index, and sends the assistant reply with its action row.
func (h *Handler) processAndReply(ctx context.Context, b *bot.Bot, chat *session.Chat, input string) {
	_, assistantIdx := h.orch.ProcessUserInput(ctx, chat.Session, input)
	h.syncBookmarks(chat)
	h.sendAssistantTurn(ctx, b, chat, assistantIdx)
}

func (h *Handler) sendAssistantTurn(ctx context.Context, b *bot.Bot, chat *session.Chat, idx int) {
	m := chat.Session.Message(idx)
	if m == nil {
		return
	}
	if err := tg.SendLongMessage(ctx, b, chat.ID, m.Content, actionRow(idx)); err != nil {
		slog.Error("send assistant turn", "error", err, "chat_id", chat.ID)
	}
}

func (h *Handler) syncBookmarks(chat *session.Chat) {
	if err := h.bookmarks.Sync(chat.ID, chat.Session.Bookmarks()); err != nil {
		slog.Error("sync bookmark index", "error", err, "chat_id", chat.ID)
	}
}

func (h *Handler) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		slog.Error("send error message", "error", err, "chat_id", chatID)
	}
}

// callbackState resolves the chat state behind a callback update. Returns
// nil when the update carries no usable chat. Handlers answer the callback
// themselves, exactly once.
func callbackState(ctx context.Context, update *models.Update) *session.Chat {
	if update.CallbackQuery == nil {
		return nil
	}
	return middleware.ChatState(ctx)
}

// callbackIndex parses the trailing integer of callback data like "like:3".
func callbackIndex(data, prefix string) (int, bool) {
	idx, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil {
		return 0, false
	}
	return idx, true
}

// ack answers the callback, optionally with a toast message.
func ack(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
	})
}

// alert answers the callback with a blocking popup.
func alert(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
		Text:            text,
		ShowAlert:       true,
	})
}
