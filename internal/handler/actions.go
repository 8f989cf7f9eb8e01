package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/domain"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// handleLike toggles the helpful mark on a response. Liking clears an
// earlier dislike on the same message.
func (h *Handler) handleLike(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	idx, ok := callbackIndex(update.CallbackQuery.Data, "like:")
	if !ok {
		ack(ctx, b, update, "")
		return
	}

	chat.Session.ToggleLike(idx)

	toast := "Reaction removed"
	if m := chat.Session.Message(idx); m != nil && m.Liked {
		toast = "Marked as helpful 👍"
	}
	ack(ctx, b, update, toast)
}

// handleDislike toggles the unhelpful mark on a response. Disliking clears
// an earlier like on the same message.
func (h *Handler) handleDislike(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	idx, ok := callbackIndex(update.CallbackQuery.Data, "dislike:")
	if !ok {
		ack(ctx, b, update, "")
		return
	}

	chat.Session.ToggleDislike(idx)

	toast := "Reaction removed"
	if m := chat.Session.Message(idx); m != nil && m.Disliked {
		toast = "Marked as unhelpful 👎"
	}
	ack(ctx, b, update, toast)
}

// handleRegenerate reruns the translation behind a response and replaces
// the old turn with a fresh one.
func (h *Handler) handleRegenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	idx, ok := callbackIndex(update.CallbackQuery.Data, "regen:")
	if !ok {
		ack(ctx, b, update, "")
		return
	}

	// 1. A regeneration needs the original user turn right before the
	// response. Old buttons can outlive a /clear, so check before answering.
	m := chat.Session.Message(idx)
	prev := chat.Session.Message(idx - 1)
	if m == nil || m.Role != domain.RoleAssistant || prev == nil || prev.Role != domain.RoleUser {
		alert(ctx, b, update, "Nothing to regenerate for this message.")
		return
	}

	ack(ctx, b, update, "🔄 Regenerating...")

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionTyping)
	defer stopTyping()

	// 2. The orchestrator drops the old turn and reruns the pipeline, so
	// the new response lands at the end of the history.
	newIdx := h.orch.Regenerate(ctx, chat.Session, idx)
	if newIdx < 0 {
		h.sendError(ctx, b, chat.ID, "Could not regenerate that translation.")
		return
	}

	h.syncBookmarks(chat)
	h.sendAssistantTurn(ctx, b, chat, newIdx)
}

// handleSpeak synthesizes a response into speech and sends it back as an
// audio file.
func (h *Handler) handleSpeak(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	idx, ok := callbackIndex(update.CallbackQuery.Data, "speak:")
	if !ok {
		ack(ctx, b, update, "")
		return
	}

	m := chat.Session.Message(idx)
	if m == nil || m.Content == "" {
		alert(ctx, b, update, "Nothing to read aloud.")
		return
	}

	ack(ctx, b, update, "🔊 Synthesizing...")

	stopTyping := tg.StartTyping(ctx, b, chat.ID, models.ChatActionRecordVoice)
	defer stopTyping()

	audio, err := h.narrator.ReadAloud(ctx, chat.Session, m.Content)
	if err != nil {
		h.sendError(ctx, b, chat.ID, fmt.Sprintf("🔊 Could not synthesize speech: %v", err))
		return
	}

	if err := tg.SendAudio(ctx, b, chat.ID, "speech.mp3", audio, ""); err != nil {
		h.sendError(ctx, b, chat.ID, "🔊 Could not deliver the audio file.")
	}
}

// handleSaveBookmark stores a response as a bookmark. The original text is
// recovered from the user turn right before the response when one exists.
func (h *Handler) handleSaveBookmark(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	idx, ok := callbackIndex(update.CallbackQuery.Data, "save:")
	if !ok {
		ack(ctx, b, update, "")
		return
	}

	m := chat.Session.Message(idx)
	if m == nil || m.Role != domain.RoleAssistant {
		alert(ctx, b, update, "Nothing to save here.")
		return
	}

	original := ""
	if prev := chat.Session.Message(idx - 1); prev != nil && prev.Role == domain.RoleUser {
		original = prev.Content
	}

	chat.Session.AddBookmark(original, m.Content, "auto", chat.Session.TargetLanguage())
	h.syncBookmarks(chat)

	ack(ctx, b, update, "⭐ Saved to bookmarks")
}
