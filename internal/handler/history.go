package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/middleware"
	"github.com/polyglotta/polyglotta/internal/session"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

// eventLogLimit bounds how many audio and image events a log command shows.
const eventLogLimit = 10

func (h *Handler) handleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	msgs := chat.Session.Messages()
	if len(msgs) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "💬 The conversation is empty. Send me something to translate.",
		})
		return
	}

	start := len(msgs) - session.DefaultContextSize
	if start < 0 {
		start = 0
	}

	var sb strings.Builder
	sb.WriteString("💬 *Recent conversation*")
	if start > 0 {
		fmt.Fprintf(&sb, " (last %d of %d turns)", len(msgs)-start, len(msgs))
	}
	sb.WriteString("\n")

	for _, m := range msgs[start:] {
		icon := "🧑"
		if m.Role == domain.RoleAssistant {
			icon = "🤖"
		}
		marks := ""
		if m.Liked {
			marks = " 👍"
		} else if m.Disliked {
			marks = " 👎"
		}
		fmt.Fprintf(&sb, "\n%s _%s_%s\n%s\n", icon, m.Timestamp.Format(bookmarkTimeFormat), marks, snippet(m.Content, 300))
	}

	tg.SendLongMessage(ctx, b, chat.ID, sb.String(), nil)
}

func (h *Handler) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	chat.Session.ClearConversation()

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chat.ID,
		Text:   "🧹 Conversation cleared. Bookmarks are kept.",
	})
}

func (h *Handler) handleAudioLog(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	events := chat.Session.AudioEvents()
	if len(events) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "🎙 No audio activity yet. Send a voice message or press 🔊 under a response.",
		})
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎙 *Audio log* (%d events, newest first)\n", len(events))

	shown := 0
	for i := len(events) - 1; i >= 0 && shown < eventLogLimit; i-- {
		ev := events[i]
		shown++

		icon := "🎤"
		if ev.Kind == domain.AudioEventTTS {
			icon = "🔊"
		}
		fmt.Fprintf(&sb, "\n%s _%s · %s_\n", icon, ev.Source, ev.Timestamp.Format(bookmarkTimeFormat))

		if ev.Kind == domain.AudioEventTTS {
			fmt.Fprintf(&sb, "%s\n", snippet(ev.AssistantText, 200))
		} else {
			fmt.Fprintf(&sb, "%s\n", snippet(ev.Transcript, 200))
		}
	}

	tg.SendLongMessage(ctx, b, chat.ID, sb.String(), nil)
}

func (h *Handler) handleImageLog(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}

	events := chat.Session.ImageEvents()
	if len(events) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chat.ID,
			Text:   "🖼 No image activity yet. Send a photo with text in it.",
		})
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🖼 *Image log* (%d events, newest first)\n", len(events))

	shown := 0
	for i := len(events) - 1; i >= 0 && shown < eventLogLimit; i-- {
		ev := events[i]
		shown++

		fmt.Fprintf(&sb, "\n🖼 _%s · %s_\n", ev.Source, ev.Timestamp.Format(bookmarkTimeFormat))
		if ev.Error != "" {
			fmt.Fprintf(&sb, "⚠️ %s\n", snippet(ev.Error, 200))
		} else {
			fmt.Fprintf(&sb, "%s\n", snippet(ev.ExtractedText, 200))
		}
	}

	tg.SendLongMessage(ctx, b, chat.ID, sb.String(), nil)
}
