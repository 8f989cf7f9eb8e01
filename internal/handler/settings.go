package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/domain"
	"github.com/polyglotta/polyglotta/internal/middleware"
	"github.com/polyglotta/polyglotta/internal/session"
	tg "github.com/polyglotta/polyglotta/internal/telegram"
)

func (h *Handler) handleSettings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chat := middleware.ChatState(ctx)
	if chat == nil {
		return
	}
	h.sendSettings(ctx, b, chat)
}

func (h *Handler) sendSettings(ctx context.Context, b *bot.Bot, chat *session.Chat) {
	sess := chat.Session

	lockStatus := "❌ Off"
	if code := sess.LanguageLock(); code != "" {
		lockStatus = "✅ " + domain.LanguageDisplayName(code)
	}

	text := fmt.Sprintf(
		"⚙️ *Settings*\n\n"+
			"🎯 Target language: *%s*\n"+
			"🔍 Source language: *%s*\n"+
			"🗣 Accent: *%s*\n",
		domain.LanguageDisplayName(sess.TargetLanguage()),
		sourceDisplayName(sess.SourceLanguage()),
		accentLabel(sess.Accent()),
	)

	var rows [][]models.InlineKeyboardButton
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton(fmt.Sprintf("🎯 Target: %s", domain.LanguageDisplayName(sess.TargetLanguage())), "set_target"),
	))
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton(fmt.Sprintf("🔍 Source: %s", sourceDisplayName(sess.SourceLanguage())), "set_source"),
	))
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton(fmt.Sprintf("🔒 Lock target: %s", lockStatus), "toggle_lock"),
	))
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton(fmt.Sprintf("🇬🇧 Auto-English: %s", onOff(sess.AutoEnglishMode())), "toggle_autoen"),
	))
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton(fmt.Sprintf("✏️ Simplifier: %s", onOff(sess.SimplifierMode())), "toggle_simplify"),
	))
	rows = append(rows, accentRow(sess.Accent()))

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: tg.InlineKeyboard(rows...),
	})
}

func sourceDisplayName(code string) string {
	if code == "" || code == session.SourceAuto {
		return "Auto-detect"
	}
	return domain.LanguageDisplayName(code)
}

func accentLabel(a domain.Accent) string {
	switch a {
	case domain.AccentBritish:
		return "British"
	case domain.AccentAmerican:
		return "American"
	default:
		return "Neutral"
	}
}

func onOff(v bool) string {
	if v {
		return "✅ On"
	}
	return "❌ Off"
}

func accentRow(current domain.Accent) []models.InlineKeyboardButton {
	row := make([]models.InlineKeyboardButton, 0, len(domain.Accents))
	for _, a := range domain.Accents {
		label := accentLabel(a)
		if a == current {
			label = "🗣 " + label
		}
		row = append(row, tg.InlineButton(label, "accent:"+string(a)))
	}
	return row
}

// Callback handlers for settings

func (h *Handler) handleToggleLock(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}

	if chat.Session.LanguageLock() != "" {
		chat.Session.SetLanguageLock("")
		ack(ctx, b, update, "Language lock cleared")
	} else {
		chat.Session.SetLanguageLock(chat.Session.TargetLanguage())
		ack(ctx, b, update, fmt.Sprintf("Locked to %s", domain.LanguageDisplayName(chat.Session.TargetLanguage())))
	}

	h.sendSettings(ctx, b, chat)
}

func (h *Handler) handleToggleAutoEnglish(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}

	chat.Session.SetAutoEnglishMode(!chat.Session.AutoEnglishMode())
	ack(ctx, b, update, "")
	h.sendSettings(ctx, b, chat)
}

func (h *Handler) handleToggleSimplifier(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}

	chat.Session.SetSimplifierMode(!chat.Session.SimplifierMode())
	ack(ctx, b, update, "")
	h.sendSettings(ctx, b, chat)
}

func (h *Handler) handleAccentSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}

	value := strings.TrimPrefix(update.CallbackQuery.Data, "accent:")
	if !chat.Session.SetAccent(domain.Accent(value)) {
		alert(ctx, b, update, "Unknown accent.")
		return
	}

	ack(ctx, b, update, "")
	h.sendSettings(ctx, b, chat)
}

// Language pickers

// languagePicker builds one page of the language keyboard. Selection
// callbacks are "<selectPrefix>:<code>:<page>"; page flips go through
// "<pagePrefix>:<page>".
func languagePicker(selectPrefix, pagePrefix, selected string, page int, includeAuto bool) *models.InlineKeyboardMarkup {
	codes := domain.SortedLanguageCodes()
	totalPages := (len(codes) + config.LanguagesPerPage - 1) / config.LanguagesPerPage
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	start := page * config.LanguagesPerPage
	end := start + config.LanguagesPerPage
	if end > len(codes) {
		end = len(codes)
	}

	var rows [][]models.InlineKeyboardButton
	if includeAuto {
		label := "🪄 Auto-detect"
		if selected == session.SourceAuto {
			label = "✅ " + label
		}
		rows = append(rows, tg.ButtonRow(
			tg.InlineButton(label, fmt.Sprintf("%s:%s:%d", selectPrefix, session.SourceAuto, page)),
		))
	}

	row := make([]models.InlineKeyboardButton, 0, 3)
	for _, code := range codes[start:end] {
		label := domain.LanguageDisplayName(code)
		if code == selected {
			label = "✅ " + label
		}
		row = append(row, tg.InlineButton(label, fmt.Sprintf("%s:%s:%d", selectPrefix, code, page)))
		if len(row) == 3 {
			rows = append(rows, row)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if totalPages > 1 {
		rows = append(rows, tg.PaginationRow(page, totalPages, pagePrefix))
	}
	rows = append(rows, tg.ButtonRow(tg.InlineButton("⬅️ Back", "settings_back")))

	return tg.InlineKeyboard(rows...)
}

func (h *Handler) editPicker(ctx context.Context, b *bot.Bot, update *models.Update, text string, markup *models.InlineKeyboardMarkup) {
	var chatID int64
	var messageID int
	if msg := update.CallbackQuery.Message.Message; msg != nil {
		chatID = msg.Chat.ID
		messageID = msg.ID
	}

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdownV1,
		ReplyMarkup: markup,
	})
}

func (h *Handler) handleTargetPicker(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	ack(ctx, b, update, "")

	markup := languagePicker("tgt", "tgtpage", chat.Session.TargetLanguage(), 0, false)
	h.editPicker(ctx, b, update, "🎯 *Choose the target language:*", markup)
}

func (h *Handler) handleSourcePicker(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	ack(ctx, b, update, "")

	markup := languagePicker("src", "srcpage", chat.Session.SourceLanguage(), 0, true)
	h.editPicker(ctx, b, update, "🔍 *Choose the source language:*", markup)
}

func (h *Handler) handleTargetSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}

	parts := strings.Split(strings.TrimPrefix(update.CallbackQuery.Data, "tgt:"), ":")
	if len(parts) == 0 || !chat.Session.SetTargetLanguage(parts[0]) {
		alert(ctx, b, update, "Unknown language.")
		return
	}

	ack(ctx, b, update, fmt.Sprintf("Target set to %s", domain.LanguageDisplayName(parts[0])))
	h.sendSettings(ctx, b, chat)
}

func (h *Handler) handleSourceSelect(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}

	parts := strings.Split(strings.TrimPrefix(update.CallbackQuery.Data, "src:"), ":")
	if len(parts) == 0 || !chat.Session.SetSourceLanguage(parts[0]) {
		alert(ctx, b, update, "Unknown language.")
		return
	}

	ack(ctx, b, update, fmt.Sprintf("Source set to %s", sourceDisplayName(parts[0])))
	h.sendSettings(ctx, b, chat)
}

func (h *Handler) handleTargetPage(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	ack(ctx, b, update, "")

	page, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, "tgtpage:"))
	if err != nil {
		return
	}
	markup := languagePicker("tgt", "tgtpage", chat.Session.TargetLanguage(), page, false)
	h.editPicker(ctx, b, update, "🎯 *Choose the target language:*", markup)
}

func (h *Handler) handleSourcePage(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	ack(ctx, b, update, "")

	page, err := strconv.Atoi(strings.TrimPrefix(update.CallbackQuery.Data, "srcpage:"))
	if err != nil {
		return
	}
	markup := languagePicker("src", "srcpage", chat.Session.SourceLanguage(), page, true)
	h.editPicker(ctx, b, update, "🔍 *Choose the source language:*", markup)
}

func (h *Handler) handleSettingsBack(ctx context.Context, b *bot.Bot, update *models.Update) {
	chat := callbackState(ctx, update)
	if chat == nil {
		return
	}
	ack(ctx, b, update, "")

	h.sendSettings(ctx, b, chat)
}
