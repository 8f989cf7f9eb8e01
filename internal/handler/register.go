package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/settings", bot.MatchTypePrefix, h.handleSettings)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypePrefix, h.handleHistory)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypePrefix, h.handleClear)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/bookmarks", bot.MatchTypePrefix, h.handleBookmarks)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/clearbookmarks", bot.MatchTypePrefix, h.handleClearBookmarks)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/search", bot.MatchTypePrefix, h.handleSearch)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypePrefix, h.handleExport)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/page", bot.MatchTypePrefix, h.handlePage)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/audiolog", bot.MatchTypePrefix, h.handleAudioLog)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/imagelog", bot.MatchTypePrefix, h.handleImageLog)

	// Response action callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "like:", bot.MatchTypePrefix, h.handleLike)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "dislike:", bot.MatchTypePrefix, h.handleDislike)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "regen:", bot.MatchTypePrefix, h.handleRegenerate)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "speak:", bot.MatchTypePrefix, h.handleSpeak)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "save:", bot.MatchTypePrefix, h.handleSaveBookmark)

	// Bookmark list callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "bmdel:", bot.MatchTypePrefix, h.handleBookmarkDelete)

	// Settings callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "set_target", bot.MatchTypeExact, h.handleTargetPicker)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "set_source", bot.MatchTypeExact, h.handleSourcePicker)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tgt:", bot.MatchTypePrefix, h.handleTargetSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "tgtpage:", bot.MatchTypePrefix, h.handleTargetPage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "src:", bot.MatchTypePrefix, h.handleSourceSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "srcpage:", bot.MatchTypePrefix, h.handleSourcePage)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "toggle_lock", bot.MatchTypeExact, h.handleToggleLock)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "toggle_autoen", bot.MatchTypeExact, h.handleToggleAutoEnglish)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "toggle_simplify", bot.MatchTypeExact, h.handleToggleSimplifier)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "accent:", bot.MatchTypePrefix, h.handleAccentSelect)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "settings_back", bot.MatchTypeExact, h.handleSettingsBack)

	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "noop", bot.MatchTypeExact, h.handleNoop)
}

// handleNoop acknowledges callbacks from inert buttons such as the
// pagination position indicator.
func (h *Handler) handleNoop(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
