package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/handler"
	"github.com/polyglotta/polyglotta/internal/media"
	"github.com/polyglotta/polyglotta/internal/middleware"
	"github.com/polyglotta/polyglotta/internal/search"
	"github.com/polyglotta/polyglotta/internal/service"
	"github.com/polyglotta/polyglotta/internal/session"
	"github.com/polyglotta/polyglotta/internal/translate"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.WarnMissingCredentials()

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Translation pipeline
	backend, err := service.NewTranslationBackend(cfg)
	if err != nil {
		slog.Error("failed to pick translation backend", "error", err)
		os.Exit(1)
	}
	detector := service.NewDetectService()
	orch := translate.NewOrchestrator(detector, backend, backend)

	// Media adapters. Whisper transcription runs on groq even when another
	// provider serves the chat completions.
	groq := service.NewGroqService(cfg.GroqAPIKey, cfg.GroqModel)
	soniox := service.NewSonioxService(cfg.SonioxAPIKey, cfg.SonioxModel)
	speech := service.NewSpeechService(soniox, groq, logger)
	ocr := service.NewOCRSpaceService(cfg.OCRAPIKey)
	voice := media.NewVoiceProcessor(speech, orch)
	images := media.NewImageProcessor(ocr, orch)
	narrator := media.NewNarrator(speech)
	webpage := service.NewWebpageService()

	// Per-chat session state
	registry := session.NewRegistry(cfg.DefaultTargetLanguage)

	// Bookmark full-text index
	bookmarks, err := search.NewBookmarkIndex()
	if err != nil {
		slog.Error("failed to open bookmark index", "error", err)
		os.Exit(1)
	}
	defer bookmarks.Close()

	// Handler pointer for use in default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.SessionLoader(registry),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			msg := update.Message
			switch {
			case msg.Voice != nil || msg.Audio != nil:
				h.HandleVoice(ctx, b, update)
			case len(msg.Photo) > 0:
				h.HandlePhoto(ctx, b, update)
			case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
				h.HandlePhoto(ctx, b, update)
			case msg.Document != nil && isSnapshotDocument(msg.Document):
				h.HandleImport(ctx, b, update)
			}
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("drop pending updates", "error", err)
		}
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Orch:      orch,
		Voice:     voice,
		Images:    images,
		Narrator:  narrator,
		Webpage:   webpage,
		Bookmarks: bookmarks,
	})

	// Register all handlers
	h.Register()

	// Plain text messages go straight to the translation pipeline
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		// Skip commands
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		h.HandleText(ctx, b, update)
	})

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}

// isSnapshotDocument spots exported conversation snapshots coming back in.
func isSnapshotDocument(doc *models.Document) bool {
	return strings.HasSuffix(strings.ToLower(doc.FileName), ".json") ||
		doc.MimeType == "application/json"
}
