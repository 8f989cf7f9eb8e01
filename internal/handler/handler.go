package handler

import (
	"github.com/go-telegram/bot"

	"github.com/polyglotta/polyglotta/internal/config"
	"github.com/polyglotta/polyglotta/internal/media"
	"github.com/polyglotta/polyglotta/internal/search"
	"github.com/polyglotta/polyglotta/internal/service"
	"github.com/polyglotta/polyglotta/internal/translate"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	orch      *translate.Orchestrator
	voice     *media.VoiceProcessor
	images    *media.ImageProcessor
	narrator  *media.Narrator
	webpage   *service.WebpageService
	bookmarks *search.BookmarkIndex
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Orch      *translate.Orchestrator
	Voice     *media.VoiceProcessor
	Images    *media.ImageProcessor
	Narrator  *media.Narrator
	Webpage   *service.WebpageService
	Bookmarks *search.BookmarkIndex
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		orch:      deps.Orch,
		voice:     deps.Voice,
		images:    deps.Images,
		narrator:  deps.Narrator,
		webpage:   deps.Webpage,
		bookmarks: deps.Bookmarks,
	}
}
