// Package bot dispatches Telegram updates to command handlers and the
// title-search pipeline.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kvasnikov/cinebot/internal/resolve"
	"github.com/kvasnikov/cinebot/internal/storage"
)

const (
	// handleTimeout bounds the work done for a single incoming message,
	// including both outbound fetches.
	handleTimeout = 30 * time.Second

	historyLimit = 10
	statsLimit   = 10
)

// Bot owns the Telegram connection and everything a handler needs. There
// is no package-level state; one Bot is constructed at startup and every
// update flows through it.
type Bot struct {
	api         *tgbotapi.BotAPI
	store       *storage.Service
	resolver    *resolve.Resolver
	sessions    *sessionStore
	logger      *slog.Logger
	pollTimeout int
}

// New authorizes against the Telegram Bot API and builds the dispatcher.
func New(token string, pollTimeout int, store *storage.Service, resolver *resolve.Resolver, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:         api,
		store:       store,
		resolver:    resolver,
		sessions:    newSessionStore(),
		logger:      logger.With(slog.String("component", "bot")),
		pollTimeout: pollTimeout,
	}, nil
}

// Username returns the authorized bot account name.
func (b *Bot) Username() string { return b.api.Self.UserName }

// Run registers the command menu and long-polls for updates until the
// context is canceled. Each message is handled in its own goroutine, so a
// slow upstream call for one user never stalls another.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.setCommands(); err != nil {
		b.logger.Warn("registering bot commands", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			msg := update.Message
			if msg == nil || msg.From == nil || msg.Text == "" {
				continue
			}
			go b.handleMessage(ctx, msg)
		}
	}
}

func (b *Bot) setCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "help", Description: "❓ Помощь и список команд"},
		tgbotapi.BotCommand{Command: "start", Description: "🚀 Начать работу с ботом"},
		tgbotapi.BotCommand{Command: "history", Description: "🕘 История запросов"},
		tgbotapi.BotCommand{Command: "stats", Description: "📊 Статистика использования"},
		tgbotapi.BotCommand{Command: "get_favorites", Description: "⭐ Список избранных"},
		tgbotapi.BotCommand{Command: "add_favorite", Description: "➕ Добавить в избранные последний фильм"},
		tgbotapi.BotCommand{Command: "remove_favorite", Description: "➖ Удалить из избранных фильм по названию"},
	)
	_, err := b.api.Request(cmds)
	return err
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("message handler panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if b.sessions.get(userID) == stateAwaitFavoriteTitle {
		b.sessions.set(userID, stateIdle)
		b.finishRemoveFavorite(ctx, chatID, userID, text)
		return
	}

	b.handleSearch(ctx, msg, text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if err := b.store.EnsureUser(ctx, userID); err != nil {
			b.logger.Error("registering user", "user_id", userID, "error", err)
		}
		b.reply(chatID, msgStart)

	case "help":
		b.reply(chatID, msgHelp)

	case "history":
		records, err := b.store.History(ctx, userID, historyLimit)
		if err != nil {
			b.logger.Error("loading history", "user_id", userID, "error", err)
			return
		}
		if len(records) == 0 {
			b.reply(chatID, msgHistoryEmpty)
			return
		}
		b.reply(chatID, formatHistory(records))

	case "stats":
		stats, err := b.store.Stats(ctx, userID, statsLimit)
		if err != nil {
			b.logger.Error("loading stats", "user_id", userID, "error", err)
			return
		}
		if len(stats) == 0 {
			b.reply(chatID, msgStatsEmpty)
			return
		}
		b.reply(chatID, formatStats(stats))

	case "get_favorites":
		titles, err := b.store.Favorites(ctx, userID)
		if err != nil {
			b.logger.Error("loading favorites", "user_id", userID, "error", err)
			return
		}
		if len(titles) == 0 {
			b.reply(chatID, msgFavoritesEmpty)
			return
		}
		b.reply(chatID, formatFavorites(titles))

	case "add_favorite":
		b.addFavorite(ctx, chatID, userID)

	case "remove_favorite":
		b.sessions.set(userID, stateAwaitFavoriteTitle)
		b.reply(chatID, msgAskRemoveTitle)

	default:
		b.reply(chatID, msgHelp)
	}
}

// addFavorite stores the most recently resolved title as a favorite.
func (b *Bot) addFavorite(ctx context.Context, chatID, userID int64) {
	last, err := b.store.LastQuery(ctx, userID)
	if err != nil {
		b.logger.Error("loading last query", "user_id", userID, "error", err)
		return
	}
	if last == nil {
		b.reply(chatID, msgHistoryEmpty)
		return
	}

	added, err := b.store.AddFavorite(ctx, userID, last.ResultTitle)
	if err != nil {
		b.logger.Error("adding favorite", "user_id", userID, "error", err)
		return
	}
	if added {
		b.reply(chatID, formatFavoriteAdded(last.ResultTitle))
	} else {
		b.reply(chatID, formatFavoriteExists(last.ResultTitle))
	}
}

// finishRemoveFavorite completes the two-step removal flow with the title
// the user just typed.
func (b *Bot) finishRemoveFavorite(ctx context.Context, chatID, userID int64, title string) {
	removed, err := b.store.RemoveFavorite(ctx, userID, title)
	if err != nil {
		b.logger.Error("removing favorite", "user_id", userID, "error", err)
		return
	}
	if removed {
		b.reply(chatID, formatFavoriteRemoved(title))
	} else {
		b.reply(chatID, formatFavoriteMissing(title))
	}
}

// handleSearch runs the resolution pipeline for a free-text title query.
func (b *Bot) handleSearch(ctx context.Context, msg *tgbotapi.Message, query string) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if err := b.store.EnsureUser(ctx, userID); err != nil {
		b.logger.Error("registering user", "user_id", userID, "error", err)
	}

	loading, err := b.api.Send(tgbotapi.NewMessage(chatID, formatSearching(query)))
	if err != nil {
		b.logger.Warn("sending placeholder", "error", err)
	}

	card, err := b.resolver.Resolve(ctx, query)

	if loading.MessageID != 0 {
		if _, derr := b.api.Request(tgbotapi.NewDeleteMessage(chatID, loading.MessageID)); derr != nil {
			b.logger.Warn("deleting placeholder", "error", derr)
		}
	}

	if err != nil {
		if !errors.Is(err, resolve.ErrNoMatch) {
			b.logger.Error("resolving query", "query", query, "error", err)
		}
		b.reply(chatID, msgNothingFound)
		return
	}

	if err := b.store.LogQuery(ctx, userID, query, card.Title); err != nil {
		b.logger.Error("logging query", "user_id", userID, "error", err)
	}

	b.deliver(chatID, card)
}

// deliver sends the card as a photo with caption when a poster is
// available, falling back to plain text when the photo is rejected.
func (b *Bot) deliver(chatID int64, card *resolve.Card) {
	if card.PosterURL != "" && card.PosterURL != "N/A" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(card.PosterURL))
		photo.Caption = card.Caption
		_, err := b.api.Send(photo)
		if err == nil {
			return
		}
		b.logger.Warn("photo delivery failed, falling back to text",
			"poster_url", card.PosterURL, "error", err)
	}
	b.reply(chatID, card.Caption)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("sending message", "chat_id", chatID, "error", err)
	}
}
