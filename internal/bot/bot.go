// Package bot wires Telegram updates to the training core.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/chart"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/metrics"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/stats"
	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/training"
)

// handlerTimeout bounds the core work done for one update.
const handlerTimeout = 30 * time.Second

// client is the slice of the Telegram API the bot uses. Kept narrow so
// tests can substitute a recorder.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot routes Telegram commands and callback queries to the tracker and
// the statistics engine, and delivers the results back to the chat.
type Bot struct {
	client  client
	tracker *training.Tracker
	engine  *stats.Engine
	metrics *metrics.Metrics

	duration time.Duration

	// chat ids by user id, learned from incoming updates. In private
	// chats the two coincide, which is the fallback for summaries
	// delivered after a restart.
	mu    sync.Mutex
	chats map[int64]int64
}

// New creates a Bot. The tracker is wired separately because the bot is
// also the tracker's Notifier; see Attach.
func New(c client, engine *stats.Engine, m *metrics.Metrics, duration time.Duration) *Bot {
	return &Bot{
		client:   c,
		engine:   engine,
		metrics:  m,
		duration: duration,
		chats:    make(map[int64]int64),
	}
}

// Attach connects the tracker the bot drives. Must be called before Run.
func (b *Bot) Attach(tracker *training.Tracker) {
	b.tracker = tracker
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}
	b.rememberChat(msg.From.ID, msg.Chat.ID)

	reply := tgbotapi.NewMessage(msg.Chat.ID, msgMenu)
	reply.ReplyMarkup = startKeyboard
	b.send(reply)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	userID := cb.From.ID
	chatID := userID
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}
	b.rememberChat(userID, chatID)

	switch cb.Data {
	case callbackStart:
		b.startTraining(cb, chatID)
	case string(domain.RatingBad), string(domain.RatingOK), string(domain.RatingGood):
		b.registerThrow(ctx, cb)
	case callbackWeek:
		b.weeklyStats(ctx, cb, chatID)
	case callbackGraph:
		b.progressGraph(ctx, cb, chatID)
	default:
		b.answer(cb.ID, "")
	}
}

func (b *Bot) startTraining(cb *tgbotapi.CallbackQuery, chatID int64) {
	err := b.tracker.Start(cb.From.ID)
	if errors.Is(err, domain.ErrAlreadyActive) {
		b.metrics.SessionsRejected.Inc()
		b.answer(cb.ID, msgAlreadyActive)
		return
	}
	if err != nil {
		slog.Error("Failed to start session", "user_id", cb.From.ID, "error", err)
		b.answer(cb.ID, msgSomethingBroke)
		return
	}

	b.metrics.SessionsStarted.Inc()
	b.answer(cb.ID, "")

	reply := tgbotapi.NewMessage(chatID, startedText(b.duration))
	reply.ReplyMarkup = throwKeyboard
	b.send(reply)
}

func (b *Bot) registerThrow(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	rating, err := domain.ParseRating(cb.Data)
	if err != nil {
		b.answer(cb.ID, msgSomethingBroke)
		return
	}

	err = b.tracker.RecordThrow(ctx, cb.From.ID, rating)
	switch {
	case errors.Is(err, domain.ErrNoActiveSession):
		b.metrics.ThrowsRejected.Inc()
		b.answer(cb.ID, msgNoSession)
	case err != nil:
		slog.Error("Failed to record throw", "user_id", cb.From.ID, "error", err)
		b.answer(cb.ID, msgSomethingBroke)
	default:
		b.metrics.ThrowsRecorded.WithLabelValues(string(rating)).Inc()
		b.answer(cb.ID, msgRecorded)
	}
}

func (b *Bot) weeklyStats(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64) {
	agg, err := b.engine.WeeklySummary(ctx, cb.From.ID)
	if err != nil {
		slog.Error("Failed to compute weekly summary", "user_id", cb.From.ID, "error", err)
		b.answer(cb.ID, msgSomethingBroke)
		return
	}

	b.answer(cb.ID, "")
	b.send(tgbotapi.NewMessage(chatID, weeklyText(agg)))
}

func (b *Bot) progressGraph(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64) {
	series, err := b.engine.Trend(ctx, cb.From.ID)
	if errors.Is(err, domain.ErrNoData) {
		b.answer(cb.ID, "")
		b.send(tgbotapi.NewMessage(chatID, msgNoTrendData))
		return
	}
	if err != nil {
		slog.Error("Failed to compute trend", "user_id", cb.From.ID, "error", err)
		b.answer(cb.ID, msgSomethingBroke)
		return
	}

	title := chartTitle(series.WindowDays())
	img, err := chart.Render(title, series)
	if err != nil {
		slog.Error("Failed to render trend chart", "user_id", cb.From.ID, "error", err)
		b.answer(cb.ID, msgSomethingBroke)
		return
	}
	b.metrics.ChartsRendered.Inc()

	b.answer(cb.ID, "")
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "progress.png",
		Bytes: img,
	})
	photo.Caption = msgChartCaption
	b.send(photo)
}

func (b *Bot) rememberChat(userID, chatID int64) {
	b.mu.Lock()
	b.chats[userID] = chatID
	b.mu.Unlock()
}

func (b *Bot) chatFor(userID int64) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if chatID, ok := b.chats[userID]; ok {
		return chatID
	}
	return userID
}

func (b *Bot) answer(callbackID, text string) {
	if _, err := b.client.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		slog.Warn("Failed to answer callback query", "error", err)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.client.Send(c); err != nil {
		slog.Error("Failed to send message", "error", err)
	}
}
