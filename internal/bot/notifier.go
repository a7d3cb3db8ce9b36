package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
)

// The bot is the tracker's Notifier: timer completions land here.

// SessionFinished delivers the session summary and brings back the
// start keyboard.
func (b *Bot) SessionFinished(userID int64, summary domain.Aggregate) {
	b.metrics.SummariesSent.Inc()

	reply := tgbotapi.NewMessage(b.chatFor(userID), summaryText(summary))
	reply.ReplyMarkup = startKeyboard
	b.send(reply)
}

// SummaryFailed tells the user the session ended but its totals could
// not be computed.
func (b *Bot) SummaryFailed(userID int64, _ error) {
	reply := tgbotapi.NewMessage(b.chatFor(userID), msgSummaryFailed)
	reply.ReplyMarkup = startKeyboard
	b.send(reply)
}
