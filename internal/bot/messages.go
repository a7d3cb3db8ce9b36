package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/IlyaMakarovUI/darts-telegram-bot/internal/domain"
)

// Callback data values. The rating callbacks match domain.Rating on purpose.
const (
	callbackStart = "start"
	callbackWeek  = "week"
	callbackGraph = "graph"
)

// User-facing texts.
const (
	msgMenu = "🎯 Тренировки по дартсу\n\n" +
		"▶️ Старт — 10 минут\n" +
		"После каждого сета из 3 дротиков выбери оценку."
	msgAlreadyActive   = "Тренировка уже идёт"
	msgNoSession       = "Сначала нажми «Старт»"
	msgRecorded        = "✓ Записано"
	msgNoTrendData     = "Нет данных для графика"
	msgSummaryFailed   = "⚠️ Не удалось посчитать итоги тренировки"
	msgSomethingBroke  = "⚠️ Что-то пошло не так, попробуй ещё раз"
	msgChartCaption    = "📈 Прогресс тренировок за 14 дней"
	chartTitleTemplate = "Прогресс тренировок (%d дней)"
)

var startKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶️ Старт тренировки", callbackStart),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 За неделю", callbackWeek),
		tgbotapi.NewInlineKeyboardButtonData("📈 График прогресса", callbackGraph),
	),
)

var throwKeyboard = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Плохо", string(domain.RatingBad)),
		tgbotapi.NewInlineKeyboardButtonData("⚖️ Средне", string(domain.RatingOK)),
		tgbotapi.NewInlineKeyboardButtonData("⭐ Отлично", string(domain.RatingGood)),
	),
)

func chartTitle(windowDays int) string {
	return fmt.Sprintf(chartTitleTemplate, windowDays)
}

func startedText(duration time.Duration) string {
	return fmt.Sprintf("⏱ Тренировка началась (%d минут)", int(duration.Minutes()))
}

func summaryText(agg domain.Aggregate) string {
	return fmt.Sprintf(
		"⏱ Тренировка завершена\n\n"+
			"❌ Плохо — %d\n"+
			"⚖️ Средне — %d\n"+
			"⭐ Отлично — %d",
		agg.Bad, agg.OK, agg.Good)
}

func weeklyText(agg domain.Aggregate) string {
	return fmt.Sprintf(
		"📊 Статистика за 7 дней\n\n"+
			"❌ Плохо — %d\n"+
			"⚖️ Средне — %d\n"+
			"⭐ Отлично — %d",
		agg.Bad, agg.OK, agg.Good)
}
