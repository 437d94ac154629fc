package telegram

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/sql-quiz-bot/internal/pkg/errors"
	"github.com/yourusername/sql-quiz-bot/internal/service"
	"github.com/yourusername/sql-quiz-bot/internal/service/quizmanager"
)

var optionLetters = []string{"A", "B", "C", "D"}

// Bot — Telegram-транспорт: принимает команды и нажатия кнопок,
// доставляет вопросы и итоги. Реализует quizmanager.Notifier.
type Bot struct {
	api         *tgbotapi.BotAPI
	quiz        *service.QuizService
	config      *quizmanager.Config
	pollTimeout int
}

// NewBot создает Telegram-бота
func NewBot(token string, debug bool, pollTimeout int, quiz *service.QuizService, config *quizmanager.Config) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = debug

	return &Bot{
		api:         api,
		quiz:        quiz,
		config:      config,
		pollTimeout: pollTimeout,
	}, nil
}

// Start запускает цикл обработки обновлений; блокирует до Stop
func (b *Bot) Start() {
	log.Printf("[Bot] Авторизован как @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		switch {
		case update.Message != nil && update.Message.IsCommand():
			b.handleCommand(update.Message)
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		}
	}
}

// Stop останавливает получение обновлений
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	userID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.sendWelcome(userID)
		b.quiz.StartQuiz(userID)
	case "quiz":
		b.quiz.StartQuiz(userID)
	case "stop":
		if err := b.quiz.AbandonQuiz(userID); err != nil {
			b.sendMessage(userID, "Нет активного теста.")
			return
		}
		b.sendMessage(userID, "Тест прерван. Ответы на пройденные вопросы сохранены в статистике.")
	case "stats":
		b.sendMessage(userID, b.formatStats(b.quiz.GetStats(userID)))
	case "resetstats":
		if err := b.quiz.ResetStats(userID); err != nil {
			log.Printf("[Bot] Ошибка сброса статистики пользователя #%d: %v", userID, err)
			b.sendMessage(userID, "Не удалось сбросить статистику, попробуйте позже.")
			return
		}
		b.sendMessage(userID, "Статистика сброшена.")
	case "lang":
		b.handleLang(userID, msg.CommandArguments())
	default:
		b.sendMessage(userID, "Неизвестная команда. Доступно: /quiz, /stop, /stats, /resetstats, /lang")
	}
}

func (b *Bot) handleLang(userID int64, args string) {
	mode, err := b.quiz.SetLanguage(userID, args)
	if err != nil {
		b.sendMessage(userID, "Использование: /lang ru | /lang en | /lang both")
		return
	}
	b.sendMessage(userID, fmt.Sprintf("Язык установлен: %s", mode))
}

// handleCallback обрабатывает нажатие кнопки варианта ответа.
// Данные кнопки: "quiz_<индекс вопроса>_<индекс варианта>".
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	userID := callback.Message.Chat.ID
	data := callback.Data

	if !strings.HasPrefix(data, "quiz_") {
		b.answerCallback(callback.ID, "")
		return
	}

	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		b.answerCallback(callback.ID, "")
		return
	}
	questionIndex, err1 := strconv.Atoi(parts[1])
	optionIndex, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		b.answerCallback(callback.ID, "")
		return
	}

	err := b.quiz.SubmitAnswer(userID, questionIndex, optionIndex)
	switch {
	case err == nil:
		b.answerCallback(callback.ID, "")
	case errors.Is(err, apperrors.ErrNoActiveSession):
		b.answerCallback(callback.ID, "Нет активного теста")
	case errors.Is(err, apperrors.ErrStaleAnswer):
		b.answerCallback(callback.ID, "Этот вопрос уже отвечен")
	case errors.Is(err, apperrors.ErrInvalidOption):
		b.answerCallback(callback.ID, "Некорректный ответ")
	default:
		log.Printf("[Bot] Ошибка обработки ответа пользователя #%d: %v", userID, err)
		b.answerCallback(callback.ID, "Ошибка, попробуйте ещё раз")
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("[Bot] Ошибка ответа на callback: %v", err)
	}
}

func (b *Bot) sendMessage(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[Bot] Ошибка отправки сообщения пользователю #%d: %v", userID, err)
	}
}

func (b *Bot) sendWelcome(userID int64) {
	text := "Добро пожаловать в SQL Quiz Bot.\n\n" +
		"Что умею:\n" +
		"• /quiz — начать тест (" + strconv.Itoa(b.config.QuizSize) + " вопросов)\n" +
		"• /stop — прервать текущий тест\n" +
		"• /stats — статистика\n" +
		"• /resetstats — сброс статистики\n" +
		"• /lang ru | en | both — язык вопросов\n\n" +
		fmt.Sprintf("Правила:\n• Нужно набрать %d баллов\n", b.config.PassingScore) +
		fmt.Sprintf("• Легкий: %d балла, Средний: %d балла, Сложный: %d балла\n",
			b.config.Points(1), b.config.Points(2), b.config.Points(3))
	b.sendMessage(userID, text)
}

// PresentQuestion реализует quizmanager.Notifier: вопрос отдельным
// сообщением, варианты вторым сообщением с кнопками A..D
func (b *Bot) PresentQuestion(userID int64, question *entity.Question, number, total int, remaining time.Duration) {
	mode := b.quiz.Language(userID)
	setting := b.config.Setting(question.Difficulty)

	header := fmt.Sprintf("Вопрос %d/%d (уровень %d — %s)\nБаллы за вопрос: %d\nОсталось времени: %s\n\n%s",
		number, total, question.Difficulty, setting.Label, setting.Points,
		formatDuration(remaining), question.Text(mode))
	b.sendMessage(userID, header)

	var lines []string
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(question.Options))
	for i := range question.Options {
		letter := optionLetter(i)
		body := strings.ReplaceAll(question.Options[i].Text(mode), "\n", "\n   ")
		lines = append(lines, fmt.Sprintf("%s. %s", letter, body))
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(letter,
			fmt.Sprintf("quiz_%d_%d", number-1, i)))
	}

	msg := tgbotapi.NewMessage(userID, "Выберите вариант:\n\n"+strings.Join(lines, "\n"))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[Bot] Ошибка отправки вариантов пользователю #%d: %v", userID, err)
	}
}

// PresentAnswerResult реализует quizmanager.Notifier
func (b *Bot) PresentAnswerResult(userID int64, correct bool, points int, correctOption *entity.Option) {
	if correct {
		b.sendMessage(userID, fmt.Sprintf("Верно! +%d балл(ов).", points))
		return
	}

	answer := "не найден"
	if correctOption != nil {
		answer = correctOption.Text(b.quiz.Language(userID))
	}
	b.sendMessage(userID, "Неверно. Правильный ответ: "+answer)
}

// PresentSummary реализует quizmanager.Notifier
func (b *Bot) PresentSummary(userID int64, result *entity.LastQuizResult) {
	verdict := "Не сдан"
	if result.Passed {
		verdict = "Сдан"
	}
	b.sendMessage(userID, fmt.Sprintf(
		"Тест завершен (%s).\nРезультат: %d/%d\nБаллы: %d/%d\n%s (нужно %d).",
		reasonRU(result.Reason), result.Correct, result.Total,
		result.Score, result.MaxScore, verdict, b.config.PassingScore))
}

// formatStats форматирует отчет по статистике пользователя
func (b *Bot) formatStats(stats *entity.UserStats) string {
	if stats == nil {
		return "Статистика пока пустая. Запустите тест командой /quiz."
	}

	lines := []string{
		fmt.Sprintf("Тестов пройдено: %d", stats.TotalQuizzes),
		fmt.Sprintf("Вопросов всего: %d", stats.TotalQuestions),
		fmt.Sprintf("Правильных: %d", stats.CorrectAnswers),
		fmt.Sprintf("Неправильных: %d", stats.IncorrectAnswers),
		fmt.Sprintf("Баллы: %d/%d", stats.TotalPoints, stats.TotalPointsPossible),
		fmt.Sprintf("Точность: %d%%", stats.Accuracy()),
	}

	if stats.LastQuiz != nil {
		verdict := "не сдан"
		if stats.LastQuiz.Passed {
			verdict = "сдан"
		}
		lines = append(lines, fmt.Sprintf("Последний тест: %d/%d, баллы %d/%d (%s)",
			stats.LastQuiz.Correct, stats.LastQuiz.Total,
			stats.LastQuiz.Score, stats.LastQuiz.MaxScore, verdict))
	}

	var perLevel []string
	for level := entity.MinDifficulty; level <= entity.MaxDifficulty; level++ {
		bucket := stats.PerDifficulty[level]
		if bucket == nil || bucket.Asked == 0 {
			continue
		}
		accuracy := int(float64(bucket.Correct)/float64(bucket.Asked)*100 + 0.5)
		perLevel = append(perLevel, fmt.Sprintf("Уровень %d: %d/%d (%d%%), баллы %d/%d",
			level, bucket.Correct, bucket.Asked, accuracy, bucket.Points, bucket.PointsPossible))
	}
	if len(perLevel) > 0 {
		lines = append(lines, "", "По уровням сложности:")
		lines = append(lines, perLevel...)
	}

	return strings.Join(lines, "\n")
}

func optionLetter(index int) string {
	if index < len(optionLetters) {
		return optionLetters[index]
	}
	return strconv.Itoa(index + 1)
}

func formatDuration(d time.Duration) string {
	totalSec := int(d.Seconds())
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

func reasonRU(reason string) string {
	switch quizmanager.FinishReason(reason) {
	case quizmanager.ReasonCompleted:
		return "все вопросы отвечены"
	case quizmanager.ReasonExpired:
		return "время вышло"
	}
	return reason
}
