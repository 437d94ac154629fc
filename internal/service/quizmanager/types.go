package quizmanager

import (
	"time"

	"github.com/yourusername/sql-quiz-bot/internal/bank"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// Constants for default values
const (
	DefaultQuizSize     = 20
	DefaultPassingScore = 50
	DefaultQuizDuration = 60 * time.Minute
)

// DifficultySetting описывает один уровень сложности: подпись, баллы за
// правильный ответ и целевое число вопросов этого уровня в тесте
type DifficultySetting struct {
	Label   string
	LabelEN string
	Points  int
	Count   int
}

// Config содержит настройки движка тестов
type Config struct {
	// QuizSize — фиксированный размер теста
	QuizSize int

	// Duration — время на весь тест
	Duration time.Duration

	// PassingScore — проходной балл
	PassingScore int

	// Difficulty — настройки по уровням сложности; сумма Count равна QuizSize
	Difficulty map[int]DifficultySetting
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuizSize:     DefaultQuizSize,
		Duration:     DefaultQuizDuration,
		PassingScore: DefaultPassingScore,
		Difficulty: map[int]DifficultySetting{
			1: {Label: "Легкий", LabelEN: "Easy", Points: 2, Count: 8},
			2: {Label: "Средний", LabelEN: "Medium", Points: 3, Count: 6},
			3: {Label: "Сложный", LabelEN: "Hard", Points: 4, Count: 6},
		},
	}
}

// Setting возвращает настройки уровня сложности.
// Для неизвестного уровня возвращает нулевые настройки (0 баллов, 0 вопросов).
func (c *Config) Setting(level int) DifficultySetting {
	if s, ok := c.Difficulty[level]; ok {
		return s
	}
	return DifficultySetting{Label: "Неизвестно", LabelEN: "Unknown"}
}

// Points возвращает баллы за правильный ответ на вопрос уровня level
func (c *Config) Points(level int) int {
	return c.Setting(level).Points
}

// FinishReason — причина завершения теста
type FinishReason string

const (
	ReasonCompleted FinishReason = "completed"
	ReasonExpired   FinishReason = "time expired"
)

// Notifier доставляет сообщения пользователю. Реализуется транспортным
// слоем (Telegram); ошибки доставки — забота транспорта.
type Notifier interface {
	// PresentQuestion показывает вопрос number (1-based) из total
	PresentQuestion(userID int64, question *entity.Question, number, total int, remaining time.Duration)

	// PresentAnswerResult показывает результат ответа; correctOption может
	// быть nil для вопроса без правильного варианта
	PresentAnswerResult(userID int64, correct bool, points int, correctOption *entity.Option)

	// PresentSummary показывает итог завершенного теста
	PresentSummary(userID int64, result *entity.LastQuizResult)
}

// StatsRecorder — агрегатор статистики, вызываемый движком.
// Ошибки записи не должны ломать активную сессию.
type StatsRecorder interface {
	// RecordAnswer засчитывает один отвеченный вопрос (write-through)
	RecordAnswer(userID int64, level, points int, correct bool) error

	// RecordQuizFinished засчитывает завершенный тест и снимок его итога
	RecordQuizFinished(userID int64, last *entity.LastQuizResult) error
}

// Dependencies содержит зависимости движка
type Dependencies struct {
	Bank     *bank.Bank
	Stats    StatsRecorder
	Notifier Notifier
}
