package service

import (
	"log"
	"sync"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/sql-quiz-bot/internal/pkg/errors"
	"github.com/yourusername/sql-quiz-bot/internal/service/quizmanager"
)

// QuizService — командная поверхность для транспортного слоя: запуск
// теста, приём ответов, статистика и языковые настройки. Языковые
// настройки живут только в памяти процесса — в отличие от статистики,
// они теряются при рестарте (осознанный выбор, не упущение).
type QuizService struct {
	engine *quizmanager.Engine
	stats  *StatsService

	langMu sync.RWMutex
	lang   map[int64]entity.LanguageMode
}

// NewQuizService создает новый сервис викторин
func NewQuizService(engine *quizmanager.Engine, stats *StatsService) *QuizService {
	return &QuizService{
		engine: engine,
		stats:  stats,
		lang:   make(map[int64]entity.LanguageMode),
	}
}

// StartQuiz запускает новый тест пользователя
func (s *QuizService) StartQuiz(userID int64) *quizmanager.Session {
	return s.engine.StartQuiz(userID)
}

// SubmitAnswer передает ответ пользователя движку
func (s *QuizService) SubmitAnswer(userID int64, questionIndex, optionIndex int) error {
	return s.engine.SubmitAnswer(userID, questionIndex, optionIndex)
}

// AbandonQuiz явно прерывает активный тест без зачёта
func (s *QuizService) AbandonQuiz(userID int64) error {
	return s.engine.Abandon(userID)
}

// ActiveSession возвращает активную сессию пользователя или nil
func (s *QuizService) ActiveSession(userID int64) *quizmanager.Session {
	return s.engine.ActiveSession(userID)
}

// GetStats возвращает копию статистики пользователя; nil, если данных нет
func (s *QuizService) GetStats(userID int64) *entity.UserStats {
	return s.stats.Get(userID)
}

// ResetStats удаляет статистику пользователя
func (s *QuizService) ResetStats(userID int64) error {
	return s.stats.Reset(userID)
}

// SetLanguage устанавливает режим языка пользователя
func (s *QuizService) SetLanguage(userID int64, raw string) (entity.LanguageMode, error) {
	mode, ok := entity.ParseLanguageMode(raw)
	if !ok {
		return "", apperrors.ErrValidation
	}

	s.langMu.Lock()
	s.lang[userID] = mode
	s.langMu.Unlock()

	log.Printf("[QuizService] Пользователь #%d выбрал язык %s", userID, mode)
	return mode, nil
}

// Language возвращает режим языка пользователя (по умолчанию both)
func (s *QuizService) Language(userID int64) entity.LanguageMode {
	s.langMu.RLock()
	defer s.langMu.RUnlock()
	if mode, ok := s.lang[userID]; ok {
		return mode
	}
	return entity.DefaultLanguageMode
}

// Shutdown останавливает движок тестов вместе с таймерами сессий
func (s *QuizService) Shutdown() {
	s.engine.Shutdown()
}
