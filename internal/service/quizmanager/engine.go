package quizmanager

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/sql-quiz-bot/internal/pkg/errors"
)

// Engine владеет таблицей активных сессий и машиной состояний каждой из
// них: выдача вопросов, приём ответов, подсчёт баллов, завершение по
// дедлайну. Завершение по таймеру и завершение последним ответом гонятся
// между собой; побеждает тот, кто первым удалит сессию из таблицы.
type Engine struct {
	// Настройки
	config *Config

	// Зависимости
	deps *Dependencies

	composer *Composer

	// Таблица активных сессий
	mu       sync.RWMutex
	sessions map[int64]*Session

	// Контекст для управления жизненным циклом
	ctx    context.Context
	cancel context.CancelFunc
}

// NewEngine создает новый движок тестов
func NewEngine(config *Config, deps *Dependencies) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		config:   config,
		deps:     deps,
		composer: NewComposer(config),
		sessions: make(map[int64]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// StartQuiz запускает новый тест для пользователя. Существующая активная
// сессия отбрасывается без зачёта в счётчик пройденных тестов: её таймер
// отменяется, статистика завершения не записывается.
func (e *Engine) StartQuiz(userID int64) *Session {
	questions := e.composer.Compose(e.deps.Bank)
	now := time.Now()

	sessCtx, sessCancel := context.WithCancel(e.ctx)
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Questions: questions,
		StartedAt: now,
		Deadline:  now.Add(e.config.Duration),
		MaxScore:  e.composer.MaxScore(questions),
		cancel:    sessCancel,
	}

	e.mu.Lock()
	if old := e.sessions[userID]; old != nil {
		log.Printf("[Engine] Пользователь #%d перезапустил тест, старая сессия %s отброшена", userID, old.ID)
		old.cancel()
		old.finish()
	}
	e.sessions[userID] = session
	e.mu.Unlock()

	log.Printf("[Engine] Пользователь #%d начал тест %s: %d вопросов, максимум %d баллов",
		userID, session.ID, len(questions), session.MaxScore)

	// Тест из пустого банка терминален сразу
	if len(questions) == 0 {
		e.finalize(session, ReasonCompleted)
		return session
	}

	go e.watchDeadline(sessCtx, session)
	e.sendQuestion(session)
	return session
}

// SubmitAnswer принимает ответ пользователя на вопрос questionIndex.
// Отклоняет ответ без активной сессии, ответ на неактуальный вопрос
// (включая повторное нажатие кнопки) и несуществующий вариант; отклонённый
// ответ не меняет ни баллы, ни позицию.
func (e *Engine) SubmitAnswer(userID int64, questionIndex, optionIndex int) error {
	e.mu.RLock()
	session := e.sessions[userID]
	e.mu.RUnlock()

	if session == nil {
		return apperrors.ErrNoActiveSession
	}
	return e.submit(session, questionIndex, optionIndex)
}

// submit принимает ответ в конкретный экземпляр сессии. Флаг завершения
// проверяется под session.mu: ответ, прочитавший таблицу до удаления
// сессии финализатором, отклоняется здесь, а не засчитывается задним
// числом.
func (e *Engine) submit(session *Session, questionIndex, optionIndex int) error {
	userID := session.UserID

	session.mu.Lock()
	if session.finished {
		session.mu.Unlock()
		return apperrors.ErrNoActiveSession
	}
	if questionIndex != session.currentIndex || session.currentIndex >= len(session.Questions) {
		session.mu.Unlock()
		return apperrors.ErrStaleAnswer
	}
	question := &session.Questions[session.currentIndex]
	if !question.IsValidOption(optionIndex) {
		session.mu.Unlock()
		return apperrors.ErrInvalidOption
	}

	correct := question.IsCorrect(optionIndex)
	points := e.config.Points(question.Difficulty)
	if correct {
		session.correctCount++
		session.score += points
	}
	session.currentIndex++
	done := session.currentIndex == len(session.Questions)
	session.mu.Unlock()

	// Зачёт вопроса сразу, а не при завершении: прогресс до таймаута
	// должен сохраниться. Ошибка записи не ломает сессию.
	if err := e.deps.Stats.RecordAnswer(userID, question.Difficulty, points, correct); err != nil {
		log.Printf("[Engine] Ошибка записи статистики ответа пользователя #%d: %v", userID, err)
	}

	e.deps.Notifier.PresentAnswerResult(userID, correct, points, question.CorrectOption())

	if done {
		e.finalize(session, ReasonCompleted)
	} else {
		e.sendQuestion(session)
	}
	return nil
}

// Abandon явно завершает активную сессию без зачёта теста.
// Уже записанные ответы на вопросы остаются в статистике.
func (e *Engine) Abandon(userID int64) error {
	e.mu.Lock()
	session := e.sessions[userID]
	if session == nil {
		e.mu.Unlock()
		return apperrors.ErrNoActiveSession
	}
	delete(e.sessions, userID)
	e.mu.Unlock()

	session.cancel()
	session.finish()
	log.Printf("[Engine] Пользователь #%d прервал тест %s", userID, session.ID)
	return nil
}

// ActiveSession возвращает активную сессию пользователя или nil
func (e *Engine) ActiveSession(userID int64) *Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sessions[userID]
}

// ActiveCount возвращает количество активных сессий
func (e *Engine) ActiveCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// watchDeadline завершает сессию по истечении времени, если она всё ещё
// активна. Отменённый таймер освобождает свой ресурс.
func (e *Engine) watchDeadline(ctx context.Context, session *Session) {
	timer := time.NewTimer(time.Until(session.Deadline))
	defer timer.Stop()

	select {
	case <-timer.C:
		log.Printf("[Engine] Время сессии %s пользователя #%d вышло", session.ID, session.UserID)
		e.finalize(session, ReasonExpired)
	case <-ctx.Done():
	}
}

// finalize — единственная точка завершения сессии. Побеждает тот, кто
// первым удалил сессию из таблицы; проигравший видит чужую или отсутствующую
// запись и молча выходит. Так таймер и последний ответ не завершают один
// экземпляр сессии дважды.
func (e *Engine) finalize(session *Session, reason FinishReason) {
	e.mu.Lock()
	current, ok := e.sessions[session.UserID]
	if !ok || current.ID != session.ID {
		e.mu.Unlock()
		return
	}
	delete(e.sessions, session.UserID)
	e.mu.Unlock()

	session.cancel()

	// Снимок и флаг завершения берутся одним захватом session.mu
	progress := session.finish()
	result := &entity.LastQuizResult{
		Total:      len(session.Questions),
		Correct:    progress.CorrectCount,
		Score:      progress.Score,
		MaxScore:   session.MaxScore,
		Passed:     progress.Score >= e.config.PassingScore,
		FinishedAt: time.Now(),
		Reason:     string(reason),
	}

	log.Printf("[Engine] Тест %s пользователя #%d завершен (%s): %d/%d, баллы %d/%d",
		session.ID, session.UserID, reason, result.Correct, result.Total, result.Score, result.MaxScore)

	if err := e.deps.Stats.RecordQuizFinished(session.UserID, result); err != nil {
		log.Printf("[Engine] Ошибка записи итога теста пользователя #%d: %v", session.UserID, err)
	}

	e.deps.Notifier.PresentSummary(session.UserID, result)
}

// sendQuestion отправляет пользователю текущий вопрос сессии
func (e *Engine) sendQuestion(session *Session) {
	question, index := session.Current()
	if question == nil {
		return
	}
	e.deps.Notifier.PresentQuestion(session.UserID, question, index+1, len(session.Questions),
		session.Remaining(time.Now()))
}

// Shutdown останавливает движок: все таймеры сессий отменяются,
// таблица активных сессий очищается
func (e *Engine) Shutdown() {
	log.Println("[Engine] Завершение работы движка тестов...")
	e.cancel()

	e.mu.Lock()
	e.sessions = make(map[int64]*Session)
	e.mu.Unlock()

	log.Println("[Engine] Движок тестов остановлен")
}
