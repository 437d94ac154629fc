package quizmanager

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// Session хранит состояние одного запущенного теста. У пользователя может
// быть не больше одной активной сессии; запуск нового теста отбрасывает
// старую без зачёта в счётчик пройденных тестов.
type Session struct {
	// ID различает экземпляры сессий одного пользователя: таймер старой
	// сессии не должен завершить новую, запущенную поверх неё
	ID     uuid.UUID
	UserID int64

	// Questions — собранный тест; после создания меняется только
	// позиция прохождения
	Questions []entity.Question

	StartedAt time.Time
	Deadline  time.Time
	MaxScore  int

	mu           sync.Mutex
	currentIndex int
	correctCount int
	score        int
	finished     bool

	cancel context.CancelFunc
}

// Progress — снимок изменяемой части сессии
type Progress struct {
	CurrentIndex int
	CorrectCount int
	Score        int
}

// Progress возвращает согласованный снимок текущего прогресса
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		CurrentIndex: s.currentIndex,
		CorrectCount: s.correctCount,
		Score:        s.score,
	}
}

// Current возвращает текущий вопрос и его индекс; nil после последнего
// вопроса и для завершенной сессии
func (s *Session) Current() (*entity.Question, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.currentIndex >= len(s.Questions) {
		return nil, s.currentIndex
	}
	return &s.Questions[s.currentIndex], s.currentIndex
}

// finish помечает сессию завершенной и возвращает финальный снимок
// прогресса. После этого ответы в сессию больше не принимаются: ответ,
// успевший прочитать таблицу сессий до удаления, увидит флаг под s.mu.
func (s *Session) finish() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	return Progress{
		CurrentIndex: s.currentIndex,
		CorrectCount: s.correctCount,
		Score:        s.score,
	}
}

// Remaining возвращает оставшееся время сессии (не меньше нуля)
func (s *Session) Remaining(now time.Time) time.Duration {
	d := s.Deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
