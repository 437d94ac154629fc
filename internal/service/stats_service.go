package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
	"github.com/yourusername/sql-quiz-bot/internal/domain/repository"
)

// StatsService агрегирует статистику пользователей и пишет её в хранилище
// насквозь: каждый отвеченный вопрос фиксируется на диске сразу, чтобы
// частичный прогресс пережил падение процесса. Ошибка записи не трогает
// состояние в памяти.
type StatsService struct {
	mu    sync.Mutex
	repo  repository.StatsRepository
	stats map[int64]*entity.UserStats
}

// NewStatsService загружает все записи из хранилища и нормализует их
// (записи старых версий могли не иметь части полей)
func NewStatsService(repo repository.StatsRepository) (*StatsService, error) {
	all, err := repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}
	for userID, s := range all {
		s.UserID = userID
		s.Normalize()
	}

	log.Printf("[StatsService] Загружено записей статистики: %d", len(all))
	return &StatsService{
		repo:  repo,
		stats: all,
	}, nil
}

// ensure возвращает запись пользователя, лениво создавая пустую.
// Вызывается под s.mu.
func (s *StatsService) ensure(userID int64) *entity.UserStats {
	if s.stats[userID] == nil {
		s.stats[userID] = entity.NewUserStats(userID)
	}
	return s.stats[userID]
}

// RecordAnswer засчитывает один отвеченный вопрос: суммарные счётчики и
// корзина соответствующего уровня сложности растут монотонно
func (s *StatsService) RecordAnswer(userID int64, level, points int, correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.ensure(userID)
	entry.TotalQuestions++
	entry.TotalPointsPossible += points

	bucket := entry.Bucket(level)
	bucket.Asked++
	bucket.PointsPossible += points

	if correct {
		entry.CorrectAnswers++
		entry.TotalPoints += points
		bucket.Correct++
		bucket.Points += points
	} else {
		entry.IncorrectAnswers++
	}

	return s.persist(entry)
}

// RecordQuizFinished засчитывает завершенный тест и сохраняет снимок
// его итога
func (s *StatsService) RecordQuizFinished(userID int64, last *entity.LastQuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.ensure(userID)
	entry.TotalQuizzes++
	entry.LastQuiz = last

	return s.persist(entry)
}

// Get возвращает копию статистики пользователя; nil, если данных ещё нет
func (s *StatsService) Get(userID int64) *entity.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats[userID].Clone()
}

// Reset полностью удаляет статистику пользователя. Последующий Get
// возвращает nil, а не ошибку.
func (s *StatsService) Reset(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stats, userID)
	if err := s.repo.Reset(userID); err != nil {
		return fmt.Errorf("failed to reset stats for user %d: %w", userID, err)
	}
	return nil
}

// persist пишет одну запись в хранилище. Вызывается под s.mu.
func (s *StatsService) persist(entry *entity.UserStats) error {
	if err := s.repo.Save(entry); err != nil {
		return fmt.Errorf("failed to save stats for user %d: %w", entry.UserID, err)
	}
	return nil
}
