package repository

import (
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// StatsRepository определяет методы для долговременного хранения статистики.
// Каждая запись самодостаточна: порядок сохранения записей разных
// пользователей не специфицирован, но не должен портить ни одну из них.
type StatsRepository interface {
	// LoadAll загружает все записи статистики
	LoadAll() (map[int64]*entity.UserStats, error)

	// Save сохраняет одну запись (write-through после каждого ответа)
	Save(stats *entity.UserStats) error

	// SaveAll сохраняет весь набор записей
	SaveAll(all map[int64]*entity.UserStats) error

	// Reset удаляет запись одного пользователя
	Reset(userID int64) error
}
