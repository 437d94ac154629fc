package postgres

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// StatsRepo реализует repository.StatsRepository поверх PostgreSQL
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepo создает Postgres-хранилище статистики
func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// LoadAll загружает все записи статистики
func (r *StatsRepo) LoadAll() (map[int64]*entity.UserStats, error) {
	var records []entity.UserStats
	if err := r.db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load stats records: %w", err)
	}

	all := make(map[int64]*entity.UserStats, len(records))
	for i := range records {
		all[records[i].UserID] = &records[i]
	}
	return all, nil
}

// Save сохраняет одну запись. Сначала пробуем вставку; на конфликте
// первичного ключа (запись уже есть) переходим к обновлению.
func (r *StatsRepo) Save(stats *entity.UserStats) error {
	err := r.db.Create(stats).Error
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" { // 23505 - unique_violation
		// Select("*") заставляет gorm писать и нулевые поля: обновление
		// не должно зависеть от монотонности счётчиков (сброшенная или
		// обнулённая запись тоже обязана сохраниться целиком)
		if err := r.db.Model(&entity.UserStats{}).
			Where("user_id = ?", stats.UserID).
			Select("*").
			Updates(stats).Error; err != nil {
			return fmt.Errorf("failed to update stats for user %d: %w", stats.UserID, err)
		}
		return nil
	}

	return fmt.Errorf("failed to save stats for user %d: %w", stats.UserID, err)
}

// SaveAll сохраняет весь набор записей в одной транзакции
func (r *StatsRepo) SaveAll(all map[int64]*entity.UserStats) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		repo := &StatsRepo{db: tx}
		for _, stats := range all {
			if err := repo.Save(stats); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset удаляет запись одного пользователя. Отсутствие записи не ошибка.
func (r *StatsRepo) Reset(userID int64) error {
	if err := r.db.Delete(&entity.UserStats{}, "user_id = ?", userID).Error; err != nil {
		return fmt.Errorf("failed to delete stats for user %d: %w", userID, err)
	}
	return nil
}
