package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// StatsRepo реализует repository.StatsRepository поверх одного JSON-файла
// (формат stats.json исходного бота). Файл переписывается целиком через
// временный файл и rename, чтобы упавшая запись не оставила битых данных.
type StatsRepo struct {
	mu    sync.Mutex
	path  string
	cache map[int64]*entity.UserStats
}

// NewStatsRepo создает файловое хранилище статистики
func NewStatsRepo(path string) (*StatsRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("stats file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	repo := &StatsRepo{path: path}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

// load читает файл в кеш; отсутствующий файл означает пустой набор записей
func (r *StatsRepo) load() error {
	r.cache = make(map[int64]*entity.UserStats)

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read stats file %s: %w", r.path, err)
	}
	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, &r.cache); err != nil {
		return fmt.Errorf("failed to parse stats file %s: %w", r.path, err)
	}
	return nil
}

// flush пишет весь кеш на диск атомарно. Вызывается под r.mu.
func (r *StatsRepo) flush() error {
	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace stats file: %w", err)
	}
	return nil
}

// LoadAll возвращает копию всех записей
func (r *StatsRepo) LoadAll() (map[int64]*entity.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make(map[int64]*entity.UserStats, len(r.cache))
	for userID, s := range r.cache {
		all[userID] = s.Clone()
	}
	return all, nil
}

// Save сохраняет одну запись и сбрасывает файл на диск
func (r *StatsRepo) Save(stats *entity.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[stats.UserID] = stats.Clone()
	return r.flush()
}

// SaveAll заменяет весь набор записей
func (r *StatsRepo) SaveAll(all map[int64]*entity.UserStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = make(map[int64]*entity.UserStats, len(all))
	for userID, s := range all {
		r.cache[userID] = s.Clone()
	}
	return r.flush()
}

// Reset удаляет запись одного пользователя
func (r *StatsRepo) Reset(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.cache, userID)
	return r.flush()
}
