package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

const statsKeyPrefix = "quizbot:stats:"

// StatsRepo реализует repository.StatsRepository поверх Redis:
// одна JSON-запись на пользователя, без TTL
type StatsRepo struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewStatsRepo создает Redis-хранилище статистики
func NewStatsRepo(client redis.UniversalClient) (*StatsRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for StatsRepo")
	}
	return &StatsRepo{
		client: client,
		ctx:    context.Background(),
	}, nil
}

func statsKey(userID int64) string {
	return statsKeyPrefix + strconv.FormatInt(userID, 10)
}

// LoadAll собирает все записи статистики через SCAN по префиксу ключей
func (r *StatsRepo) LoadAll() (map[int64]*entity.UserStats, error) {
	all := make(map[int64]*entity.UserStats)

	iter := r.client.Scan(r.ctx, 0, statsKeyPrefix+"*", 0).Iterator()
	for iter.Next(r.ctx) {
		key := iter.Val()
		userID, err := strconv.ParseInt(strings.TrimPrefix(key, statsKeyPrefix), 10, 64)
		if err != nil {
			continue
		}

		raw, err := r.client.Get(r.ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to read stats key %s: %w", key, err)
		}

		var stats entity.UserStats
		if err := json.Unmarshal(raw, &stats); err != nil {
			return nil, fmt.Errorf("failed to parse stats key %s: %w", key, err)
		}
		stats.UserID = userID
		all[userID] = &stats
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan stats keys: %w", err)
	}

	return all, nil
}

// Save сохраняет одну запись
func (r *StatsRepo) Save(stats *entity.UserStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats for user %d: %w", stats.UserID, err)
	}
	if err := r.client.Set(r.ctx, statsKey(stats.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save stats for user %d: %w", stats.UserID, err)
	}
	return nil
}

// SaveAll сохраняет весь набор записей
func (r *StatsRepo) SaveAll(all map[int64]*entity.UserStats) error {
	for _, stats := range all {
		if err := r.Save(stats); err != nil {
			return err
		}
	}
	return nil
}

// Reset удаляет запись одного пользователя
func (r *StatsRepo) Reset(userID int64) error {
	if err := r.client.Del(r.ctx, statsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete stats for user %d: %w", userID, err)
	}
	return nil
}
