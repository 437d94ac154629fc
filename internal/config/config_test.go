package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults — без файла конфигурации действуют значения по умолчанию
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, 20, cfg.Quiz.Size)
	assert.Equal(t, 60, cfg.Quiz.DurationMinutes)
	assert.Equal(t, 50, cfg.Quiz.PassingScore)
	assert.Equal(t, "file", cfg.Stats.Backend)
	assert.Equal(t, "data/stats.json", cfg.Stats.FilePath)
}

// TestLoad_EnvOverrides — переменные окружения перекрывают умолчания
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("QUIZ_SIZE", "10")
	t.Setenv("QUIZ_PASSING_SCORE", "30")
	t.Setenv("STATS_FILE_PATH", "/tmp/stats.json")
	t.Setenv("SERVER_READ_TIMEOUT", "30")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Quiz.Size)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Quiz.PassingScore)
	assert.Equal(t, "/tmp/stats.json", cfg.Stats.FilePath)
}

// TestLoad_MissingToken — без токена бота конфигурация невалидна
func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	cfg, err := Load("")

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "telegram bot token is required")
}

// TestLoad_UnsupportedBackend — неизвестный бэкенд статистики отклоняется
func TestLoad_UnsupportedBackend(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("STATS_BACKEND", "mongo")

	cfg, err := Load("")

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "unsupported stats backend")
}

// TestLoad_PostgresBackendRequiresDatabase — для postgres нужны параметры БД
func TestLoad_PostgresBackendRequiresDatabase(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("STATS_BACKEND", "postgres")

	cfg, err := Load("")

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "database configuration")
}

// TestPostgresConnectionString — строка подключения собирается из полей
func TestPostgresConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "secret", DBName: "quizbot", SSLMode: "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=quizbot sslmode=disable",
		db.PostgresConnectionString())
}
