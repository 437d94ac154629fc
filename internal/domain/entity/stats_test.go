package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserStats(t *testing.T) {
	// Act
	stats := NewUserStats(42)

	// Assert: все корзины сложности существуют с нулевыми счетчиками
	assert.Equal(t, int64(42), stats.UserID)
	for level := MinDifficulty; level <= MaxDifficulty; level++ {
		require.NotNil(t, stats.PerDifficulty[level], "Корзина уровня %d должна существовать", level)
		assert.Equal(t, 0, stats.PerDifficulty[level].Asked)
	}
}

func TestUserStats_Normalize_RestoresBuckets(t *testing.T) {
	// Arrange: запись старой версии без части корзин
	stats := &UserStats{
		PerDifficulty: DifficultyMap{1: {Asked: 5, Correct: 3}},
	}

	// Act
	stats.Normalize()

	// Assert: существующая корзина не тронута, недостающие созданы
	assert.Equal(t, 5, stats.PerDifficulty[1].Asked)
	require.NotNil(t, stats.PerDifficulty[2])
	require.NotNil(t, stats.PerDifficulty[3])
}

func TestUserStats_Normalize_NilMap(t *testing.T) {
	// Arrange
	stats := &UserStats{}

	// Act
	stats.Normalize()

	// Assert
	require.NotNil(t, stats.PerDifficulty)
	assert.Len(t, stats.PerDifficulty, 3)
}

func TestUserStats_Accuracy(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		correct  int
		expected int
	}{
		{name: "Нет вопросов → 0%", total: 0, correct: 0, expected: 0},
		{name: "Все правильно → 100%", total: 10, correct: 10, expected: 100},
		{name: "Половина → 50%", total: 10, correct: 5, expected: 50},
		{name: "Округление вверх", total: 3, correct: 2, expected: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &UserStats{TotalQuestions: tt.total, CorrectAnswers: tt.correct}
			assert.Equal(t, tt.expected, stats.Accuracy())
		})
	}
}

func TestUserStats_Clone(t *testing.T) {
	// Arrange
	original := NewUserStats(42)
	original.TotalQuizzes = 3
	original.Bucket(1).Asked = 8
	original.LastQuiz = &LastQuizResult{Score: 40}

	// Act
	clone := original.Clone()
	clone.TotalQuizzes = 999
	clone.PerDifficulty[1].Asked = 999
	clone.LastQuiz.Score = 999

	// Assert: мутация копии не трогает оригинал
	assert.Equal(t, 3, original.TotalQuizzes)
	assert.Equal(t, 8, original.PerDifficulty[1].Asked)
	assert.Equal(t, 40, original.LastQuiz.Score)
}

func TestUserStats_Clone_Nil(t *testing.T) {
	var stats *UserStats
	assert.Nil(t, stats.Clone())
}

func TestUserStats_JSONFormat(t *testing.T) {
	// Arrange
	stats := NewUserStats(42)
	stats.TotalQuizzes = 1
	stats.CorrectAnswers = 15

	// Act
	raw, err := json.Marshal(stats)
	require.NoError(t, err)

	// Assert: имена полей совпадают с форматом файла stats.json
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "totalQuizzes")
	assert.Contains(t, decoded, "correctAnswers")
	assert.Contains(t, decoded, "perDifficulty")
	assert.NotContains(t, decoded, "UserID", "UserID не попадает в JSON — он ключ внешней карты")
}

func TestDifficultyMap_ScanValue(t *testing.T) {
	// Arrange
	m := DifficultyMap{1: {Asked: 5, Correct: 3, Points: 6, PointsPossible: 10}}

	// Act: карта выживает в цикле Value → Scan (JSONB-колонка)
	value, err := m.Value()
	require.NoError(t, err)

	var restored DifficultyMap
	require.NoError(t, restored.Scan(value))

	// Assert
	require.NotNil(t, restored[1])
	assert.Equal(t, 5, restored[1].Asked)
	assert.Equal(t, 6, restored[1].Points)
}

func TestDifficultyMap_Scan_Nil(t *testing.T) {
	var m DifficultyMap
	require.NoError(t, m.Scan(nil))
	assert.NotNil(t, m)
	assert.Empty(t, m)
}
