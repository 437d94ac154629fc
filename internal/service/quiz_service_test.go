package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
	apperrors "github.com/yourusername/sql-quiz-bot/internal/pkg/errors"
)

func newTestQuizService(t *testing.T) *QuizService {
	t.Helper()
	stats, _ := newTestStatsService(t, nil)
	// Движок не нужен для языковых настроек
	return NewQuizService(nil, stats)
}

// TestQuizService_Language_Default — без явного выбора действует режим both
func TestQuizService_Language_Default(t *testing.T) {
	svc := newTestQuizService(t)

	assert.Equal(t, entity.LangBoth, svc.Language(42))
}

// TestQuizService_SetLanguage — выбранный режим запоминается по пользователю
func TestQuizService_SetLanguage(t *testing.T) {
	svc := newTestQuizService(t)

	mode, err := svc.SetLanguage(42, "en")

	require.NoError(t, err)
	assert.Equal(t, entity.LangEN, mode)
	assert.Equal(t, entity.LangEN, svc.Language(42))
	assert.Equal(t, entity.LangBoth, svc.Language(43), "Настройка не протекает на других пользователей")
}

// TestQuizService_SetLanguage_Invalid — неизвестный режим отклоняется
func TestQuizService_SetLanguage_Invalid(t *testing.T) {
	svc := newTestQuizService(t)

	_, err := svc.SetLanguage(42, "fr")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, entity.LangBoth, svc.Language(42), "Неудачный выбор не меняет режим")
}
