package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:         1,
		Difficulty: 1,
		TextRU:     "Какой оператор извлекает данные?",
		Options: []Option{
			{TextRU: "DELETE"},
			{TextRU: "SELECT", IsCorrect: true},
			{TextRU: "DROP"},
		},
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(1), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		Options: []Option{
			{TextRU: "A"},
			{TextRU: "B", IsCorrect: true},
			{TextRU: "C"},
		},
	}

	// Act & Assert
	assert.False(t, question.IsCorrect(0), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(2), "IsCorrect должен вернуть false для неправильного ответа")
}

func TestQuestion_IsCorrect_InvalidIndex(t *testing.T) {
	// Arrange
	question := &Question{
		Options: []Option{{TextRU: "A", IsCorrect: true}, {TextRU: "B"}},
	}

	// Act & Assert: недопустимый индекс никогда не правильный
	assert.False(t, question.IsCorrect(-1))
	assert.False(t, question.IsCorrect(2))
}

func TestQuestion_IsValidOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: []Option{{TextRU: "A"}, {TextRU: "B"}, {TextRU: "C"}, {TextRU: "D"}},
	}

	// Act & Assert: валидные опции
	assert.True(t, question.IsValidOption(0), "Индекс 0 должен быть валидным")
	assert.True(t, question.IsValidOption(3), "Индекс 3 должен быть валидным")

	// Assert: невалидные опции
	assert.False(t, question.IsValidOption(-1), "Отрицательный индекс должен быть невалидным")
	assert.False(t, question.IsValidOption(4), "Индекс вне диапазона должен быть невалидным")
}

func TestQuestion_CorrectOption(t *testing.T) {
	// Arrange
	question := &Question{
		Options: []Option{
			{TextRU: "Неверный"},
			{TextRU: "Верный", IsCorrect: true},
		},
	}

	// Act
	option := question.CorrectOption()

	// Assert
	require.NotNil(t, option)
	assert.Equal(t, "Верный", option.TextRU)
}

func TestQuestion_CorrectOption_None(t *testing.T) {
	// Arrange: пробел в данных — ни один вариант не помечен правильным
	question := &Question{
		Options: []Option{{TextRU: "A"}, {TextRU: "B"}},
	}

	// Act & Assert
	assert.Nil(t, question.CorrectOption(), "Для вопроса без правильного варианта должен быть nil")
}

func TestQuestion_Text_Modes(t *testing.T) {
	// Arrange
	question := &Question{
		TextRU: "Вопрос",
		TextEN: "Question",
	}

	// Act & Assert
	assert.Equal(t, "Вопрос", question.Text(LangRU))
	assert.Equal(t, "Question", question.Text(LangEN))
	assert.Equal(t, "Вопрос\n\nEN: Question", question.Text(LangBoth))
}

func TestQuestion_Text_MissingTranslation(t *testing.T) {
	// Arrange: перевода нет — везде показывается русский текст
	question := &Question{TextRU: "Вопрос"}

	// Act & Assert
	assert.Equal(t, "Вопрос", question.Text(LangEN), "Пустой EN заменяется русским")
	assert.Equal(t, "Вопрос", question.Text(LangBoth), "В режиме both без перевода нет строки EN")
}
